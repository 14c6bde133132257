package gobtc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// The method facade. Each function shapes parameters for one RPC method,
// dispatches through Call and narrows the raw result to the method's
// declared shape. Methods whose response shape depends on an input flag
// (getblockheader, getblock, getrawtransaction, getrawmempool) are split
// into one function per shape so every signature stays fully typed.

// GetBlockCount returns the height of the most-work fully-validated chain.
func (c *Client) GetBlockCount(ctx context.Context, opts ...CallOption) (int64, error) {
	result, err := c.Call(ctx, "getblockcount", nil, opts...)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := json.Unmarshal(result, &count); err != nil {
		return 0, fmt.Errorf("failed to decode getblockcount result: %w", err)
	}
	return count, nil
}

// GetBestBlockHash returns the hash of the tip of the most-work chain.
func (c *Client) GetBestBlockHash(ctx context.Context, opts ...CallOption) (*chainhash.Hash, error) {
	result, err := c.Call(ctx, "getbestblockhash", nil, opts...)
	if err != nil {
		return nil, err
	}
	return unmarshalHash(result)
}

// GetBlockHash returns the hash of the block at the given height in the
// best chain.
func (c *Client) GetBlockHash(ctx context.Context, height int64, opts ...CallOption) (*chainhash.Hash, error) {
	result, err := c.Call(ctx, "getblockhash", []any{height}, opts...)
	if err != nil {
		return nil, err
	}
	return unmarshalHash(result)
}

// GetBlockHeader returns the serialized header of the given block as a hex
// string.
func (c *Client) GetBlockHeader(ctx context.Context, blockHash *chainhash.Hash, opts ...CallOption) (string, error) {
	result, err := c.Call(ctx, "getblockheader", []any{blockHash.String(), false}, opts...)
	if err != nil {
		return "", err
	}
	return unmarshalString(result, "getblockheader")
}

// GetBlockHeaderVerbose returns the header of the given block as a
// structured object.
func (c *Client) GetBlockHeaderVerbose(ctx context.Context, blockHash *chainhash.Hash, opts ...CallOption) (*GetBlockHeaderVerboseResult, error) {
	result, err := c.Call(ctx, "getblockheader", []any{blockHash.String(), true}, opts...)
	if err != nil {
		return nil, err
	}
	var header GetBlockHeaderVerboseResult
	if err := json.Unmarshal(result, &header); err != nil {
		return nil, fmt.Errorf("failed to decode getblockheader result: %w", err)
	}
	return &header, nil
}

// GetBlock returns the serialized block as a hex string (verbosity 0).
func (c *Client) GetBlock(ctx context.Context, blockHash *chainhash.Hash, opts ...CallOption) (string, error) {
	result, err := c.Call(ctx, "getblock", []any{blockHash.String(), 0}, opts...)
	if err != nil {
		return "", err
	}
	return unmarshalString(result, "getblock")
}

// GetBlockVerbose returns the block as a structured object with transaction
// ids (verbosity 1).
func (c *Client) GetBlockVerbose(ctx context.Context, blockHash *chainhash.Hash, opts ...CallOption) (*GetBlockVerboseResult, error) {
	result, err := c.Call(ctx, "getblock", []any{blockHash.String(), 1}, opts...)
	if err != nil {
		return nil, err
	}
	var block GetBlockVerboseResult
	if err := json.Unmarshal(result, &block); err != nil {
		return nil, fmt.Errorf("failed to decode getblock result: %w", err)
	}
	return &block, nil
}

// GetRawTransaction returns the serialized transaction as a hex string.
// A non-nil blockHash tells the node which block to look in, which is how
// pruned nodes and unindexed transactions are reached.
func (c *Client) GetRawTransaction(ctx context.Context, txid *chainhash.Hash, blockHash *chainhash.Hash, opts ...CallOption) (string, error) {
	params := []any{txid.String(), false}
	if blockHash != nil {
		params = append(params, blockHash.String())
	}
	result, err := c.Call(ctx, "getrawtransaction", params, opts...)
	if err != nil {
		return "", err
	}
	return unmarshalString(result, "getrawtransaction")
}

// GetRawTransactionVerbose returns the transaction as a structured object.
// See GetRawTransaction for the blockHash parameter.
func (c *Client) GetRawTransactionVerbose(ctx context.Context, txid *chainhash.Hash, blockHash *chainhash.Hash, opts ...CallOption) (*TxRawResult, error) {
	params := []any{txid.String(), true}
	if blockHash != nil {
		params = append(params, blockHash.String())
	}
	result, err := c.Call(ctx, "getrawtransaction", params, opts...)
	if err != nil {
		return nil, err
	}
	var tx TxRawResult
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode getrawtransaction result: %w", err)
	}
	return &tx, nil
}

// GetRawMempool returns the ids of all transactions in the mempool.
func (c *Client) GetRawMempool(ctx context.Context, opts ...CallOption) ([]*chainhash.Hash, error) {
	result, err := c.Call(ctx, "getrawmempool", []any{false}, opts...)
	if err != nil {
		return nil, err
	}
	var txids []string
	if err := json.Unmarshal(result, &txids); err != nil {
		return nil, fmt.Errorf("failed to decode getrawmempool result: %w", err)
	}
	hashes := make([]*chainhash.Hash, len(txids))
	for i, txid := range txids {
		hash, err := chainhash.NewHashFromStr(txid)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mempool txid %q: %w", txid, err)
		}
		hashes[i] = hash
	}
	return hashes, nil
}

// GetRawMempoolVerbose returns every mempool transaction keyed by id.
func (c *Client) GetRawMempoolVerbose(ctx context.Context, opts ...CallOption) (map[string]MempoolEntry, error) {
	result, err := c.Call(ctx, "getrawmempool", []any{true}, opts...)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]MempoolEntry)
	if err := json.Unmarshal(result, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode getrawmempool result: %w", err)
	}
	return entries, nil
}

// GetRawMempoolWithSequence returns the mempool transaction ids together
// with the node's mempool sequence number, used to order mempool snapshots
// against ZMQ notifications.
func (c *Client) GetRawMempoolWithSequence(ctx context.Context, opts ...CallOption) (*MempoolWithSequence, error) {
	result, err := c.Call(ctx, "getrawmempool", []any{false, true}, opts...)
	if err != nil {
		return nil, err
	}
	var mempool MempoolWithSequence
	if err := json.Unmarshal(result, &mempool); err != nil {
		return nil, fmt.Errorf("failed to decode getrawmempool result: %w", err)
	}
	return &mempool, nil
}

// SendRawTransaction submits a serialized transaction to the node and
// returns its id. A non-nil maxFeeRate caps the acceptable fee rate,
// encoded on the wire in BTC/kvB; an explicit zero disables the node's
// cap entirely, while nil leaves the node's default in place.
func (c *Client) SendRawTransaction(ctx context.Context, txHex string, maxFeeRate *btcutil.Amount, opts ...CallOption) (*chainhash.Hash, error) {
	params := []any{txHex}
	if maxFeeRate != nil {
		params = append(params, maxFeeRate.ToBTC())
	}
	result, err := c.Call(ctx, "sendrawtransaction", params, opts...)
	if err != nil {
		return nil, err
	}
	return unmarshalHash(result)
}

// ScanTxOutSet scans the UTXO set for outputs matching the given
// descriptors. Action is one of "start", "abort" or "status"; scanObjects
// only applies to "start". The result shape differs per action ("abort"
// returns a bare boolean), so the raw result is returned; unmarshal a
// "start" result into ScanTxOutSetResult.
func (c *Client) ScanTxOutSet(ctx context.Context, action string, scanObjects []string, opts ...CallOption) (json.RawMessage, error) {
	params := []any{action}
	if len(scanObjects) > 0 {
		params = append(params, scanObjects)
	}
	return c.Call(ctx, "scantxoutset", params, opts...)
}

// GetBlockTemplate returns a block template for mining. A nil request asks
// for the node's default template, which current nodes reject unless the
// request names the segwit rule.
func (c *Client) GetBlockTemplate(ctx context.Context, req *BlockTemplateRequest, opts ...CallOption) (*GetBlockTemplateResult, error) {
	var params any
	if req != nil {
		params = []any{req}
	}
	result, err := c.Call(ctx, "getblocktemplate", params, opts...)
	if err != nil {
		return nil, err
	}
	var template GetBlockTemplateResult
	if err := json.Unmarshal(result, &template); err != nil {
		return nil, fmt.Errorf("failed to decode getblocktemplate result: %w", err)
	}
	return &template, nil
}

// GetNetworkInfo returns the node's view of its own network state.
func (c *Client) GetNetworkInfo(ctx context.Context, opts ...CallOption) (*GetNetworkInfoResult, error) {
	result, err := c.Call(ctx, "getnetworkinfo", nil, opts...)
	if err != nil {
		return nil, err
	}
	var info GetNetworkInfoResult
	if err := json.Unmarshal(result, &info); err != nil {
		return nil, fmt.Errorf("failed to decode getnetworkinfo result: %w", err)
	}
	return &info, nil
}

// GetMempoolInfo returns aggregate mempool statistics.
func (c *Client) GetMempoolInfo(ctx context.Context, opts ...CallOption) (*GetMempoolInfoResult, error) {
	result, err := c.Call(ctx, "getmempoolinfo", nil, opts...)
	if err != nil {
		return nil, err
	}
	var info GetMempoolInfoResult
	if err := json.Unmarshal(result, &info); err != nil {
		return nil, fmt.Errorf("failed to decode getmempoolinfo result: %w", err)
	}
	return &info, nil
}

// GetBlockChainInfo returns the node's view of the chain it follows.
func (c *Client) GetBlockChainInfo(ctx context.Context, opts ...CallOption) (*GetBlockChainInfoResult, error) {
	result, err := c.Call(ctx, "getblockchaininfo", nil, opts...)
	if err != nil {
		return nil, err
	}
	var info GetBlockChainInfoResult
	if err := json.Unmarshal(result, &info); err != nil {
		return nil, fmt.Errorf("failed to decode getblockchaininfo result: %w", err)
	}
	return &info, nil
}

// Uptime returns how many seconds the node has been running.
func (c *Client) Uptime(ctx context.Context, opts ...CallOption) (int64, error) {
	result, err := c.Call(ctx, "uptime", nil, opts...)
	if err != nil {
		return 0, err
	}
	var seconds int64
	if err := json.Unmarshal(result, &seconds); err != nil {
		return 0, fmt.Errorf("failed to decode uptime result: %w", err)
	}
	return seconds, nil
}

// unmarshalString narrows a raw result to a JSON string.
func unmarshalString(result json.RawMessage, method string) (string, error) {
	var s string
	if err := json.Unmarshal(result, &s); err != nil {
		return "", fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return s, nil
}

// unmarshalHash narrows a raw result to a block or transaction hash.
func unmarshalHash(result json.RawMessage) (*chainhash.Hash, error) {
	s, err := unmarshalString(result, "hash")
	if err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hash %q: %w", s, err)
	}
	return hash, nil
}
