package gobtc

// Typed result shapes for the method facade. Field names and JSON tags
// mirror the node's wire output; optional fields carry omitempty so these
// types round-trip cleanly in fixtures.

// GetBlockHeaderVerboseResult represents a block header as returned by
// getblockheader with verbose=true.
type GetBlockHeaderVerboseResult struct {
	Hash              string  `json:"hash"`
	Confirmations     int64   `json:"confirmations"`
	Height            int64   `json:"height"`
	Version           int32   `json:"version"`
	VersionHex        string  `json:"versionHex"`
	MerkleRoot        string  `json:"merkleroot"`
	Time              int64   `json:"time"`
	MedianTime        int64   `json:"mediantime"`
	Nonce             uint32  `json:"nonce"`
	Bits              string  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
	ChainWork         string  `json:"chainwork"`
	NTx               int32   `json:"nTx"`
	PreviousBlockHash string  `json:"previousblockhash,omitempty"`
	NextBlockHash     string  `json:"nextblockhash,omitempty"`
}

// GetBlockVerboseResult represents a block as returned by getblock with
// verbosity=1, where transactions appear as ids only.
type GetBlockVerboseResult struct {
	Hash              string   `json:"hash"`
	Confirmations     int64    `json:"confirmations"`
	Height            int64    `json:"height"`
	Version           int32    `json:"version"`
	VersionHex        string   `json:"versionHex"`
	MerkleRoot        string   `json:"merkleroot"`
	Time              int64    `json:"time"`
	MedianTime        int64    `json:"mediantime"`
	Nonce             uint32   `json:"nonce"`
	Bits              string   `json:"bits"`
	Difficulty        float64  `json:"difficulty"`
	ChainWork         string   `json:"chainwork"`
	NTx               int32    `json:"nTx"`
	PreviousBlockHash string   `json:"previousblockhash,omitempty"`
	NextBlockHash     string   `json:"nextblockhash,omitempty"`
	StrippedSize      int32    `json:"strippedsize"`
	Size              int32    `json:"size"`
	Weight            int32    `json:"weight"`
	Tx                []string `json:"tx"`
}

// TxRawResult represents a decoded transaction as returned by
// getrawtransaction with verbose=true. Block context fields are only
// populated for confirmed transactions.
type TxRawResult struct {
	Hex           string `json:"hex"`
	Txid          string `json:"txid"`
	Hash          string `json:"hash"`
	Size          int32  `json:"size"`
	VSize         int32  `json:"vsize"`
	Weight        int32  `json:"weight"`
	Version       uint32 `json:"version"`
	LockTime      uint32 `json:"locktime"`
	Vin           []Vin  `json:"vin"`
	Vout          []Vout `json:"vout"`
	BlockHash     string `json:"blockhash,omitempty"`
	Confirmations uint64 `json:"confirmations,omitempty"`
	Time          int64  `json:"time,omitempty"`
	BlockTime     int64  `json:"blocktime,omitempty"`
}

// Vin is a transaction input. Coinbase inputs carry Coinbase instead of
// Txid/Vout/ScriptSig.
type Vin struct {
	Coinbase    string     `json:"coinbase,omitempty"`
	Txid        string     `json:"txid,omitempty"`
	Vout        uint32     `json:"vout"`
	ScriptSig   *ScriptSig `json:"scriptSig,omitempty"`
	Sequence    uint32     `json:"sequence"`
	TxInWitness []string   `json:"txinwitness,omitempty"`
}

// ScriptSig is the signature script of a transaction input.
type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

// Vout is a transaction output.
type Vout struct {
	Value        float64      `json:"value"`
	N            uint32       `json:"n"`
	ScriptPubKey ScriptPubKey `json:"scriptPubKey"`
}

// ScriptPubKey is the locking script of a transaction output. Addresses
// and ReqSigs only appear on nodes older than 22.0; newer nodes send
// Address and Desc.
type ScriptPubKey struct {
	Asm       string   `json:"asm"`
	Desc      string   `json:"desc,omitempty"`
	Hex       string   `json:"hex"`
	Type      string   `json:"type"`
	Address   string   `json:"address,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	ReqSigs   int32    `json:"reqSigs,omitempty"`
}

// MempoolEntry represents one transaction in getrawmempool verbose output.
type MempoolEntry struct {
	VSize             int32       `json:"vsize"`
	Weight            int32       `json:"weight"`
	Time              int64       `json:"time"`
	Height            int64       `json:"height"`
	DescendantCount   int64       `json:"descendantcount"`
	DescendantSize    int64       `json:"descendantsize"`
	AncestorCount     int64       `json:"ancestorcount"`
	AncestorSize      int64       `json:"ancestorsize"`
	WTxID             string      `json:"wtxid"`
	Fees              MempoolFees `json:"fees"`
	Depends           []string    `json:"depends"`
	SpentBy           []string    `json:"spentby"`
	BIP125Replaceable bool        `json:"bip125-replaceable"`
	Unbroadcast       bool        `json:"unbroadcast"`
}

// MempoolFees groups the fee views of a mempool entry, all in BTC.
type MempoolFees struct {
	Base       float64 `json:"base"`
	Modified   float64 `json:"modified"`
	Ancestor   float64 `json:"ancestor"`
	Descendant float64 `json:"descendant"`
}

// MempoolWithSequence is the getrawmempool result when mempool_sequence is
// requested alongside non-verbose output.
type MempoolWithSequence struct {
	TxIDs           []string `json:"txids"`
	MempoolSequence uint64   `json:"mempool_sequence"`
}

// GetMempoolInfoResult represents getmempoolinfo output.
type GetMempoolInfoResult struct {
	Loaded              bool    `json:"loaded"`
	Size                int64   `json:"size"`
	Bytes               int64   `json:"bytes"`
	Usage               int64   `json:"usage"`
	TotalFee            float64 `json:"total_fee"`
	MaxMempool          int64   `json:"maxmempool"`
	MempoolMinFee       float64 `json:"mempoolminfee"`
	MinRelayTxFee       float64 `json:"minrelaytxfee"`
	IncrementalRelayFee float64 `json:"incrementalrelayfee"`
	UnbroadcastCount    int64   `json:"unbroadcastcount"`
	FullRBF             bool    `json:"fullrbf"`
}

// GetBlockChainInfoResult represents getblockchaininfo output.
type GetBlockChainInfoResult struct {
	Chain                string  `json:"chain"`
	Blocks               int64   `json:"blocks"`
	Headers              int64   `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	Difficulty           float64 `json:"difficulty"`
	Time                 int64   `json:"time"`
	MedianTime           int64   `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	InitialBlockDownload bool    `json:"initialblockdownload"`
	ChainWork            string  `json:"chainwork"`
	SizeOnDisk           int64   `json:"size_on_disk"`
	Pruned               bool    `json:"pruned"`
	PruneHeight          int64   `json:"pruneheight,omitempty"`
	Warnings             string  `json:"warnings,omitempty"`
}

// GetNetworkInfoResult represents getnetworkinfo output.
type GetNetworkInfoResult struct {
	Version            int32            `json:"version"`
	SubVersion         string           `json:"subversion"`
	ProtocolVersion    int32            `json:"protocolversion"`
	LocalServices      string           `json:"localservices"`
	LocalServicesNames []string         `json:"localservicesnames,omitempty"`
	LocalRelay         bool             `json:"localrelay"`
	TimeOffset         int64            `json:"timeoffset"`
	NetworkActive      bool             `json:"networkactive"`
	Connections        int32            `json:"connections"`
	ConnectionsIn      int32            `json:"connections_in,omitempty"`
	ConnectionsOut     int32            `json:"connections_out,omitempty"`
	Networks           []NetworksResult `json:"networks"`
	RelayFee           float64          `json:"relayfee"`
	IncrementalFee     float64          `json:"incrementalfee"`
	LocalAddresses     []LocalAddress   `json:"localaddresses"`
	Warnings           string           `json:"warnings,omitempty"`
}

// NetworksResult describes one reachable network in getnetworkinfo output.
type NetworksResult struct {
	Name                      string `json:"name"`
	Limited                   bool   `json:"limited"`
	Reachable                 bool   `json:"reachable"`
	Proxy                     string `json:"proxy"`
	ProxyRandomizeCredentials bool   `json:"proxy_randomize_credentials"`
}

// LocalAddress is one advertised local address in getnetworkinfo output.
type LocalAddress struct {
	Address string `json:"address"`
	Port    uint16 `json:"port"`
	Score   int32  `json:"score"`
}

// BlockTemplateRequest is the template_request argument to
// getblocktemplate. Current nodes require Rules to include "segwit".
type BlockTemplateRequest struct {
	Mode         string   `json:"mode,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Rules        []string `json:"rules,omitempty"`
	LongPollID   string   `json:"longpollid,omitempty"`
}

// GetBlockTemplateResult represents getblocktemplate output for the
// default template mode.
type GetBlockTemplateResult struct {
	Version                  int32                      `json:"version"`
	Rules                    []string                   `json:"rules"`
	VbAvailable              map[string]int32           `json:"vbavailable"`
	VbRequired               int32                      `json:"vbrequired"`
	PreviousBlockHash        string                     `json:"previousblockhash"`
	Transactions             []BlockTemplateTransaction `json:"transactions"`
	CoinbaseAux              map[string]string          `json:"coinbaseaux"`
	CoinbaseValue            int64                      `json:"coinbasevalue"`
	LongPollID               string                     `json:"longpollid"`
	Target                   string                     `json:"target"`
	MinTime                  int64                      `json:"mintime"`
	Mutable                  []string                   `json:"mutable"`
	NonceRange               string                     `json:"noncerange"`
	SigOpLimit               int64                      `json:"sigoplimit"`
	SizeLimit                int64                      `json:"sizelimit"`
	WeightLimit              int64                      `json:"weightlimit"`
	CurTime                  int64                      `json:"curtime"`
	Bits                     string                     `json:"bits"`
	Height                   int64                      `json:"height"`
	DefaultWitnessCommitment string                     `json:"default_witness_commitment,omitempty"`
}

// BlockTemplateTransaction is one candidate transaction in a block
// template. Depends holds 1-based indexes into the template's transaction
// list.
type BlockTemplateTransaction struct {
	Data    string  `json:"data"`
	TxID    string  `json:"txid"`
	Hash    string  `json:"hash"`
	Depends []int64 `json:"depends"`
	Fee     int64   `json:"fee"`
	SigOps  int64   `json:"sigops"`
	Weight  int64   `json:"weight"`
}

// ScanTxOutSetResult represents the result of a completed scantxoutset
// start action.
type ScanTxOutSetResult struct {
	Success     bool                  `json:"success"`
	TxOuts      int64                 `json:"txouts"`
	Height      int64                 `json:"height"`
	BestBlock   string                `json:"bestblock"`
	Unspents    []ScanTxOutSetUnspent `json:"unspents"`
	TotalAmount float64               `json:"total_amount"`
}

// ScanTxOutSetUnspent is one unspent output found by scantxoutset.
type ScanTxOutSetUnspent struct {
	TxID         string  `json:"txid"`
	Vout         uint32  `json:"vout"`
	ScriptPubKey string  `json:"scriptPubKey"`
	Desc         string  `json:"desc,omitempty"`
	Amount       float64 `json:"amount"`
	Height       int64   `json:"height"`
}
