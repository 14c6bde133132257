// Package gobtc is a JSON-RPC client for Bitcoin Core nodes.
//
// The client translates typed method calls into JSON-RPC requests over
// HTTP(S), authenticates every call with HTTP Basic credentials resolved
// from either a cookie file or explicit configuration, and normalizes the
// two response envelope formats nodes have shipped over the years (the
// legacy {id, result, error} shape and the JSON-RPC 2.0 shape) into a
// single typed result or error.
//
// Example:
//
// This example connects to a local regtest node using its cookie file,
// reads the chain height and fetches the tip header.
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/shaharia-lab/gobtc"
//	)
//
//	func main() {
//		client, err := gobtc.NewClient(
//			gobtc.UseNetwork(gobtc.NetworkRegtest),
//			gobtc.UseCookieFile("/var/lib/bitcoind/regtest/.cookie"),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ctx := context.Background()
//
//		height, err := client.GetBlockCount(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		tip, err := client.GetBestBlockHash(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		header, err := client.GetBlockHeaderVerbose(ctx, tip)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("height %d, tip %s, difficulty %f\n", height, tip, header.Difficulty)
//	}
//
// Errors are classified so callers can react per category: errors.Is
// matches the configuration and authentication sentinels (ErrInvalidConfig,
// ErrMissingCredentials, ErrInvalidCredentials), while errors.As extracts
// the typed failures (*jsonrpc.RPCError for node-reported errors,
// *jsonrpc.MalformedResponseError for unusable payloads, *HTTPError for
// everything else the transport rejects).
package gobtc
