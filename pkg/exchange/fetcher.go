package exchange

import "context"

// Fetcher fetches the set of tradeable perpetual contract symbols from one
// venue. Implementations return venue-native tickers (e.g. "BTC_USDT" on
// MEXC, "BTCUSDT" on Binance); normalization happens downstream.
type Fetcher interface {
	Name() string
	FetchSymbols(ctx context.Context) ([]string, error)
}

// Result is the outcome of one venue fetch. Failures are carried as values
// so the caller can degrade per venue instead of aborting the whole check.
type Result struct {
	Venue   string
	Symbols []string
	Err     error
}
