package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// go test -v --run TestMEXCFetchSymbols
func TestMEXCFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `{
		"success": true,
		"code": 0,
		"data": [
			{"symbol": "BTC_USDT"},
			{"symbol": "XYZ_USDT"},
			{"symbol": "XYZ_USDT"},
			{"symbol": "BTC_USD"}
		]
	}`)

	client := NewMEXCClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"BTC_USDT", "XYZ_USDT"}
	if len(symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d: %v", len(want), len(symbols), symbols)
	}
	for i, s := range want {
		if symbols[i] != s {
			t.Errorf("symbol %d: expected %s, got %s", i, s, symbols[i])
		}
	}
}

func TestMEXCFetchSymbolsAPIError(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"success": false, "code": 510}`)

	client := NewMEXCClient(srv.URL, 5*time.Second)
	if _, err := client.FetchSymbols(context.Background()); err == nil {
		t.Fatal("expected error for unsuccessful response, got nil")
	}
}

func TestMEXCFetchSymbolsNon200(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, `maintenance`)

	client := NewMEXCClient(srv.URL, 5*time.Second)
	if _, err := client.FetchSymbols(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response, got nil")
	}
}

func TestBinanceFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `{
		"symbols": [
			{"symbol": "BTCUSDT", "contractType": "PERPETUAL", "status": "TRADING"},
			{"symbol": "BTCUSDT_250926", "contractType": "CURRENT_QUARTER", "status": "TRADING"},
			{"symbol": "ETHUSDT", "contractType": "PERPETUAL", "status": "TRADING"}
		]
	}`)

	client := NewBinanceClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(symbols) != 2 {
		t.Fatalf("expected 2 perpetuals, got %d: %v", len(symbols), symbols)
	}
	if symbols[0] != "BTCUSDT" || symbols[1] != "ETHUSDT" {
		t.Errorf("unexpected symbols: %v", symbols)
	}
}

func TestBybitFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `{
		"retCode": 0,
		"retMsg": "OK",
		"result": {
			"category": "linear",
			"list": [
				{"symbol": "BTCUSDT", "quoteCoin": "USDT", "contractType": "LinearPerpetual", "status": "Trading"},
				{"symbol": "BTCPERP", "quoteCoin": "USDC", "contractType": "LinearPerpetual", "status": "Trading"},
				{"symbol": "ETH-26SEP25", "quoteCoin": "USDT", "contractType": "LinearFutures", "status": "Trading"},
				{"symbol": "OLDUSDT", "quoteCoin": "USDT", "contractType": "LinearPerpetual", "status": "Closed"}
			]
		}
	}`)

	client := NewBybitClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(symbols) != 1 || symbols[0] != "BTCUSDT" {
		t.Errorf("expected only BTCUSDT, got %v", symbols)
	}
}

func TestBybitFetchSymbolsRetCodeError(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"retCode": 10001, "retMsg": "params error", "result": {}}`)

	client := NewBybitClient(srv.URL, 5*time.Second)
	if _, err := client.FetchSymbols(context.Background()); err == nil {
		t.Fatal("expected error for non-zero retCode, got nil")
	}
}

func TestBitgetFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `{
		"code": "00000",
		"msg": "success",
		"data": [
			{"symbol": "BTCUSDT", "symbolStatus": "normal"},
			{"symbol": "HALTUSDT", "symbolStatus": "maintain"}
		]
	}`)

	client := NewBitgetClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(symbols) != 1 || symbols[0] != "BTCUSDT" {
		t.Errorf("expected only BTCUSDT, got %v", symbols)
	}
}

func TestGateFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `[
		{"name": "BTC_USDT", "in_delisting": false},
		{"name": "DEAD_USDT", "in_delisting": true}
	]`)

	client := NewGateClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(symbols) != 1 || symbols[0] != "BTC_USDT" {
		t.Errorf("expected only BTC_USDT, got %v", symbols)
	}
}

func TestOKXFetchSymbols(t *testing.T) {
	srv := serve(t, http.StatusOK, `{
		"code": "0",
		"msg": "",
		"data": [
			{"instId": "BTC-USDT-SWAP", "state": "live", "settleCcy": "USDT"},
			{"instId": "BTC-USD-SWAP", "state": "live", "settleCcy": "BTC"},
			{"instId": "OLD-USDT-SWAP", "state": "suspend", "settleCcy": "USDT"}
		]
	}`)

	client := NewOKXClient(srv.URL, 5*time.Second)
	symbols, err := client.FetchSymbols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(symbols) != 1 || symbols[0] != "BTC-USDT" {
		t.Errorf("expected BTC-USDT with -SWAP trimmed, got %v", symbols)
	}
}

func TestFetchSymbolsMalformedJSON(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html>not json</html>`)

	fetchers := []Fetcher{
		NewMEXCClient(srv.URL, 5*time.Second),
		NewBinanceClient(srv.URL, 5*time.Second),
		NewBybitClient(srv.URL, 5*time.Second),
		NewBitgetClient(srv.URL, 5*time.Second),
		NewGateClient(srv.URL, 5*time.Second),
		NewOKXClient(srv.URL, 5*time.Second),
	}
	for _, f := range fetchers {
		if _, err := f.FetchSymbols(context.Background()); err == nil {
			t.Errorf("%s: expected decode error, got nil", f.Name())
		}
	}
}

func TestFetchSymbolsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewMEXCClient(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.FetchSymbols(ctx); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}
