package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const binanceDefaultBaseURL = "https://fapi.binance.com"

// BinanceClient fetches perpetual contract listings from Binance USDT-M futures.
type BinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBinanceClient(baseURL string, timeout time.Duration) *BinanceClient {
	if baseURL == "" {
		baseURL = binanceDefaultBaseURL
	}
	return &BinanceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BinanceClient) Name() string { return "binance" }

// binanceExchangeInfoResponse covers the slice of /fapi/v1/exchangeInfo the
// tracker needs. ContractType is "PERPETUAL" for perpetuals; dated contracts
// report "CURRENT_QUARTER" / "NEXT_QUARTER".
type binanceExchangeInfoResponse struct {
	Symbols []struct {
		Symbol       string `json:"symbol"`
		ContractType string `json:"contractType"`
		Status       string `json:"status"`
	} `json:"symbols"`
}

// FetchSymbols returns all perpetual symbols from /fapi/v1/exchangeInfo.
func (c *BinanceClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/fapi/v1/exchangeInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("binance error: %s", body)
	}

	var result binanceExchangeInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var symbols []string
	for _, s := range result.Symbols {
		if s.ContractType == "PERPETUAL" {
			symbols = append(symbols, s.Symbol)
		}
	}

	return symbols, nil
}
