package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const bitgetDefaultBaseURL = "https://api.bitget.com"

// BitgetClient fetches perpetual contract listings from Bitget mix markets.
type BitgetClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBitgetClient(baseURL string, timeout time.Duration) *BitgetClient {
	if baseURL == "" {
		baseURL = bitgetDefaultBaseURL
	}
	return &BitgetClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BitgetClient) Name() string { return "bitget" }

// bitgetContractsResponse wraps /api/v2/mix/market/contracts. Code "00000"
// means success; symbolStatus is "normal" for tradeable contracts (others:
// "maintain", "limit_open", "restrictedAPI").
type bitgetContractsResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		Symbol       string `json:"symbol"`
		SymbolStatus string `json:"symbolStatus"`
	} `json:"data"`
}

// FetchSymbols returns normal-status USDT-margined perpetuals.
func (c *BitgetClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/api/v2/mix/market/contracts?productType=USDT-FUTURES"

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
		return nil, fmt.Errorf("bitget error: %s", body)
	}

	var result bitgetContractsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Code != "00000" {
		return nil, fmt.Errorf("bitget error: %s (code=%s)", result.Msg, result.Code)
	}

	var symbols []string
	for _, contract := range result.Data {
		if contract.SymbolStatus == "normal" {
			symbols = append(symbols, contract.Symbol)
		}
	}

	return symbols, nil
}
