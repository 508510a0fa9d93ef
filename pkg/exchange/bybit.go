package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const bybitDefaultBaseURL = "https://api.bybit.com"

// BybitClient fetches perpetual contract listings from Bybit's V5 API.
type BybitClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBybitClient(baseURL string, timeout time.Duration) *BybitClient {
	if baseURL == "" {
		baseURL = bybitDefaultBaseURL
	}
	return &BybitClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BybitClient) Name() string { return "bybit" }

// bybitResponse is the standard envelope used across Bybit V5 endpoints.
// RetCode 0 means success; the payload varies per endpoint, so decoding of
// Result is delayed.
type bybitResponse struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

// bybitInstrumentListResult is the payload of /v5/market/instruments-info.
// ContractType distinguishes perpetuals ("LinearPerpetual") from dated
// futures ("LinearFutures").
type bybitInstrumentListResult struct {
	Category string `json:"category"`
	List     []struct {
		Symbol       string `json:"symbol"`
		QuoteCoin    string `json:"quoteCoin"`
		ContractType string `json:"contractType"`
		Status       string `json:"status"`
	} `json:"list"`
}

// FetchSymbols returns Trading linear perpetuals quoted in USDT.
func (c *BybitClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/v5/market/instruments-info?category=linear&limit=1000"

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
		return nil, fmt.Errorf("bybit error: %s", body)
	}

	var rawResp bybitResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rawResp.RetCode != 0 {
		return nil, fmt.Errorf("bybit error: %s (retCode=%d)", rawResp.RetMsg, rawResp.RetCode)
	}

	var result bybitInstrumentListResult
	if err := json.Unmarshal(rawResp.Result, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	var symbols []string
	for _, inst := range result.List {
		if inst.QuoteCoin == "USDT" && inst.ContractType == "LinearPerpetual" && inst.Status == "Trading" {
			symbols = append(symbols, inst.Symbol)
		}
	}

	return symbols, nil
}
