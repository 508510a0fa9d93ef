package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const okxDefaultBaseURL = "https://www.okx.com"

// OKXClient fetches perpetual swap listings from OKX.
type OKXClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOKXClient(baseURL string, timeout time.Duration) *OKXClient {
	if baseURL == "" {
		baseURL = okxDefaultBaseURL
	}
	return &OKXClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *OKXClient) Name() string { return "okx" }

// okxInstrumentsResponse wraps /api/v5/public/instruments. Code "0" means
// success; instrument ids look like "BTC-USDT-SWAP" and state is one of
// "live", "suspend", "preopen".
type okxInstrumentsResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		InstID    string `json:"instId"`
		State     string `json:"state"`
		SettleCcy string `json:"settleCcy"`
	} `json:"data"`
}

// FetchSymbols returns live USDT-settled swaps. The "-SWAP" suffix is
// trimmed so the instrument id reads like other venues' tickers.
func (c *OKXClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/api/v5/public/instruments?instType=SWAP"

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
		return nil, fmt.Errorf("okx error: %s", body)
	}

	var result okxInstrumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Code != "0" {
		return nil, fmt.Errorf("okx error: %s (code=%s)", result.Msg, result.Code)
	}

	var symbols []string
	for _, inst := range result.Data {
		if inst.State == "live" && inst.SettleCcy == "USDT" {
			symbols = append(symbols, strings.TrimSuffix(inst.InstID, "-SWAP"))
		}
	}

	return symbols, nil
}
