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

const mexcDefaultBaseURL = "https://contract.mexc.com"

// MEXCClient fetches perpetual contract listings from MEXC futures.
// This is the primary venue: its symbols are the candidates for uniqueness.
type MEXCClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMEXCClient(baseURL string, timeout time.Duration) *MEXCClient {
	if baseURL == "" {
		baseURL = mexcDefaultBaseURL
	}
	return &MEXCClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *MEXCClient) Name() string { return "mexc" }

// mexcContractDetailResponse is the envelope of /api/v1/contract/detail.
// Symbols use an underscore-separated format, e.g. "BTC_USDT".
type mexcContractDetailResponse struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Data    []struct {
		Symbol string `json:"symbol"`
	} `json:"data"`
}

// FetchSymbols returns all USDT-margined perpetual symbols listed on MEXC.
func (c *MEXCClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/api/v1/contract/detail"

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
		return nil, fmt.Errorf("mexc error: %s", body)
	}

	var result mexcContractDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("mexc error code: %d", result.Code)
	}

	seen := map[string]bool{}
	var symbols []string
	for _, contract := range result.Data {
		if strings.HasSuffix(contract.Symbol, "_USDT") && !seen[contract.Symbol] {
			symbols = append(symbols, contract.Symbol)
			seen[contract.Symbol] = true
		}
	}

	return symbols, nil
}
