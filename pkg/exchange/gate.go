package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const gateDefaultBaseURL = "https://api.gateio.ws"

// GateClient fetches perpetual contract listings from Gate.io USDT futures.
type GateClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateClient(baseURL string, timeout time.Duration) *GateClient {
	if baseURL == "" {
		baseURL = gateDefaultBaseURL
	}
	return &GateClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GateClient) Name() string { return "gate" }

// Gate returns a bare JSON array, no envelope. Contract names use the
// underscore format, e.g. "BTC_USDT".
type gateContract struct {
	Name        string `json:"name"`
	InDelisting bool   `json:"in_delisting"`
}

// FetchSymbols returns all USDT perpetuals not in delisting.
func (c *GateClient) FetchSymbols(ctx context.Context) ([]string, error) {
	endpoint := c.baseURL + "/api/v4/futures/usdt/contracts"

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
		return nil, fmt.Errorf("gate error: %s", body)
	}

	var contracts []gateContract
	if err := json.NewDecoder(resp.Body).Decode(&contracts); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var symbols []string
	for _, contract := range contracts {
		if !contract.InDelisting {
			symbols = append(symbols, contract.Name)
		}
	}

	return symbols, nil
}
