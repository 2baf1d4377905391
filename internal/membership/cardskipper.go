// Package membership reads the member count from the CardSkipper card
// system. Lookup only; the core never writes membership data.
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	config     utils.CardskipperConfig
	log        *zap.Logger
}

func NewClient(config utils.CardskipperConfig, log *zap.Logger) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		log:        log.With(zap.String("client", "cardskipper")),
	}
}

// MemberCount returns the number of active members in the organisation.
func (c *Client) MemberCount(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/api/organisations/%s/members/count", c.config.BaseURL, c.config.OrganisationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build member count request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call cardskipper: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("cardskipper returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode member count response: %w", err)
	}

	return result.Count, nil
}
