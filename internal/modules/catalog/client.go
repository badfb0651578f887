// README: Offer catalog client backed by per-category sheet webhooks.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"saina/internal/modules/session"
)

// Offer is one row from the catalog sheet. The schema is opaque to the core.
type Offer = map[string]any

// Category names the sheet backing each intent.
type Category string

const (
	CategoryFlight Category = "international_flights"
	CategoryHotel  Category = "international_hotels"
)

// CategoryForIntent maps a classified intent to its catalog sheet.
func CategoryForIntent(intent session.Intent) (Category, bool) {
	switch intent {
	case session.IntentFlight:
		return CategoryFlight, true
	case session.IntentHotel:
		return CategoryHotel, true
	default:
		return "", false
	}
}

// Client fetches offers from the per-category webhook URLs.
type Client struct {
	http      *http.Client
	flightURL string
	hotelURL  string
}

func NewClient(flightURL, hotelURL string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		flightURL: flightURL,
		hotelURL:  hotelURL,
	}
}

// Fetch returns the offers for a category in the order the webhook serves
// them. The core never re-ranks; callers truncate with Top.
func (c *Client) Fetch(ctx context.Context, category Category) ([]Offer, error) {
	url := c.flightURL
	if category == CategoryHotel {
		url = c.hotelURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch %s: unexpected status %d", category, resp.StatusCode)
	}

	var offers []Offer
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", category, err)
	}
	return offers, nil
}

// Top returns the first n offers in catalog order.
func Top(offers []Offer, n int) []Offer {
	if len(offers) <= n {
		return offers
	}
	return offers[:n]
}
