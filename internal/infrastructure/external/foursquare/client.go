package foursquare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/pkg/config"
)

// Client is a minimal client for the Foursquare Places search API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Foursquare client using values from the provided config.
func NewClient(cfg *config.FoursquareConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.foursquare.com"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// searchResponse is the minimal response shape for place search
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	FsqID    string `json:"fsq_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Categories []struct {
		Name string `json:"name"`
		Icon struct {
			Prefix string `json:"prefix"`
			Suffix string `json:"suffix"`
		} `json:"icon"`
	} `json:"categories"`
}

// photoResponse is the minimal response shape for photo lookup
type photo struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// SearchByCoordinates fetches dining candidates around a coordinate pair.
func (c *Client) SearchByCoordinates(ctx context.Context, lat, lng float64, limit int) ([]entities.Place, error) {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	return c.search(ctx, params, limit)
}

// SearchByText fetches dining candidates near a free-text location.
func (c *Client) SearchByText(ctx context.Context, near string, limit int) ([]entities.Place, error) {
	params := url.Values{}
	params.Set("near", near)
	return c.search(ctx, params, limit)
}

func (c *Client) search(ctx context.Context, params url.Values, limit int) ([]entities.Place, error) {
	params.Set("categories", "13000") // dining and drinking
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", "fsq_id,name,location,geocodes,categories,price")

	endpoint := c.baseURL + "/v3/places/search?" + params.Encode()

	var sr searchResponse
	if err := c.getJSON(ctx, endpoint, &sr); err != nil {
		return nil, err
	}

	places := make([]entities.Place, 0, len(sr.Results))
	for _, r := range sr.Results {
		// Candidates without resolvable coordinates cannot be enriched
		// or geographically validated; drop them here.
		if r.Geocodes.Main.Latitude == 0 && r.Geocodes.Main.Longitude == 0 {
			continue
		}

		p := entities.Place{
			ID:      r.FsqID,
			Name:    r.Name,
			Address: r.Location.FormattedAddress,
			Lat:     r.Geocodes.Main.Latitude,
			Lng:     r.Geocodes.Main.Longitude,
			Budget:  MapPriceToBudget(r.Price),
		}
		if len(r.Categories) > 0 {
			p.Category = r.Categories[0].Name
			if r.Categories[0].Icon.Prefix != "" {
				p.CategoryIcon = r.Categories[0].Icon.Prefix + "64" + r.Categories[0].Icon.Suffix
			}
		}
		places = append(places, p)
	}
	return places, nil
}

// PhotoURL looks up at most one photo URL for a place id. An empty string
// means the provider has no photo; callers treat that as a display hint
// only, never an error worth surfacing.
func (c *Client) PhotoURL(ctx context.Context, placeID string) (string, error) {
	endpoint := fmt.Sprintf("%s/v3/places/%s/photos?limit=1", c.baseURL, url.PathEscape(placeID))

	var photos []photo
	if err := c.getJSON(ctx, endpoint, &photos); err != nil {
		return "", err
	}
	if len(photos) == 0 {
		return "", nil
	}
	return photos[0].Prefix + "original" + photos[0].Suffix, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("foursquare returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
