package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tablevote/tablevote-backend/pkg/config"
)

// dietKeys is the fixed allow-list of recognized OSM diet tag keys.
var dietKeys = []string{
	"halal",
	"vegetarian",
	"vegan",
	"kosher",
	"gluten_free",
	"lactose_free",
	"pescetarian",
	"nut_free",
	"egg_free",
	"soy_free",
}

// Tags holds the dietary flags and cuisines extracted for one coordinate.
type Tags struct {
	DietaryFlags []string `json:"dietary_flags"`
	Cuisines     []string `json:"cuisines"`
}

// Client is a minimal client for an Overpass-style open geodata endpoint
type Client struct {
	baseURL string
	radius  int
	client  *http.Client
}

// NewClient creates an Overpass client using values from the provided config.
func NewClient(cfg *config.OverpassConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://overpass-api.de"
	}

	radius := cfg.RadiusMeters
	if radius <= 0 {
		radius = 30
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		radius:  radius,
		client:  &http.Client{Timeout: timeout},
	}
}

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Lookup queries points within the configured radius of the coordinate and
// extracts dietary and cuisine tags. Callers treat a failure as "no tags";
// enrichment is best-effort and must never abort a pipeline run.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (Tags, error) {
	query := fmt.Sprintf(
		"[out:json][timeout:10];(node(around:%d,%f,%f)[amenity];way(around:%d,%f,%f)[amenity];);out tags;",
		c.radius, lat, lng, c.radius, lat, lng,
	)

	form := url.Values{}
	form.Set("data", query)

	endpoint := c.baseURL + "/api/interpreter"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Tags{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return Tags{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Tags{}, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var or overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		// Overpass answers rate limits with an HTML page; a non-JSON
		// body is the same as no data.
		return Tags{}, fmt.Errorf("overpass returned malformed response: %w", err)
	}

	out := Tags{}
	seenFlags := map[string]bool{}
	seenCuisines := map[string]bool{}

	for _, el := range or.Elements {
		for _, key := range dietKeys {
			val, ok := el.Tags["diet:"+key]
			if !ok {
				continue
			}
			if val != "yes" && val != "only" {
				continue
			}
			label := NormalizeDietLabel(key)
			if !seenFlags[label] {
				seenFlags[label] = true
				out.DietaryFlags = append(out.DietaryFlags, label)
			}
		}

		// cuisine is a semicolon-delimited multi-value tag
		if raw, ok := el.Tags["cuisine"]; ok {
			for _, c := range strings.Split(raw, ";") {
				label := NormalizeCuisineLabel(c)
				if label == "" || seenCuisines[label] {
					continue
				}
				seenCuisines[label] = true
				out.Cuisines = append(out.Cuisines, label)
			}
		}
	}

	return out, nil
}

// NormalizeDietLabel turns an OSM diet key into a display label:
// underscores become hyphens and the leading letter is capitalized,
// e.g. "gluten_free" -> "Gluten-free".
func NormalizeDietLabel(key string) string {
	return capitalize(strings.ReplaceAll(key, "_", "-"))
}

// NormalizeCuisineLabel turns a raw cuisine value into leading-capital
// form, e.g. "italian" -> "Italian".
func NormalizeCuisineLabel(raw string) string {
	return capitalize(strings.TrimSpace(raw))
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
