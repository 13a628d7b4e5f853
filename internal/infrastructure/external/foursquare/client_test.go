package foursquare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
	"github.com/tablevote/tablevote-backend/pkg/config"
)

func TestMapPriceToBudget(t *testing.T) {
	cases := []struct {
		tier int
		want string
	}{
		{0, ""},
		{1, entities.BudgetUnder15},
		{2, entities.Budget15To30},
		{3, entities.Budget30To50},
		{4, entities.BudgetOver50},
		{5, ""},
		{-1, ""},
	}

	for _, tc := range cases {
		if got := MapPriceToBudget(tc.tier); got != tc.want {
			t.Fatalf("tier %d: expected %q got %q", tc.tier, tc.want, got)
		}
	}
}

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(&config.FoursquareConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
	})
}

func TestSearchByCoordinates_ParsesResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Fatalf("missing auth header")
		}
		q := r.URL.Query()
		if q.Get("ll") == "" {
			t.Fatalf("expected ll param, got %v", q)
		}
		if q.Get("categories") != "13000" {
			t.Fatalf("expected dining category filter, got %q", q.Get("categories"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"fsq_id": "abc123",
					"name":   "Nasi Lemak House",
					"price":  1,
					"location": map[string]string{
						"formatted_address": "1 Hawker Way",
					},
					"geocodes": map[string]interface{}{
						"main": map[string]float64{"latitude": 1.3001, "longitude": 103.8001},
					},
					"categories": []map[string]interface{}{
						{
							"name": "Malay Restaurant",
							"icon": map[string]string{"prefix": "https://img.example/", "suffix": ".png"},
						},
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	places, err := client.SearchByCoordinates(context.Background(), 1.3, 103.8, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("expected one place, got %d", len(places))
	}

	p := places[0]
	if p.ID != "abc123" || p.Name != "Nasi Lemak House" {
		t.Fatalf("unexpected place %+v", p)
	}
	if p.Budget != entities.BudgetUnder15 {
		t.Fatalf("expected budget %q, got %q", entities.BudgetUnder15, p.Budget)
	}
	if p.Category != "Malay Restaurant" {
		t.Fatalf("unexpected category %q", p.Category)
	}
	if p.CategoryIcon != "https://img.example/64.png" {
		t.Fatalf("unexpected icon %q", p.CategoryIcon)
	}
}

func TestSearch_DropsZeroCoordinateResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"fsq_id": "no-geo", "name": "Nowhere"},
				{
					"fsq_id": "has-geo",
					"name":   "Somewhere",
					"geocodes": map[string]interface{}{
						"main": map[string]float64{"latitude": 1.1, "longitude": 103.1},
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	places, err := client.SearchByText(context.Background(), "Chinatown", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 1 || places[0].ID != "has-geo" {
		t.Fatalf("expected only the geocoded result, got %+v", places)
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := newTestClient(ts)
	if _, err := client.SearchByCoordinates(context.Background(), 1.3, 103.8, 20); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestPhotoURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"prefix": "https://photo.example/", "suffix": "/lunch.jpg"},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	url, err := client.PhotoURL(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://photo.example/original/lunch.jpg" {
		t.Fatalf("unexpected photo url %q", url)
	}
}

func TestPhotoURL_NoPhotos(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	url, err := client.PhotoURL(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url, got %q", url)
	}
}
