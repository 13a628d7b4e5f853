package overpass

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tablevote/tablevote-backend/pkg/config"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(&config.OverpassConfig{
		BaseURL:      ts.URL,
		RadiusMeters: 30,
	})
}

func TestLookup_ExtractsDietAndCuisineTags(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("invalid form: %v", err)
		}
		if r.PostForm.Get("data") == "" {
			t.Fatal("expected an overpass query in the data field")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"elements": []map[string]interface{}{
				{
					"tags": map[string]string{
						"diet:halal":       "yes",
						"diet:vegetarian":  "only",
						"diet:vegan":       "no",
						"diet:gluten_free": "yes",
						"cuisine":          "malay;indian",
					},
				},
				{
					"tags": map[string]string{
						"diet:halal": "yes",
						"cuisine":    "malay",
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	tags, err := client.Lookup(context.Background(), 1.3, 103.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFlags := []string{"Halal", "Vegetarian", "Gluten-free"}
	if len(tags.DietaryFlags) != len(wantFlags) {
		t.Fatalf("expected flags %v got %v", wantFlags, tags.DietaryFlags)
	}
	for i := range wantFlags {
		if tags.DietaryFlags[i] != wantFlags[i] {
			t.Fatalf("expected flags %v got %v", wantFlags, tags.DietaryFlags)
		}
	}

	wantCuisines := []string{"Malay", "Indian"}
	if len(tags.Cuisines) != len(wantCuisines) {
		t.Fatalf("expected cuisines %v got %v", wantCuisines, tags.Cuisines)
	}
	for i := range wantCuisines {
		if tags.Cuisines[i] != wantCuisines[i] {
			t.Fatalf("expected cuisines %v got %v", wantCuisines, tags.Cuisines)
		}
	}
}

func TestLookup_UnknownDietKeysIgnored(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"elements": []map[string]interface{}{
				{
					"tags": map[string]string{
						"diet:carnivore": "yes",
						"diet:halal":     "maybe",
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts)
	tags, err := client.Lookup(context.Background(), 1.3, 103.8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags.DietaryFlags) != 0 {
		t.Fatalf("expected no flags, got %v", tags.DietaryFlags)
	}
}

func TestLookup_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Rate-limited Overpass answers with an HTML page.
		w.Write([]byte("<html>too many requests</html>"))
	}))
	defer ts.Close()

	client := newTestClient(ts)
	if _, err := client.Lookup(context.Background(), 1.3, 103.8); err == nil {
		t.Fatal("expected error on non-JSON body")
	}
}

func TestLookup_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer ts.Close()

	client := newTestClient(ts)
	if _, err := client.Lookup(context.Background(), 1.3, 103.8); err == nil {
		t.Fatal("expected error on 504 response")
	}
}

func TestNormalizeDietLabel(t *testing.T) {
	cases := map[string]string{
		"halal":        "Halal",
		"gluten_free":  "Gluten-free",
		"lactose_free": "Lactose-free",
		"vegan":        "Vegan",
	}
	for in, want := range cases {
		if got := NormalizeDietLabel(in); got != want {
			t.Fatalf("%q: expected %q got %q", in, want, got)
		}
	}
}

func TestNormalizeCuisineLabel(t *testing.T) {
	cases := map[string]string{
		"italian":  "Italian",
		" thai ":   "Thai",
		"":         "",
		"Japanese": "Japanese",
	}
	for in, want := range cases {
		if got := NormalizeCuisineLabel(in); got != want {
			t.Fatalf("%q: expected %q got %q", in, want, got)
		}
	}
}
