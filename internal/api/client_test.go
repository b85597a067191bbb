package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/api"
	"github.com/Tiliavir/trivial-trip-planner/internal/config"
)

func liveConfig(baseURL string) config.APIConfig {
	cfg := config.Default().API
	cfg.BaseURL = baseURL
	cfg.EnableBackendCalls = true
	return cfg
}

func TestCallDisabledIsMocked(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	cfg := liveConfig(srv.URL)
	cfg.EnableBackendCalls = false
	c := api.New(context.Background(), cfg)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		res, err := c.Call(context.Background(), method, api.TripsPath(), nil, map[string]string{"name": "x"})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", method, err)
		}
		if !res.Mocked {
			t.Errorf("%s: Mocked = false, want true", method)
		}
		if res.Data != nil {
			t.Errorf("%s: Data = %v, want nil", method, res.Data)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("server hits = %d, want 0", n)
	}
}

func TestGetSendsQueryAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/trips/t%201/notes" {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		if got := r.URL.Query().Get("offset"); got != "20" {
			t.Errorf("offset = %q, want 20", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id": 7, "content": "hi"}]`)
	}))
	defer srv.Close()

	c := api.New(context.Background(), liveConfig(srv.URL))
	res, err := c.Call(context.Background(), http.MethodGet, api.TripChildPath("t 1", "notes"), url.Values{"limit": {"10"}, "offset": {"20"}}, nil)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if res.Mocked {
		t.Error("Mocked = true, want false")
	}
	list, ok := res.Data.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("Data = %#v, want one-element list", res.Data)
	}
	obj := list[0].(map[string]any)
	if n, ok := obj["id"].(json.Number); !ok || n.String() != "7" {
		t.Errorf("id = %#v, want json.Number 7", obj["id"])
	}
}

func TestPostEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body["name"] != "Banff Loop" {
			t.Errorf("name = %v", body["name"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"t9","name":"Banff Loop"}`)
	}))
	defer srv.Close()

	c := api.New(context.Background(), liveConfig(srv.URL))
	res, err := c.Call(context.Background(), http.MethodPost, api.TripsPath(), nil, map[string]string{"name": "Banff Loop"})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if obj, ok := res.Data.(map[string]any); !ok || obj["id"] != "t9" {
		t.Errorf("Data = %#v", res.Data)
	}
}

func TestHTTPErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"detail", http.StatusNotFound, `{"detail":"trip not found"}`, "trip not found"},
		{"message", http.StatusConflict, `{"message":"version conflict"}`, "version conflict"},
		{"string", http.StatusBadRequest, `"bad draft"`, "bad draft"},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty", http.StatusInternalServerError, ``, "request failed with status code 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := api.New(context.Background(), liveConfig(srv.URL))
			_, err := c.Call(context.Background(), http.MethodDelete, api.TripPath("t1"), nil, nil)
			he, ok := api.IsHTTP(err)
			if !ok {
				t.Fatalf("err = %v, want *HTTPError", err)
			}
			if he.Status != tt.status {
				t.Errorf("Status = %d, want %d", he.Status, tt.status)
			}
			if he.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", he.Message, tt.wantMsg)
			}
		})
	}
}

func TestUnknownErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		c := api.New(context.Background(), liveConfig(addr))
		_, err := c.Call(context.Background(), http.MethodGet, api.TripsPath(), nil, nil)
		if !api.IsUnknown(err) {
			t.Fatalf("err = %v, want *UnknownError", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"items": [`)
		}))
		defer srv.Close()

		c := api.New(context.Background(), liveConfig(srv.URL))
		_, err := c.Call(context.Background(), http.MethodGet, api.TripsPath(), nil, nil)
		if !api.IsUnknown(err) {
			t.Fatalf("err = %v, want *UnknownError", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := api.New(context.Background(), liveConfig(srv.URL), api.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
		_, err := c.Call(context.Background(), http.MethodGet, api.TripsPath(), nil, nil)
		if !api.IsUnknown(err) {
			t.Fatalf("err = %v, want *UnknownError", err)
		}
	})
}

func TestEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := api.New(context.Background(), liveConfig(srv.URL))
	res, err := c.Call(context.Background(), http.MethodDelete, api.TripPath("t1"), nil, nil)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	if res.Data != nil || res.Mocked {
		t.Errorf("Result = %#v, want empty live result", res)
	}
}

func TestStaticAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	cfg := liveConfig(srv.URL)
	cfg.AccessToken = "secret-token"
	c := api.New(context.Background(), cfg)
	if _, err := c.Call(context.Background(), http.MethodGet, api.TripsPath(), nil, nil); err != nil {
		t.Fatalf("GET: %v", err)
	}
}

func TestClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"cc-token","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/api/trips", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer cc-token" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, `{"items":[]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := liveConfig(srv.URL)
	cfg.OAuth = config.OAuthConfig{TokenURL: srv.URL + "/token", ClientID: "ttp", ClientSecret: "s3cret"}
	c := api.New(context.Background(), cfg)
	if _, err := c.Call(context.Background(), http.MethodGet, api.TripsPath(), nil, nil); err != nil {
		t.Fatalf("GET: %v", err)
	}
}

func TestBaseURLTrimmed(t *testing.T) {
	c := api.New(context.Background(), liveConfig("http://localhost:3001/"))
	if got := c.BaseURL(); got != "http://localhost:3001" {
		t.Errorf("BaseURL = %q", got)
	}
	if !c.Enabled() {
		t.Error("Enabled = false, want true")
	}
}
