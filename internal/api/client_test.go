package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhubert/kavosh/internal/errors"
)

// newTestServer serves a single handler for every request and records the
// last decoded JSON body.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", WithHTTPClient(srv.Client())), srv
}

func TestSearch_Success(t *testing.T) {
	var got SearchRequest
	var gotPath, gotMethod string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "پاسخ",
			"sources": ["http://a", "کتاب"],
			"query": "چیست؟",
			"search_results": [{"text": "t", "score": 0.91, "metadata": {"url": "http://a", "title": "A"}}]
		}`))
	})

	res, err := client.Search(context.Background(), SearchRequest{Query: "چیست؟", UseWebSearch: true, TopK: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/search" {
		t.Errorf("request = %s %s, want POST /api/search", gotMethod, gotPath)
	}
	if got.Query != "چیست؟" || !got.UseWebSearch || got.TopK != 5 {
		t.Errorf("request body = %+v", got)
	}
	if res.Answer != "پاسخ" {
		t.Errorf("Answer = %q", res.Answer)
	}
	if len(res.Sources) != 2 || res.Sources[0] != "http://a" || res.Sources[1] != "کتاب" {
		t.Errorf("Sources = %v, want input order preserved", res.Sources)
	}
	if len(res.Passages) != 1 || res.Passages[0].Score != 0.91 || res.Passages[0].Metadata.Title != "A" {
		t.Errorf("Passages = %+v", res.Passages)
	}
}

func TestSearch_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing answer", `{"sources": []}`},
		{"missing sources", `{"answer": "x"}`},
		{"null sources", `{"answer": "x", "sources": null}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := client.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
			if !errors.Is(err, errors.KindNetwork) {
				t.Errorf("error = %v, want a transport error", err)
			}
		})
	}
}

func TestSearch_EmptySources(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": "x", "sources": [], "query": "q"}`))
	})

	res, err := client.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Sources == nil || len(res.Sources) != 0 {
		t.Errorf("Sources = %#v, want empty non-nil", res.Sources)
	}
}

func TestServerErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"string detail", 500, `{"detail": "overload"}`, "overload"},
		{"validation list", 422, `{"detail": [{"msg": "field required"}, {"msg": "bad url"}]}`, "field required; bad url"},
		{"no detail", 502, `{"error": "x"}`, ""},
		{"html body", 503, `<h1>down</h1>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
			if !errors.Is(err, errors.KindServer) {
				t.Fatalf("error = %v, want KindServer", err)
			}
			if errors.Status(err) != tt.status {
				t.Errorf("Status() = %d, want %d", errors.Status(err), tt.status)
			}
			if errors.Detail(err) != tt.wantDetail {
				t.Errorf("Detail() = %q, want %q", errors.Detail(err), tt.wantDetail)
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q", TopK: 5})
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("error = %v, want KindNetwork", err)
	}
	if UserMessage(err, "fallback") != "fallback" {
		t.Error("transport errors should use the fallback message")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(errors.Server("op", 500, "overload"), "fb"); got != "overload" {
		t.Errorf("UserMessage() = %q, want server detail", got)
	}
	if got := UserMessage(errors.Server("op", 500, ""), "fb"); got != "fb" {
		t.Errorf("UserMessage() = %q, want fallback", got)
	}
}

func TestAdminEndpoints(t *testing.T) {
	var saved ConfigUpdate
	var ingested IngestRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/config":
			w.Write([]byte(`{"api_key": "sk-1234567...", "base_url": "https://llm.example/v1", "model": "gpt-4o-mini"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/config":
			json.NewDecoder(r.Body).Decode(&saved)
			w.Write([]byte(`{"success": true, "message": "ok"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/ingest-url":
			json.NewDecoder(r.Body).Decode(&ingested)
			w.Write([]byte(`{"success": false, "message": "crawl failed"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/health":
			w.Write([]byte(`{"status": "healthy", "message": "up"}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	cfg, err := client.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.BaseURL != "https://llm.example/v1" || cfg.Model != "gpt-4o-mini" || cfg.APIKeyMasked == "" {
		t.Errorf("GetConfig() = %+v", cfg)
	}

	ack, err := client.SaveConfig(ctx, ConfigUpdate{APIKey: "k", BaseURL: "u"})
	if err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if saved.APIKey != "k" || saved.BaseURL != "u" {
		t.Errorf("saved body = %+v", saved)
	}
	if ack.Success == nil || !*ack.Success || ack.Message != "ok" {
		t.Errorf("ack = %+v", ack)
	}

	res, err := client.IngestURL(ctx, IngestRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("IngestURL() error = %v", err)
	}
	if ingested.URL != "https://example.com" {
		t.Errorf("ingest body = %+v", ingested)
	}
	if !res.Failed() || res.Message != "crawl failed" {
		t.Errorf("IngestURL() = %+v, want an explicit failure", res)
	}

	h, err := client.Health(ctx)
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if !h.Healthy() {
		t.Errorf("Health() = %+v", h)
	}
}
