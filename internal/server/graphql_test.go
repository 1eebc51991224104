package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signalgen-go/internal/signal"
)

func postGraphQL(t *testing.T, srv *Server, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func TestGraphQLSignals(t *testing.T) {
	srv, _ := newTestServer()
	result := postGraphQL(t, srv, `{ signals }`, nil)

	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data in result: %+v", result)
	}
	ids, ok := data["signals"].([]interface{})
	if !ok || len(ids) != 1 || ids[0] != "temperature" {
		t.Fatalf("unexpected signals: %+v", data["signals"])
	}
}

func TestGraphQLLatestSample(t *testing.T) {
	srv, store := newTestServer()
	ts := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	store.Append(signal.Sample{ID: "temperature", Ts: ts, Value: 95.5, Status: signal.StatusCritical})

	result := postGraphQL(t, srv,
		`query($id: String!) { signal(id: $id) { id timestamp value status } }`,
		map[string]interface{}{"id": "temperature"})

	data := result["data"].(map[string]interface{})
	sample, ok := data["signal"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing signal in result: %+v", data)
	}
	if sample["value"] != 95.5 || sample["status"] != "critical" {
		t.Fatalf("unexpected sample: %+v", sample)
	}
	if sample["timestamp"] != ts.Format(time.RFC3339) {
		t.Fatalf("unexpected timestamp: %v", sample["timestamp"])
	}
}

func TestGraphQLHistoryGenerates(t *testing.T) {
	srv, _ := newTestServer()
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	result := postGraphQL(t, srv,
		`query($id: String!, $start: String, $end: String) { history(id: $id, start: $start, end: $end) { value status } }`,
		map[string]interface{}{
			"id":    "temperature",
			"start": start.Format(time.RFC3339),
			"end":   end.Format(time.RFC3339),
		})

	data := result["data"].(map[string]interface{})
	series, ok := data["history"].([]interface{})
	if !ok {
		t.Fatalf("missing history in result: %+v", data)
	}
	if len(series) != 120 {
		t.Fatalf("expected 120 minutely samples, got %d", len(series))
	}
}

func TestGraphQLUnknownSignalReturnsNull(t *testing.T) {
	srv, _ := newTestServer()
	result := postGraphQL(t, srv, `{ signal(id: "nope") { id } }`, nil)
	data := result["data"].(map[string]interface{})
	if data["signal"] != nil {
		t.Fatalf("expected null signal, got %+v", data["signal"])
	}
}
