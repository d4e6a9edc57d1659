package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := percentile(sorted, 50); got != 5.5 {
		t.Fatalf("p50: expected 5.5, got %v", got)
	}
	if got := percentile(sorted, 100); got != 10 {
		t.Fatalf("p100: expected 10, got %v", got)
	}
	if got := percentile([]float64{42}, 95); got != 42 {
		t.Fatalf("single value: expected 42, got %v", got)
	}
	if got := percentile(nil, 95); got != 0 {
		t.Fatalf("empty: expected 0, got %v", got)
	}
}

func TestBuildLatencySummary(t *testing.T) {
	summary := buildLatencySummary([]float64{3, 1, 2})

	if summary.Min != 1 || summary.Max != 3 {
		t.Fatalf("unexpected min/max: %+v", summary)
	}
	if summary.Avg != 2 {
		t.Fatalf("expected avg 2, got %v", summary.Avg)
	}

	if got := buildLatencySummary(nil); got != (latencySummary{}) {
		t.Fatalf("expected zero summary for empty input, got %+v", got)
	}
}

func TestRatio(t *testing.T) {
	if got := ratio(1, 4); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := ratio(1, 0); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(0); got != "transport_error" {
		t.Fatalf("expected transport_error, got %s", got)
	}
	if got := statusLabel(201); got != "201" {
		t.Fatalf("expected 201, got %s", got)
	}
}

func TestCollectorBuildReport(t *testing.T) {
	col := newCollector()
	col.record("POST /orders", 10*time.Millisecond, http.StatusCreated, true)
	col.record("POST /orders", 20*time.Millisecond, http.StatusConflict, false)
	col.record("POST /customers", 5*time.Millisecond, http.StatusCreated, true)

	started := time.Now().Add(-2 * time.Second)
	result := col.buildReport(started, 2*time.Second)

	if result.TotalOrders != 2 || result.SuccessOrders != 1 || result.FailedOrders != 1 {
		t.Fatalf("unexpected order totals: %+v", result)
	}
	if result.ErrorRate != 0.5 {
		t.Fatalf("expected error rate 0.5, got %v", result.ErrorRate)
	}
	if result.RPS != 1 {
		t.Fatalf("expected rps 1, got %v", result.RPS)
	}

	orders, ok := result.Endpoints["POST /orders"]
	if !ok {
		t.Fatal("expected POST /orders endpoint in report")
	}
	if orders.Statuses["201"] != 1 || orders.Statuses["409"] != 1 {
		t.Fatalf("unexpected status counts: %v", orders.Statuses)
	}
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/orders" {
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "order-1"})
			return
		}
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "insufficient_stock"})
	}))
	defer server.Close()

	col := newCollector()
	client := server.Client()

	id, err := postJSON(client, server.URL+"/orders", "POST /orders", map[string]any{"customer_id": "c"}, col)
	if err != nil {
		t.Fatalf("postJSON failed: %v", err)
	}
	if id != "order-1" {
		t.Fatalf("expected order-1, got %s", id)
	}

	if _, err := postJSON(client, server.URL+"/conflict", "POST /orders", map[string]any{}, col); err == nil {
		t.Fatal("expected error for conflict response")
	}

	result := col.buildReport(time.Now(), time.Second)
	if result.TotalOrders != 2 || result.FailedOrders != 1 {
		t.Fatalf("unexpected totals: %+v", result)
	}
}
