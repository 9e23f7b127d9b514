package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClassifyStatus(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		204: "2xx",
		302: "3xx",
		404: "4xx",
		500: "5xx",
		99:  "unknown",
	}
	for code, want := range tests {
		if got := classifyStatus(code); got != want {
			t.Errorf("classifyStatus(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestRecordRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "GET /products", "2xx")
	before := testutil.ToFloat64(counter)

	RecordRequest(http.MethodGet, "GET /products", http.StatusOK, 15*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
}
