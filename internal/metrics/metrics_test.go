package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGatewayCall(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		err    error
		result string
	}{
		{"success", "incidents_in_area", nil, "success"},
		{"failure", "panic_alerts_in_area", errors.New("timeout"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(GatewayCalls.WithLabelValues(tt.op, tt.result))
			RecordGatewayCall(tt.op, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(GatewayCalls.WithLabelValues(tt.op, tt.result))
			if after-before != 1 {
				t.Errorf("counter delta = %v, want 1", after-before)
			}
		})
	}
}

func TestRecordEngineRun(t *testing.T) {
	before := testutil.ToFloat64(EngineRuns.WithLabelValues("risk", "fallback"))
	RecordEngineRun("risk", "fallback", time.Millisecond)
	if got := testutil.ToFloat64(EngineRuns.WithLabelValues("risk", "fallback")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordProfileLookup(t *testing.T) {
	hits := testutil.ToFloat64(ProfileCacheLookups.WithLabelValues("memory", "hit"))
	misses := testutil.ToFloat64(ProfileCacheLookups.WithLabelValues("memory", "miss"))

	RecordProfileLookup("memory", true)
	RecordProfileLookup("memory", false)
	RecordProfileLookup("memory", false)

	if d := testutil.ToFloat64(ProfileCacheLookups.WithLabelValues("memory", "hit")) - hits; d != 1 {
		t.Errorf("hit delta = %v", d)
	}
	if d := testutil.ToFloat64(ProfileCacheLookups.WithLabelValues("memory", "miss")) - misses; d != 2 {
		t.Errorf("miss delta = %v", d)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequests.WithLabelValues("POST", "/api/risk/predict", "200"))
	RecordAPIRequest("POST", "/api/risk/predict", 200, 10*time.Millisecond)
	if d := testutil.ToFloat64(APIRequests.WithLabelValues("POST", "/api/risk/predict", "200")) - before; d != 1 {
		t.Errorf("delta = %v", d)
	}
}
