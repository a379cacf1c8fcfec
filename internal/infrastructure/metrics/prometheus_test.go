package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCounters(t *testing.T) {
	m := NewPrometheus()

	m.IdentifierIssued("job", false)
	m.IdentifierIssued("job", true)
	m.IdentifierCollision("order")
	m.TeardownFinished("deleted")
	m.CallbacksPurged(3)
	m.CallbacksPurged(0)
	m.ActivityDropped()

	if got := testutil.ToFloat64(m.identifiersIssued.WithLabelValues("job", "false")); got != 1 {
		t.Fatalf("identifiers_issued{job,false} = %v", got)
	}
	if got := testutil.ToFloat64(m.identifiersDegraded.WithLabelValues("job")); got != 1 {
		t.Fatalf("identifiers_degraded{job} = %v", got)
	}
	if got := testutil.ToFloat64(m.identifierCollisions.WithLabelValues("order")); got != 1 {
		t.Fatalf("identifier_collisions{order} = %v", got)
	}
	if got := testutil.ToFloat64(m.callbacksPurged); got != 3 {
		t.Fatalf("callbacks_purged = %v", got)
	}
	if got := testutil.ToFloat64(m.activityWritesDropped); got != 1 {
		t.Fatalf("activity_writes_dropped = %v", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	m := NewPrometheus()
	m.TeardownFinished("rolled_back")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `workshop_tenant_teardowns_total{result="rolled_back"} 1`) {
		t.Fatalf("body missing teardown counter:\n%s", rec.Body.String())
	}
}
