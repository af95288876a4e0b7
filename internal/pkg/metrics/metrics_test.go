package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCommand(t *testing.T) {
	before := testutil.ToFloat64(metrics.CommandsTotal.WithLabelValues("decide_item", "conflict"))

	metrics.ObserveCommand("decide_item", errs.NewConflictError("admin_status", "approved"))

	after := testutil.ToFloat64(metrics.CommandsTotal.WithLabelValues("decide_item", "conflict"))
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", metrics.Outcome(nil))
	assert.Equal(t, "not_permitted", metrics.Outcome(errs.NewNotPermittedError("x", "y")))
	assert.Equal(t, "internal", metrics.Outcome(errors.New("boom")))
}

func TestRegisterAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))
	require.NoError(t, metrics.Register(reg))

	metrics.NotificationsRelayed.Inc()
	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mfgorders_notifications_relayed_total")
}
