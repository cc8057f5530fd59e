package monitoring

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainkit/internal/domain/entity"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveRefresh(entity.ChainBTC, 10*time.Millisecond, nil)
	m.ObserveRefresh(entity.ChainBTC, 20*time.Millisecond, errors.New("down"))
	m.ObserveRefresh(entity.ChainBTC, 5*time.Millisecond, nil)
	m.ObserveCoalesced(entity.ChainRHOM)
	m.ObserveClassification(entity.ChainBCH, true)
	m.ObserveClassification("", false)
	m.ObserveCredential("")
	m.ObserveCredential("wrong network")

	assert.InDelta(t, 2, testutil.ToFloat64(m.refreshTotal.WithLabelValues("btc", ResultSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.refreshTotal.WithLabelValues("btc", ResultFailure)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.refreshCoalesced.WithLabelValues("rhom")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.classifications.WithLabelValues("bch")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.classifications.WithLabelValues("none")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.credentialResults.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.credentialResults.WithLabelValues("wrong network")), 0)
}

func TestMetricsObserveInstall(t *testing.T) {
	m := NewMetrics()
	updated := time.Unix(1700000000, 0)
	table := entity.NewRateTable(entity.ChainBCH, []entity.Rate{{Code: "USD", Rate: 1}, {Code: "EUR", Rate: 2}}, updated)

	m.ObserveInstall(table)

	assert.InDelta(t, 2, testutil.ToFloat64(m.rateTableEntries.WithLabelValues("bch")), 0)
	assert.InDelta(t, 1700000000, testutil.ToFloat64(m.rateTableUpdated.WithLabelValues("bch")), 0)
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRefresh(entity.ChainBTC, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `chainkit_rates_refresh_total{chain="btc",result="success"} 1`)
}
