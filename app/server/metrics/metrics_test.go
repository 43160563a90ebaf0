package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreExposed(t *testing.T) {
	m := New()
	m.Login.WithLabelValues(OutcomeSuccess).Inc()
	m.Login.WithLabelValues(OutcomeInvalid).Add(2)
	m.Register.WithLabelValues(OutcomeDuplicate).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Login.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Login.WithLabelValues(OutcomeInvalid)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `library_auth_login_total{outcome="invalid_credentials"} 2`)
	assert.Contains(t, rec.Body.String(), `library_auth_register_total{outcome="duplicate"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Login.WithLabelValues(OutcomeSuccess).Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Login.WithLabelValues(OutcomeSuccess)))
}
