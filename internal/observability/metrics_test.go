package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsExist(t *testing.T) {
	assert.NotNil(t, RequestDuration)
	assert.NotNil(t, ActiveConnections)
	assert.NotNil(t, CacheHits)
	assert.NotNil(t, DatabaseOperations)
	assert.NotNil(t, FormSubmissions)
	assert.NotNil(t, ProviderSignIns)
	assert.NotNil(t, ProfileCompletion)
	assert.NotNil(t, ProfileUpdates)
}

func TestFormSubmissions(t *testing.T) {
	before := testutil.ToFloat64(FormSubmissions.WithLabelValues("sign_in", "succeeded"))

	FormSubmissions.WithLabelValues("sign_in", "succeeded").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(FormSubmissions.WithLabelValues("sign_in", "succeeded")))
}

func TestActiveConnections(t *testing.T) {
	ActiveConnections.Set(3)
	ActiveConnections.Inc()
	ActiveConnections.Dec()

	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveConnections))
}

func TestRecordingDoesNotPanic(t *testing.T) {
	RequestDuration.WithLabelValues("/v1/auth/sign-in", "POST", "200").Observe(0.2)
	CacheHits.WithLabelValues("profile", "hit").Inc()
	DatabaseOperations.WithLabelValues("find_user", "success").Inc()
	ProviderSignIns.WithLabelValues("google", "success").Inc()
	ProfileCompletion.Observe(29)
	ProfileUpdates.WithLabelValues("passport", "success").Inc()
}
