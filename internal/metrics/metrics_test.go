package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	before := promtestutil.ToFloat64(AdminOperations.WithLabelValues("m1", "create_topic", OutcomeOK))
	ObserveOperation("m1", "create_topic", OutcomeOK, 20*time.Millisecond)
	ObserveOperation("m1", "create_topic", OutcomeAlreadyExists, time.Millisecond)

	require.Equal(t, before+1, promtestutil.ToFloat64(AdminOperations.WithLabelValues("m1", "create_topic", OutcomeOK)))
	require.Equal(t, 1.0, promtestutil.ToFloat64(AdminOperations.WithLabelValues("m1", "create_topic", OutcomeAlreadyExists)))
}

func TestUnderReplicatedGaugeAndForget(t *testing.T) {
	before := promtestutil.CollectAndCount(UnderReplicatedPartitions)

	SetUnderReplicated("m2", 4)
	require.Equal(t, 4.0, promtestutil.ToFloat64(UnderReplicatedPartitions.WithLabelValues("m2")))
	require.Equal(t, before+1, promtestutil.CollectAndCount(UnderReplicatedPartitions))

	ForgetCluster("m2")
	require.Equal(t, before, promtestutil.CollectAndCount(UnderReplicatedPartitions))
}

func TestHandlerServesMetrics(t *testing.T) {
	ObserveOperation("m3", "list_topics", OutcomeOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `kafka_admin_operations_total{cluster="m3",operation="list_topics",outcome="ok"} 1`)
}
