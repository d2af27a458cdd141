package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

		Convey("ledger entries are counted by direction", func() {
			m.RecordLedgerEntry("earn", 5)
			m.RecordLedgerEntry("earn", 1)
			m.RecordLedgerEntry("spend", 2)

			So(testutil.ToFloat64(m.ledgerEntries.WithLabelValues("earn")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.ledgerCoins.WithLabelValues("earn")), ShouldEqual, 6)
			So(testutil.ToFloat64(m.ledgerCoins.WithLabelValues("spend")), ShouldEqual, 2)
		})

		Convey("HTTP observations show up on the handler", func() {
			m.ObserveHTTP("/api/v1/health", http.MethodGet, 200, 10*time.Millisecond)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `test_http_requests_total{method="GET",route="/api/v1/health",status_code="200"} 1`)
		})
	})

	Convey("A nil manager records nothing and does not panic", t, func() {
		var m *Manager
		So(func() {
			m.RecordLedgerEntry("earn", 1)
			m.RecordInsufficientFunds()
			m.RecordTransition("accepted")
			m.RecordQuiz(true)
			m.RecordCacheLookup(false)
			m.ObserveHTTP("/", "GET", 200, time.Millisecond)
		}, ShouldNotPanic)
	})
}
