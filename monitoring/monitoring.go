package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RegisterSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "register_success_total",
		Help: "Total successful sign-ups",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	ProfilesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profiles_created_total",
		Help: "Total profiles registered",
	})

	LikeToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "like_toggles_total",
		Help: "Effective like additions and removals",
	}, []string{"action"})

	BlacklistToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blacklist_toggles_total",
		Help: "Effective blacklist additions and removals",
	}, []string{"action"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RegisterSuccess)
	prometheus.MustRegister(LoginFailure)
	prometheus.MustRegister(ProfilesCreated)
	prometheus.MustRegister(LikeToggles)
	prometheus.MustRegister(BlacklistToggles)
}

// Instrument records request timing per matched route template, so /accounts/1
// and /accounts/2 share one series.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
