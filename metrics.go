package lsprpc

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware instruments dispatch duration and per-method
// error counts for the synchronous dispatch chain registered via
// MapRequestHandler.Use.
func PrometheusMiddleware(appName string) MiddlewareFunc {
	if appName == "" {
		appName = "lsprpc"
	}

	rpcErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: appName,
		Subsystem: "rpc",
		Name:      "error_requests_count",
		Help:      "Error requests count by method and error code.",
	}, []string{"method", "code"})

	rpcDurations := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: appName,
		Subsystem: "rpc",
		Name:      "responses_duration_seconds",
		Help:      "Response time by method and error code.",
	}, []string{"method", "code"})

	prometheus.MustRegister(rpcErrors, rpcDurations)

	return func(next InvokeFunc) InvokeFunc {
		return func(ctx context.Context, method string, params json.RawMessage) ResponseResult {
			start, code := time.Now(), ""
			res := next(ctx, method, params)

			if res.Kind == ResultError && res.ErrVal != nil {
				code = strconv.FormatInt(res.ErrVal.Code, 10)
				rpcErrors.WithLabelValues(method, code).Inc()
			}
			rpcDurations.WithLabelValues(method, code).Observe(time.Since(start).Seconds())

			return res
		}
	}
}
