package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prebid/prebid-gpp/config"
	"github.com/prebid/prebid-gpp/logger"
)

const prometheusTimeout = 10 * time.Second

func newPrometheusServer(cfg *config.Configuration, registry *prometheus.Registry) *http.Server {
	return &http.Server{
		Addr: cfg.Host + ":" + strconv.Itoa(cfg.Metrics.Prometheus.Port),
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			ErrorLog:            loggerForPrometheus{},
			MaxRequestsInFlight: 5,
			Timeout:             prometheusTimeout,
		}),
	}
}

type loggerForPrometheus struct{}

func (loggerForPrometheus) Println(v ...interface{}) {
	logger.Warnf("%s", fmt.Sprintln(v...))
}
