package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/prebid/prebid-gpp/config"
	"github.com/prebid/prebid-gpp/endpoints"
	"github.com/prebid/prebid-gpp/gpp"
	"github.com/prebid/prebid-gpp/metrics"
	prometheusmetrics "github.com/prebid/prebid-gpp/metrics/prometheus"
)

// Router serves the public endpoints. Registry is nil when Prometheus metrics are disabled.
type Router struct {
	*httprouter.Router
	MetricsEngine metrics.MetricsEngine
	Registry      *prometheus.Registry
}

// New builds the public router and the metrics engine shared by its endpoints.
func New(cfg *config.Configuration) *Router {
	r := &Router{
		Router: httprouter.New(),
	}

	if cfg.Metrics.Prometheus.Port != 0 {
		prometheusEngine := prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus)
		r.MetricsEngine = prometheusEngine
		r.Registry = prometheusEngine.Registry
	} else {
		r.MetricsEngine = &metrics.NilMetricsEngine{}
	}

	decoder := gpp.NewDecoder(cfg.MaxConsentLength, r.MetricsEngine)

	r.GET("/gpp/decode", endpoints.NewDecodeEndpoint(decoder, r.MetricsEngine))
	r.GET("/status", endpoints.NewStatusEndpoint(cfg.StatusResponse))

	return r
}

// Admin returns the handler of the admin port.
func Admin(version, revision string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(version, revision))
	return mux
}

type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

// SupportCORS lets browsers call the decode endpoint. Every origin is allowed unless
// allowedOrigins restricts them; no credentials are involved in decoding a string.
func SupportCORS(handler http.Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}
