// Package metrics expone las métricas Prometheus del portal.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la aplicación sobre un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	LoginAttempts     *prometheus.CounterVec
	ClientsRegistered *prometheus.CounterVec
	BulkRows          *prometheus.CounterVec
}

// New crea el registro y los colectores. Incluye los colectores de Go y del proceso.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_pld_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y estado",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_pld_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_pld_login_attempts_total",
			Help: "Intentos de inicio de sesión por resultado",
		}, []string{"result"}),
		ClientsRegistered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_pld_clients_registered_total",
			Help: "Clientes registrados por tipo y nivel de riesgo",
		}, []string{"tipo_cliente", "nivel_riesgo"}),
		BulkRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_pld_bulk_rows_total",
			Help: "Filas procesadas en cargas masivas por resultado",
		}, []string{"result"}),
	}
}

// Registry devuelve el registro (tests y handler).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware registra conteo y duración por ruta. Usa el patrón de la ruta, no el path, para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "sin_ruta"
		}
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// ObserveLogin cuenta un intento de login ("ok", "credenciales", "inactivo", "limitado", "error").
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveClientRegistered cuenta un alta de cliente.
func (m *Metrics) ObserveClientRegistered(tipo, riesgo string) {
	if m == nil {
		return
	}
	m.ClientsRegistered.WithLabelValues(tipo, riesgo).Inc()
}

// ObserveBulk suma las filas válidas e inválidas de una carga.
func (m *Metrics) ObserveBulk(validas, invalidas int) {
	if m == nil {
		return
	}
	m.BulkRows.WithLabelValues("valida").Add(float64(validas))
	m.BulkRows.WithLabelValues("invalida").Add(float64(invalidas))
}
