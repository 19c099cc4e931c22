package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jacentio/catalog/catalog"
)

// Version is reported by the index route.
const Version = "1.0.0"

// Options configures a Server.
type Options struct {
	// ServiceName is reported by /health and used as the span name prefix.
	ServiceName string

	// Logger receives request and failure logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Now is used for health timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Server routes HTTP requests to the catalog services.
type Server struct {
	cat    *catalog.Catalog
	opts   Options
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates a Server and registers its routes.
func New(cat *catalog.Catalog, opts Options) *Server {
	if opts.ServiceName == "" {
		opts.ServiceName = "catalog-service"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		cat:    cat,
		opts:   opts,
		logger: opts.Logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler without middleware.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the routes wrapped in request logging and tracing.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(withLogging(s.mux, s.logger), s.opts.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/clients", s.createClient)
	s.mux.HandleFunc("GET /api/clients", s.listClients)
	s.mux.HandleFunc("GET /api/clients/{id}", s.getClient)
	s.mux.HandleFunc("PUT /api/clients/{id}", s.updateClient)
	s.mux.HandleFunc("DELETE /api/clients/{id}", s.deleteClient)
	s.mux.HandleFunc("POST /api/clients/{clientId}/addresses", s.createAddress)
	s.mux.HandleFunc("GET /api/clients/{clientId}/addresses", s.listClientAddresses)

	s.mux.HandleFunc("GET /api/addresses", s.listAddresses)
	s.mux.HandleFunc("GET /api/addresses/{id}", s.getAddress)
	s.mux.HandleFunc("PUT /api/addresses/{id}", s.updateAddress)
	s.mux.HandleFunc("DELETE /api/addresses/{id}", s.deleteAddress)

	s.mux.HandleFunc("POST /api/products", s.createProduct)
	s.mux.HandleFunc("GET /api/products", s.listProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.getProduct)
	s.mux.HandleFunc("PUT /api/products/{id}", s.updateProduct)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.deleteProduct)

	s.mux.HandleFunc("GET /health", s.health)
	s.mux.HandleFunc("GET /{$}", s.index)
	s.mux.HandleFunc("/", s.notFound)
}

// storeContext keeps request values but not cancellation: a client that
// disconnects does not abort store calls already issued.
func storeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Service:   s.opts.ServiceName,
		Timestamp: s.opts.Now().UTC().Format(time.RFC3339Nano),
	})
}

type indexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, indexResponse{
		Message: "Catalog service REST API",
		Version: Version,
		Endpoints: map[string]string{
			"clients":   "/api/clients",
			"addresses": "/api/addresses",
			"products":  "/api/products",
			"health":    "/health",
		},
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, http.StatusNotFound, "route not found", r.Method+" "+r.URL.Path)
}
