package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nrng2025001/motorsync-sub002/internal/booking"
	"github.com/nrng2025001/motorsync-sub002/internal/enquiry"
	"github.com/nrng2025001/motorsync-sub002/internal/quotation"
	"github.com/nrng2025001/motorsync-sub002/internal/stats"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config
	Auth   *Auth

	EnquiryHandler   *enquiry.Handler
	BookingHandler   *booking.Handler
	QuotationHandler *quotation.Handler
	StatsHandler     *stats.Handler
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(params.Auth.Require)

		r.Route("/enquiries", params.EnquiryHandler.MountRoutes)
		r.Route("/bookings", params.BookingHandler.MountRoutes)
		if params.QuotationHandler != nil {
			r.Route("/quotations", params.QuotationHandler.MountRoutes)
		}
		if params.StatsHandler != nil {
			r.Route("/stats", params.StatsHandler.MountRoutes)
		}
	})

	return r
}
