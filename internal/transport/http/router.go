package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandler "erigateway/internal/auth/handler"
	filinghandler "erigateway/internal/filing/handler"
	"erigateway/internal/platform/metrics"
	"erigateway/internal/platform/middleware"
	dErrors "erigateway/pkg/domain-errors"
	"erigateway/pkg/platform/httputil"
	"erigateway/pkg/platform/middleware/request"
	"erigateway/pkg/platform/middleware/requesttime"
)

const MetricsPath = "/metrics"

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// ProtocolEndpoints lists the nine protocol calls in filing order.
var ProtocolEndpoints = []string{
	"POST " + authhandler.LoginPath,
	"POST " + filinghandler.AddClientPath,
	"POST " + filinghandler.PrefillPath,
	"POST " + filinghandler.ValidatePath,
	"POST " + filinghandler.SaveDraftPath,
	"POST " + filinghandler.SetVerificationModePath,
	"POST " + filinghandler.SubmitPath,
	"POST " + filinghandler.AcknowledgementPath,
	"POST " + authhandler.LogoutPath,
}

// NewRouter wires the shared middleware chain and every module's routes.
// Handlers stay thin and delegate to services.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, modules ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(request.RequestID)
	r.Use(request.Recovery(logger))
	r.Use(requesttime.Middleware)
	r.Use(middleware.Tracing)
	r.Use(request.Logger(logger))
	if m != nil {
		r.Use(middleware.Latency(m))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:            "method_not_allowed",
			ErrorDescription: "method not allowed",
		})
	})

	for _, module := range modules {
		module.Register(r)
	}
	if m != nil {
		r.Handle(MetricsPath, m.Handler())
	}
	return r
}
