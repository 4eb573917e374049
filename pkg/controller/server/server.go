package server

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type config struct {
	projectID     types.ProjectID
	workspaceRoot string
}

type Option func(*config)

// WithProjectID sets the project scanned when a request does not name one.
func WithProjectID(projectID types.ProjectID) Option {
	return func(cfg *config) {
		cfg.projectID = projectID
	}
}

// WithWorkspaceRoot sets the directory scanned when a request does not name one.
func WithWorkspaceRoot(root string) Option {
	return func(cfg *config) {
		cfg.workspaceRoot = root
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(rejectCrossOrigin)
		r.Get("/state", getState(uc))
		r.Delete("/state", resetState(uc))
		r.Post("/scan", startScan(uc, cfg))
		r.Delete("/scan", cancelScan(uc))
		r.Get("/scans", listScans(uc))
		r.Get("/vulnerabilities/{type}/{id}", getVulnerability(uc, cfg))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
