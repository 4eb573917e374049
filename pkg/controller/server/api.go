package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/errutil"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

const maxListLimit = 100

type errorResponse struct {
	Error     string      `json:"error"`
	ActiveJob types.JobID `json:"active_job,omitempty"`
}

type stateResponse struct {
	model.Snapshot
	ActiveJob types.JobID `json:"active_job,omitempty"`
}

type scanRequest struct {
	ProjectID     types.ProjectID `json:"project_id"`
	WorkspaceRoot string          `json:"workspace_root"`
}

type scanResponse struct {
	JobID types.JobID `json:"job_id"`
}

type scansResponse struct {
	Scans []*model.ScanRecord `json:"scans"`
}

func getState(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse{
			Snapshot:  uc.Snapshot(),
			ActiveJob: uc.ActiveJob(),
		})
	}
}

func resetState(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if active := uc.ActiveJob(); active != "" {
			writeJSON(w, http.StatusConflict, errorResponse{
				Error:     "a scan is running",
				ActiveJob: active,
			})
			return
		}

		uc.ResetState()
		writeJSON(w, http.StatusOK, stateResponse{Snapshot: uc.Snapshot()})
	}
}

func startScan(uc interfaces.UseCase, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isJSONRequest(r) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
			return
		}

		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		root, err := resolveWorkspace(cfg.workspaceRoot, req.WorkspaceRoot)
		if err != nil {
			logging.From(r.Context()).Warn("workspace rejected", "requested", req.WorkspaceRoot, "error", err)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "workspace_root must be inside the served directory"})
			return
		}

		input := &model.ScanInput{
			ProjectID:     cfg.projectID,
			WorkspaceRoot: root,
		}
		if req.ProjectID != "" {
			input.ProjectID = req.ProjectID
		}
		if err := input.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		jobID, _, err := uc.StartScan(DetachContext(r.Context()), input)
		switch {
		case errors.Is(err, types.ErrScanInProgress):
			writeJSON(w, http.StatusConflict, errorResponse{
				Error:     "a scan is already running",
				ActiveJob: uc.ActiveJob(),
			})
			return
		case errors.Is(err, types.ErrInvalidOption):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		case err != nil:
			errutil.HandleError(r.Context(), "fail to start scan", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to start scan"})
			return
		}

		logging.From(r.Context()).Info("scan accepted", "job_id", jobID, "project_id", input.ProjectID)
		writeJSON(w, http.StatusAccepted, scanResponse{JobID: jobID})
	}
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// resolveWorkspace returns the directory to scan. A requested directory must
// resolve, symlinks included, to root or a directory below it.
func resolveWorkspace(root, requested string) (string, error) {
	if requested == "" {
		return root, nil
	}
	if root == "" {
		return "", goerr.Wrap(types.ErrInvalidOption, "no served directory to scan below")
	}

	base, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve served directory", goerr.V("root", root))
	}

	candidate := requested
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(base, candidate)
	}
	candidate, err = filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve workspace", goerr.V("requested", requested))
	}

	rel, err := filepath.Rel(base, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", goerr.Wrap(types.ErrInvalidOption, "workspace is outside the served directory",
			goerr.V("requested", requested),
			goerr.V("root", root),
		)
	}
	return candidate, nil
}

func cancelScan(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := uc.ActiveJob()
		if !uc.CancelScan() {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "no scan is running"})
			return
		}

		writeJSON(w, http.StatusAccepted, scanResponse{JobID: active})
	}
}

func listScans(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
				return
			}
			limit = min(n, maxListLimit)
		}
		projectID := types.ProjectID(r.URL.Query().Get("project_id"))

		records, err := uc.ListScans(r.Context(), projectID, limit)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to list scans", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list scans"})
			return
		}
		if records == nil {
			records = []*model.ScanRecord{}
		}

		writeJSON(w, http.StatusOK, scansResponse{Scans: records})
	}
}

func getVulnerability(uc interfaces.UseCase, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vulnType, err := types.ParseVulnType(chi.URLParam(r, "type"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type must be one of sast, iac, sca"})
			return
		}

		projectID := cfg.projectID
		if v := r.URL.Query().Get("project_id"); v != "" {
			projectID = types.ProjectID(v)
		}

		vuln, err := uc.GetVulnerability(r.Context(), projectID, vulnType, chi.URLParam(r, "id"))
		switch {
		case errors.Is(err, types.ErrInvalidOption):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		case errors.Is(err, types.ErrAPIRequest), errors.Is(err, types.ErrInvalidResponse):
			logging.From(r.Context()).Warn("vulnerability lookup failed", "error", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		case err != nil:
			errutil.HandleError(r.Context(), "fail to get vulnerability", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get vulnerability"})
			return
		}

		writeJSON(w, http.StatusOK, vuln)
	}
}
