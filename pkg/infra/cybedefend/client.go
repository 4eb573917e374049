package cybedefend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/cybedefend/cdscan/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DebugBaseURL is used instead of the regional endpoint in debug mode.
	DebugBaseURL = "http://localhost:3000"

	gcsHost             = "storage.googleapis.com"
	gcsMaxContentLength = "0,5368709120"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    *url.URL
	apiKey     types.APIKey
	httpClient HTTPClient
}

var _ interfaces.CybeDefend = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

// ResolveBaseURL picks the API endpoint. An explicit override wins, then
// debug mode, then the region.
func ResolveBaseURL(region types.Region, override string, debug bool) string {
	switch {
	case override != "":
		return override
	case debug:
		return DebugBaseURL
	default:
		return region.BaseURL()
	}
}

func New(apiKey types.APIKey, baseURL string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "API key is empty")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid API base URL", goerr.V("base_url", baseURL))
	}

	client := &Client{
		baseURL:    u,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) BaseURL() string {
	return strings.TrimRight(x.baseURL.String(), "/")
}

// StartScan implements interfaces.CybeDefend.
func (x *Client) StartScan(ctx context.Context, projectID types.ProjectID, branch types.BranchName) (*model.StartScanResponse, error) {
	query := url.Values{}
	if branch != "" {
		query.Set("branch", branch.String())
	}

	var resp model.StartScanResponse
	req := &apiRequest{
		operation: "startScan",
		method:    http.MethodPost,
		path:      "project/" + url.PathEscape(projectID.String()) + "/scan/start",
		query:     query,
		context:   fmt.Sprintf("ProjectId: %s", projectID),
	}
	if err := x.call(ctx, req, &resp); err != nil {
		return nil, err
	}

	if resp.ScanID == "" || resp.URL == "" {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "scan start response lacks scan ID or upload URL",
			goerr.V("project_id", projectID),
			goerr.V("scan_id", resp.ScanID),
		)
	}

	return &resp, nil
}

// UploadArchive implements interfaces.CybeDefend. The signed URL already
// carries its credentials, so the API key is not sent.
func (x *Client) UploadArchive(ctx context.Context, uploadURL string, archivePath string) error {
	fd, err := os.Open(archivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer safe.Close(fd)

	stat, err := fd.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat archive", goerr.V("path", archivePath))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, fd)
	if err != nil {
		return goerr.Wrap(types.ErrUploadFailed, "invalid upload URL", goerr.V("error", err.Error()))
	}
	req.ContentLength = stat.Size()
	req.Header.Set("Content-Type", "application/zip")
	if isGCSURL(req.URL) {
		req.Header.Set("x-goog-if-generation-match", "0")
		req.Header.Set("x-goog-content-length-range", gcsMaxContentLength)
	}

	logging.From(ctx).Debug("Uploading archive",
		slog.String("host", req.URL.Host),
		slog.Int64("size", stat.Size()),
	)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "archive upload interrupted")
		}
		return goerr.Wrap(types.ErrUploadFailed, "failed to send archive", goerr.V("error", err.Error()))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = "Unknown error"
		}
		return goerr.Wrap(types.ErrUploadFailed,
			fmt.Sprintf("Upload failed with code %d: %s", resp.StatusCode, detail),
			goerr.V("status", resp.StatusCode),
		)
	}

	return nil
}

func isGCSURL(u *url.URL) bool {
	host := u.Hostname()
	return host == gcsHost || strings.HasSuffix(host, "."+gcsHost)
}

// GetScanStatus implements interfaces.CybeDefend.
func (x *Client) GetScanStatus(ctx context.Context, projectID types.ProjectID, scanID types.ScanID) (*model.ScanStatusResponse, error) {
	var resp model.ScanStatusResponse
	req := &apiRequest{
		operation: "getScanStatus",
		method:    http.MethodGet,
		path:      "project/" + url.PathEscape(projectID.String()) + "/scan/" + url.PathEscape(scanID.String()),
		context:   fmt.Sprintf("ProjectId: %s, ScanId: %s", projectID, scanID),
	}
	if err := x.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSASTResults implements interfaces.CybeDefend.
func (x *Client) GetSASTResults(ctx context.Context, query *model.ResultsQuery) (*model.SASTPage, error) {
	var resp model.SASTPage
	if err := x.getResults(ctx, types.VulnTypeSAST, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetIaCResults implements interfaces.CybeDefend.
func (x *Client) GetIaCResults(ctx context.Context, query *model.ResultsQuery) (*model.IaCPage, error) {
	var resp model.IaCPage
	if err := x.getResults(ctx, types.VulnTypeIaC, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSCAResults implements interfaces.CybeDefend.
func (x *Client) GetSCAResults(ctx context.Context, query *model.ResultsQuery) (*model.SCAPage, error) {
	var resp model.SCAPage
	if err := x.getResults(ctx, types.VulnTypeSCA, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVulnerabilityDetails implements interfaces.CybeDefend.
func (x *Client) GetVulnerabilityDetails(ctx context.Context, projectID types.ProjectID, vulnType types.VulnType, vulnerabilityID string) (*model.VulnerabilityDetails, error) {
	if !slices.Contains(types.VulnTypes, vulnType) {
		return nil, goerr.Wrap(types.ErrInvalidOption, "unknown vulnerability type", goerr.V("type", vulnType))
	}
	if vulnerabilityID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "vulnerability ID is required")
	}

	var resp model.VulnerabilityDetails
	req := &apiRequest{
		operation: "getVulnerabilityDetails",
		method:    http.MethodGet,
		path: "project/" + url.PathEscape(projectID.String()) +
			"/results/" + vulnType.String() + "/" + url.PathEscape(vulnerabilityID),
		context: fmt.Sprintf("VulnerabilityId: %s", vulnerabilityID),
	}
	if err := x.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (x *Client) getResults(ctx context.Context, vulnType types.VulnType, query *model.ResultsQuery, out any) error {
	pageNumber := query.PageNumber
	if pageNumber < 1 {
		pageNumber = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	values := url.Values{}
	values.Set("pageNumber", strconv.Itoa(pageNumber))
	values.Set("pageSizeNumber", strconv.Itoa(pageSize))
	for _, sev := range query.Severities {
		values.Add("severity", sev)
	}
	if query.Branch != "" {
		values.Set("branch", query.Branch.String())
	}

	req := &apiRequest{
		operation: "get" + strings.ToUpper(vulnType.String()[:1]) + vulnType.String()[1:] + "Results",
		method:    http.MethodGet,
		path:      "project/" + url.PathEscape(query.ProjectID.String()) + "/results/" + vulnType.String(),
		query:     values,
		context:   fmt.Sprintf("ProjectId: %s, Page: %d", query.ProjectID, pageNumber),
	}
	return x.call(ctx, req, out)
}

// DefaultPageSize is the page size used when a query does not set one.
const DefaultPageSize = 50

type apiRequest struct {
	operation string
	method    string
	path      string
	query     url.Values
	context   string
}

func (x *Client) call(ctx context.Context, r *apiRequest, out any) error {
	u := x.baseURL.ResolveReference(&url.URL{Path: r.path})
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build API request", goerr.V("operation", r.operation))
	}
	req.Header.Set("X-API-Key", string(x.apiKey))
	req.Header.Set("Accept", "application/json")

	logging.From(ctx).Debug("Sending API request",
		slog.String("operation", r.operation),
		slog.String("method", r.method),
		slog.String("path", u.Path),
	)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "API request interrupted", goerr.V("operation", r.operation))
		}
		msg := fmt.Sprintf("Network Error for '%s': Could not reach server at %s. Please check your internet connection and VPN settings. (Context: %s)",
			r.operation, x.BaseURL(), r.context)
		return goerr.Wrap(types.ErrAPIRequest, msg,
			goerr.V("operation", r.operation),
			goerr.V("error", err.Error()),
		)
	}
	defer safe.Close(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(types.ErrAPIRequest, "failed to read API response",
			goerr.V("operation", r.operation),
			goerr.V("error", err.Error()),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(types.ErrAPIRequest, statusMessage(resp.StatusCode, r, body),
			goerr.V("operation", r.operation),
			goerr.V("status", resp.StatusCode),
			goerr.V("context", r.context),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return goerr.Wrap(types.ErrInvalidResponse, "failed to decode API response",
			goerr.V("operation", r.operation),
			goerr.V("error", err.Error()),
		)
	}

	return nil
}

func statusMessage(code int, r *apiRequest, body []byte) string {
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(code)
	}

	switch {
	case code == http.StatusBadRequest:
		return fmt.Sprintf("API Error: Invalid Request for '%s'. %s (Context: %s)", r.operation, detail, r.context)
	case code == http.StatusUnauthorized:
		return fmt.Sprintf("API Authentication Failed: Invalid or missing API Key. Please check settings. (Operation: '%s')", r.operation)
	case code == http.StatusForbidden:
		return fmt.Sprintf("API Authorization Failed for '%s': Access Denied. Check permissions. (Context: %s)", r.operation, r.context)
	case code == http.StatusNotFound:
		return fmt.Sprintf("API Error: Resource not found for '%s'. (Context: %s)", r.operation, r.context)
	case code == http.StatusTooManyRequests:
		return fmt.Sprintf("API Rate Limit Exceeded for '%s'. Please try later. (Context: %s)", r.operation, r.context)
	case code >= 500 && code <= 599:
		return fmt.Sprintf("Server Error (%d) during '%s'. Please try later. (Context: %s)", code, r.operation, r.context)
	default:
		return fmt.Sprintf("API Error (%d) during '%s': %s (Context: %s)", code, r.operation, detail, r.context)
	}
}
