package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cybedefend/cdscan/pkg/cli"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

const sastBody = `{
	"vulnerabilities": [
		{"base": {"id": "v1", "currentSeverity": "HIGH", "path": "main.go", "vulnerableStartLine": 3,
			"vulnerability": {"id": "m1", "name": "SQL injection"}}},
		{"base": {"id": "v2", "currentSeverity": "low", "path": "util.go",
			"vulnerability": {"id": "m2", "name": "Weak hash"}}}
	],
	"total": 2,
	"scanProjectInfo": {"scanId": "s1", "state": "COMPLETED"}
}`

const scaBody = `{
	"vulnerabilities": [
		{"base": {"id": "v3", "currentSeverity": "CRITICAL"},
		 "library": {"packageName": "lodash", "packageVersion": "4.17.0", "ecosystem": "npm", "fileName": "package.json"}}
	],
	"total": 1
}`

const scaDetailBody = `{"base": {"id": "v3", "currentSeverity": "CRITICAL", "currentState": "to_verify",
	"vulnerability": {"id": "m3", "name": "Prototype pollution"}},
	"library": {"packageName": "lodash", "packageVersion": "4.17.0", "ecosystem": "npm", "fileName": "package.json"}}`

type fakeBackend struct {
	mutex    sync.Mutex
	statuses []string
	polls    int
	uploaded int
	apiKeys  []string
}

func (x *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if r.URL.Path != "/upload" {
		x.apiKeys = append(x.apiKeys, r.Header.Get("X-API-Key"))
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/project/p1/scan/start":
		fmt.Fprintf(w, `{"scanId":"s1","url":"http://%s/upload"}`, r.Host)

	case r.Method == http.MethodPut && r.URL.Path == "/upload":
		body, _ := io.ReadAll(r.Body)
		x.uploaded = len(body)
		w.WriteHeader(http.StatusOK)

	case r.URL.Path == "/project/p1/scan/s1":
		state := x.statuses[min(x.polls, len(x.statuses)-1)]
		x.polls++
		fmt.Fprintf(w, `{"id":"s1","state":%q,"progress":%d}`, state, x.polls*30)

	case r.URL.Path == "/project/p1/results/sast":
		fmt.Fprint(w, sastBody)
	case r.URL.Path == "/project/p1/results/iac":
		fmt.Fprint(w, `{"vulnerabilities":[],"total":0}`)
	case r.URL.Path == "/project/p1/results/sca":
		fmt.Fprint(w, scaBody)
	case r.URL.Path == "/project/p1/results/sca/v3":
		fmt.Fprint(w, `{"projectId":"p1","vulnerabilityId":"v3","sca":`+scaDetailBody+`}`)

	default:
		http.NotFound(w, r)
	}
}

func scanArgs(t *testing.T, apiURL string, extra ...string) []string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"main.go":                 "package main",
		"node_modules/x/index.js": "x",
	})

	args := []string{
		"cdscan", "scan",
		"--dir", root,
		"--api-key", "test-key",
		"--api-url", apiURL,
		"--project-id", "p1",
		"--poll-interval", "1ms",
	}
	return append(args, extra...)
}

func TestScanCommand(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		backend := &fakeBackend{statuses: []string{"QUEUED", "RUNNING", "COMPLETED"}}
		srv := httptest.NewServer(backend)
		defer srv.Close()

		var out bytes.Buffer
		gt.NoError(t, cli.New(cli.WithWriter(&out)).Run(scanArgs(t, srv.URL)))

		gt.V(t, backend.polls).Equal(3)
		gt.True(t, backend.uploaded > 0)
		for _, key := range backend.apiKeys {
			gt.V(t, key).Equal("test-key")
		}
		gt.S(t, out.String()).Contains("Found 3 vulnerabilities")
		gt.S(t, out.String()).Contains("Scan state: COMPLETED")
		gt.S(t, out.String()).Contains("SQL injection")
	})

	t.Run("fail on findings", func(t *testing.T) {
		backend := &fakeBackend{statuses: []string{"COMPLETED"}}
		srv := httptest.NewServer(backend)
		defer srv.Close()

		err := cli.New(cli.WithWriter(io.Discard)).Run(scanArgs(t, srv.URL, "--fail-on-findings"))
		gt.True(t, errors.Is(err, cli.ErrFindingsDetected))
	})

	t.Run("failed scan is an error", func(t *testing.T) {
		backend := &fakeBackend{statuses: []string{"RUNNING", "FAILED"}}
		srv := httptest.NewServer(backend)
		defer srv.Close()

		err := cli.New(cli.WithWriter(io.Discard)).Run(scanArgs(t, srv.URL))
		gt.True(t, errors.Is(err, types.ErrScanFailed))
	})

	t.Run("timeout after max attempts", func(t *testing.T) {
		backend := &fakeBackend{statuses: []string{"RUNNING"}}
		srv := httptest.NewServer(backend)
		defer srv.Close()

		err := cli.New(cli.WithWriter(io.Discard)).Run(scanArgs(t, srv.URL, "--max-attempts", "4"))
		gt.True(t, errors.Is(err, types.ErrScanTimeout))
		gt.V(t, backend.polls).Equal(4)
	})

	t.Run("project ID is required", func(t *testing.T) {
		t.Setenv("CDSCAN_PROJECT_ID", "")
		err := cli.New(cli.WithWriter(io.Discard)).Run([]string{
			"cdscan", "scan", "--api-key", "k", "--dir", t.TempDir(),
		})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestStatusCommand(t *testing.T) {
	backend := &fakeBackend{statuses: []string{"running"}}
	srv := httptest.NewServer(backend)
	defer srv.Close()

	var out bytes.Buffer
	gt.NoError(t, cli.New(cli.WithWriter(&out)).Run([]string{
		"cdscan", "status",
		"--api-key", "k",
		"--api-url", srv.URL,
		"--project-id", "p1",
		"--scan-id", "s1",
	}))

	gt.S(t, out.String()).Contains("State:    RUNNING")
	gt.S(t, out.String()).Contains("Progress: 30%")
}

func TestShowCommand(t *testing.T) {
	backend := &fakeBackend{statuses: []string{"COMPLETED"}}
	srv := httptest.NewServer(backend)
	defer srv.Close()

	args := func(vulnType, id string) []string {
		return []string{
			"cdscan", "show",
			"--api-key", "k",
			"--api-url", srv.URL,
			"--project-id", "p1",
			"--type", vulnType,
			"--id", id,
		}
	}

	t.Run("prints the vulnerability", func(t *testing.T) {
		var out bytes.Buffer
		gt.NoError(t, cli.New(cli.WithWriter(&out)).Run(args("SCA", "v3")))

		gt.S(t, out.String()).Contains("ID:       v3")
		gt.S(t, out.String()).Contains("Name:     Prototype pollution")
		gt.S(t, out.String()).Contains("Severity: CRITICAL")
		gt.S(t, out.String()).Contains("Package:  lodash@4.17.0")
	})

	t.Run("unknown type", func(t *testing.T) {
		err := cli.New(cli.WithWriter(io.Discard)).Run(args("dast", "v3"))
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("unknown vulnerability", func(t *testing.T) {
		err := cli.New(cli.WithWriter(io.Discard)).Run(args("sast", "missing"))
		gt.True(t, errors.Is(err, types.ErrAPIRequest))
	})
}

func TestHistoryCommandNeedsFirestore(t *testing.T) {
	t.Setenv("CDSCAN_FIRESTORE_PROJECT_ID", "")
	err := cli.New(cli.WithWriter(io.Discard)).Run([]string{"cdscan", "history"})
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
