package model

import (
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ScanInput is the request to scan one workspace.
type ScanInput struct {
	ProjectID     types.ProjectID
	WorkspaceRoot string
}

func (x *ScanInput) Validate() error {
	if x.ProjectID == "" {
		return goerr.Wrap(types.ErrInvalidOption, "project ID is empty")
	}
	if x.WorkspaceRoot == "" {
		return goerr.Wrap(types.ErrInvalidOption, "workspace root is empty")
	}
	return nil
}

// ScanJob identifies one remote scan. It is not modified after creation.
type ScanJob struct {
	JobID     types.JobID
	ScanID    types.ScanID
	ProjectID types.ProjectID
	Branch    types.BranchName
	UploadURL string
}

// ScanRecord is the outcome of one run, kept in the scan history and exported.
type ScanRecord struct {
	JobID      types.JobID      `bigquery:"job_id" json:"job_id" firestore:"job_id"`
	ScanID     types.ScanID     `bigquery:"scan_id" json:"scan_id,omitempty" firestore:"scan_id"`
	ProjectID  types.ProjectID  `bigquery:"project_id" json:"project_id" firestore:"project_id"`
	Branch     types.BranchName `bigquery:"branch" json:"branch,omitempty" firestore:"branch"`
	Repository string           `bigquery:"repository" json:"repository,omitempty" firestore:"repository"`
	State      types.ScanState  `bigquery:"state" json:"state" firestore:"state"`
	Error      string           `bigquery:"error" json:"error,omitempty" firestore:"error"`
	SASTCount  int              `bigquery:"sast_count" json:"sast_count" firestore:"sast_count"`
	IaCCount   int              `bigquery:"iac_count" json:"iac_count" firestore:"iac_count"`
	SCACount   int              `bigquery:"sca_count" json:"sca_count" firestore:"sca_count"`
	StartedAt  time.Time        `bigquery:"started_at" json:"started_at" firestore:"started_at"`
	FinishedAt time.Time        `bigquery:"finished_at" json:"finished_at" firestore:"finished_at"`
}

func (x *ScanRecord) Total() int {
	return x.SASTCount + x.IaCCount + x.SCACount
}

// Results is a complete result set, published at once.
type Results struct {
	SAST      []Vulnerability
	IaC       []Vulnerability
	SCA       []Vulnerability
	ScanState types.ScanState
	Branch    types.BranchName
}

func (x *Results) Total() int {
	return len(x.SAST) + len(x.IaC) + len(x.SCA)
}

// Snapshot is a point-in-time copy of the scan state.
type Snapshot struct {
	IsLoading            bool             `json:"is_loading"`
	Error                string           `json:"error,omitempty"`
	TotalVulnerabilities int              `json:"total_vulnerabilities"`
	LastScanState        types.ScanState  `json:"last_scan_state"`
	CurrentBranch        types.BranchName `json:"current_branch,omitempty"`
	SAST                 []Vulnerability  `json:"sast"`
	IaC                  []Vulnerability  `json:"iac"`
	SCA                  []Vulnerability  `json:"sca"`
}

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

type Notification struct {
	Level   NotificationLevel
	Title   string
	Message string
}
