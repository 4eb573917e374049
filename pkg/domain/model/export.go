package model

import (
	"time"

	"github.com/cybedefend/cdscan/pkg/domain/types"
)

// ScanExport is one row of the results table: a finished run and its
// findings.
type ScanExport struct {
	JobID      types.JobID      `bigquery:"job_id" json:"job_id"`
	ScanID     types.ScanID     `bigquery:"scan_id" json:"scan_id"`
	ProjectID  types.ProjectID  `bigquery:"project_id" json:"project_id"`
	Branch     types.BranchName `bigquery:"branch" json:"branch"`
	Repository string           `bigquery:"repository" json:"repository"`
	State      types.ScanState  `bigquery:"state" json:"state"`
	StartedAt  time.Time        `bigquery:"started_at" json:"started_at"`
	FinishedAt time.Time        `bigquery:"finished_at" json:"finished_at"`
	Findings   []FindingExport  `bigquery:"findings" json:"findings"`
}

// ScanExportRawRecord carries the timestamps as microseconds, which is how
// the storage write API expects TIMESTAMP columns.
type ScanExportRawRecord struct {
	ScanExport
	StartedAt  int64 `bigquery:"started_at" json:"started_at"`
	FinishedAt int64 `bigquery:"finished_at" json:"finished_at"`
}

type FindingExport struct {
	ID             string         `bigquery:"id" json:"id"`
	Type           types.VulnType `bigquery:"type" json:"type"`
	Name           string         `bigquery:"name" json:"name"`
	Path           string         `bigquery:"path" json:"path"`
	Language       string         `bigquery:"language" json:"language"`
	Severity       string         `bigquery:"severity" json:"severity"`
	Priority       string         `bigquery:"priority" json:"priority"`
	State          string         `bigquery:"state" json:"state"`
	StartLine      int            `bigquery:"start_line" json:"start_line"`
	EndLine        int            `bigquery:"end_line" json:"end_line"`
	CWE            []string       `bigquery:"cwe" json:"cwe"`
	PackageName    string         `bigquery:"package_name" json:"package_name"`
	PackageVersion string         `bigquery:"package_version" json:"package_version"`
	CVSSScore      float64        `bigquery:"cvss_score" json:"cvss_score"`
}

func NewFindingExport(v *Vulnerability) FindingExport {
	f := FindingExport{
		ID:        v.ID,
		Type:      v.Type,
		Name:      v.Metadata.Name,
		Path:      v.Path,
		Language:  v.Language,
		Severity:  v.Severity,
		Priority:  v.Priority,
		State:     v.State,
		StartLine: v.StartLine,
		EndLine:   v.EndLine,
		CWE:       v.Metadata.CWE,
	}
	if f.CWE == nil {
		f.CWE = []string{}
	}
	if v.SCA != nil {
		if v.SCA.Library != nil {
			f.PackageName = v.SCA.Library.PackageName
			f.PackageVersion = v.SCA.Library.PackageVersion
		}
		if v.SCA.CVSSScore != nil {
			f.CVSSScore = *v.SCA.CVSSScore
		}
	}
	return f
}

// NewScanExport builds the export row of a finished run.
func NewScanExport(record *ScanRecord, results *Results) *ScanExport {
	export := &ScanExport{
		JobID:      record.JobID,
		ScanID:     record.ScanID,
		ProjectID:  record.ProjectID,
		Branch:     record.Branch,
		Repository: record.Repository,
		State:      record.State,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Findings:   make([]FindingExport, 0, results.Total()),
	}
	for _, list := range [][]Vulnerability{results.SAST, results.IaC, results.SCA} {
		for i := range list {
			export.Findings = append(export.Findings, NewFindingExport(&list[i]))
		}
	}
	return export
}

func (x *ScanExport) Raw() *ScanExportRawRecord {
	return &ScanExportRawRecord{
		ScanExport: *x,
		StartedAt:  x.StartedAt.UnixMicro(),
		FinishedAt: x.FinishedAt.UnixMicro(),
	}
}
