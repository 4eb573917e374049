package model

import (
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type StartScanResponse struct {
	URL    string       `json:"url"`
	ScanID types.ScanID `json:"scanId"`
}

type ScanStatusResponse struct {
	ID                    types.ScanID `json:"id"`
	Name                  string       `json:"name"`
	State                 string       `json:"state"`
	ProjectID             string       `json:"projectId"`
	ScanType              *string      `json:"scanType,omitempty"`
	StartTime             *string      `json:"startTime,omitempty"`
	EndTime               *string      `json:"endTime,omitempty"`
	Progress              int          `json:"progress"`
	Step                  string       `json:"step"`
	VulnerabilityDetected *int         `json:"vulnerabilityDetected,omitempty"`
}

type ScanProjectInfo struct {
	ScanID   string  `json:"scanId"`
	State    string  `json:"state"`
	CreateAt string  `json:"createAt"`
	ScanType *string `json:"scanType,omitempty"`
}

type HistoryItems struct {
	Items []HistoryItem `json:"items"`
}

// VulnerabilityBase is the shape shared by every result item.
type VulnerabilityBase struct {
	ID                    string                 `json:"id"`
	ProjectID             string                 `json:"projectId"`
	CreatedAt             string                 `json:"createdAt"`
	UpdateAt              string                 `json:"updateAt"`
	TimeToFix             *string                `json:"timeToFix,omitempty"`
	CurrentState          string                 `json:"currentState"`
	CurrentSeverity       string                 `json:"currentSeverity"`
	CurrentPriority       string                 `json:"currentPriority"`
	ContextualExplanation *string                `json:"contextualExplanation,omitempty"`
	Language              string                 `json:"language"`
	Path                  string                 `json:"path"`
	VulnerableStartLine   int                    `json:"vulnerableStartLine"`
	VulnerableEndLine     int                    `json:"vulnerableEndLine"`
	Vulnerability         *VulnerabilityMetadata `json:"vulnerability,omitempty"`
	HistoryItems          *HistoryItems          `json:"historyItems,omitempty"`
	CodeSnippets          []CodeSnippet          `json:"codeSnippets,omitempty"`
	VulnerabilityType     string                 `json:"vulnerabilityType"`
}

type SASTItem struct {
	Base          *VulnerabilityBase `json:"base"`
	DataFlowItems []DataFlowItem     `json:"dataFlowItems"`
}

type IaCItem struct {
	Base *VulnerabilityBase `json:"base"`
}

type SCAItem struct {
	Base      *VulnerabilityBase `json:"base"`
	Library   *ScaLibrary        `json:"library,omitempty"`
	CVSSScore *float64           `json:"cvssScore,omitempty"`
	Metadata  *ScaMetadata       `json:"metadata,omitempty"`
}

// ResultPage is one page of a results endpoint.
type ResultPage[T any] struct {
	Vulnerabilities []T              `json:"vulnerabilities"`
	Total           int              `json:"total"`
	ScanProjectInfo *ScanProjectInfo `json:"scanProjectInfo,omitempty"`
}

type (
	SASTPage = ResultPage[SASTItem]
	IaCPage  = ResultPage[IaCItem]
	SCAPage  = ResultPage[SCAItem]
)

// VulnerabilityDetails is the response of a single vulnerability lookup.
// Only the field matching the requested type is set.
type VulnerabilityDetails struct {
	ProjectID       string    `json:"projectId"`
	VulnerabilityID string    `json:"vulnerabilityId"`
	SAST            *SASTItem `json:"sast,omitempty"`
	IaC             *IaCItem  `json:"iac,omitempty"`
	SCA             *SCAItem  `json:"sca,omitempty"`
}

// ToUnified converts whichever item the response carries.
func (x *VulnerabilityDetails) ToUnified() (*Vulnerability, error) {
	var (
		v   *Vulnerability
		err error
	)
	switch {
	case x.SAST != nil:
		v, err = x.SAST.ToUnified()
	case x.IaC != nil:
		v, err = x.IaC.ToUnified()
	case x.SCA != nil:
		v, err = x.SCA.ToUnified()
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "vulnerability details are empty",
			goerr.V("vulnerability_id", x.VulnerabilityID))
	}
	return v, nil
}

// ResultsQuery selects one page of results.
type ResultsQuery struct {
	ProjectID  types.ProjectID
	Branch     types.BranchName
	PageNumber int
	PageSize   int
	Severities []string
}

const scaHowToPrevent = "Update the dependency."

func (x *VulnerabilityBase) toUnified(vulnType types.VulnType) Vulnerability {
	v := Vulnerability{
		ID:           x.ID,
		ProjectID:    x.ProjectID,
		Type:         vulnType,
		Path:         x.Path,
		Language:     x.Language,
		Severity:     x.CurrentSeverity,
		Priority:     x.CurrentPriority,
		State:        x.CurrentState,
		StartLine:    x.VulnerableStartLine,
		EndLine:      x.VulnerableEndLine,
		CreatedAt:    x.CreatedAt,
		UpdatedAt:    x.UpdateAt,
		CodeSnippets: x.CodeSnippets,
	}
	if x.TimeToFix != nil {
		v.TimeToFix = *x.TimeToFix
	}
	if x.ContextualExplanation != nil {
		v.ContextualExplanation = *x.ContextualExplanation
	}
	if x.HistoryItems != nil {
		v.History = x.HistoryItems.Items
	}
	if x.Vulnerability != nil {
		v.Metadata = *x.Vulnerability
	}
	return v
}

// ToUnified converts a SAST item. It returns nil without error when the item
// has no base record.
func (x *SASTItem) ToUnified() (*Vulnerability, error) {
	if x.Base == nil {
		return nil, nil
	}
	if x.Base.Vulnerability == nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "SAST vulnerability has no metadata", goerr.V("id", x.Base.ID))
	}

	v := x.Base.toUnified(types.VulnTypeSAST)
	v.SAST = &SASTDetail{DataFlow: x.DataFlowItems}
	return &v, nil
}

func (x *IaCItem) ToUnified() (*Vulnerability, error) {
	if x.Base == nil {
		return nil, nil
	}
	if x.Base.Vulnerability == nil {
		return nil, goerr.Wrap(types.ErrInvalidResponse, "IaC vulnerability has no metadata", goerr.V("id", x.Base.ID))
	}

	v := x.Base.toUnified(types.VulnTypeIaC)
	return &v, nil
}

// ToUnified converts an SCA item. Missing vulnerability metadata is rebuilt
// from the CVE metadata and the detected library.
func (x *SCAItem) ToUnified() (*Vulnerability, error) {
	if x.Base == nil {
		return nil, nil
	}

	v := x.Base.toUnified(types.VulnTypeSCA)
	if x.Base.Vulnerability == nil {
		v.Metadata = x.synthesizeMetadata()
	}
	if x.Library != nil {
		if x.Library.Ecosystem != "" {
			v.Language = x.Library.Ecosystem
		}
		if x.Library.FileName != "" {
			v.Path = x.Library.FileName
		}
	}
	v.SCA = &SCADetail{
		Library:   x.Library,
		CVSSScore: x.CVSSScore,
		CVE:       x.Metadata,
	}
	return &v, nil
}

func (x *SCAItem) synthesizeMetadata() VulnerabilityMetadata {
	md := VulnerabilityMetadata{
		ID:                x.Base.ID,
		Name:              "N/A",
		CWE:               []string{},
		HowToPrevent:      scaHowToPrevent,
		Severity:          x.Base.CurrentSeverity,
		Language:          "N/A",
		VulnerabilityType: string(types.VulnTypeSCA),
	}

	if x.Metadata != nil {
		if x.Metadata.InternalID != "" {
			md.ID = x.Metadata.InternalID
		}
		if x.Metadata.Summary != "" {
			md.Name = x.Metadata.Summary
			md.ShortDescription = x.Metadata.Summary
		}
		md.Description = x.Metadata.Details
		for _, cwe := range x.Metadata.CWEs {
			md.CWE = append(md.CWE, cwe.CWEID)
		}
	}
	if x.Library != nil && x.Library.Ecosystem != "" {
		md.Language = x.Library.Ecosystem
	}

	return md
}

type unifiable interface {
	ToUnified() (*Vulnerability, error)
}

// Unify converts every item of a page, skipping items without a base record.
func Unify[T any, P interface {
	*T
	unifiable
}](items []T) ([]Vulnerability, error) {
	out := make([]Vulnerability, 0, len(items))
	for i := range items {
		v, err := P(&items[i]).ToUnified()
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}
