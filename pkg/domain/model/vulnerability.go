package model

import "github.com/cybedefend/cdscan/pkg/domain/types"

// Vulnerability is the unified finding record. Type selects which variant
// payload is set: SAST for sast, SCA for sca, none for iac.
type Vulnerability struct {
	ID                    string                `json:"id"`
	ProjectID             string                `json:"project_id"`
	Type                  types.VulnType        `json:"type"`
	Path                  string                `json:"path"`
	Language              string                `json:"language"`
	Severity              string                `json:"severity"`
	Priority              string                `json:"priority"`
	State                 string                `json:"state"`
	StartLine             int                   `json:"start_line"`
	EndLine               int                   `json:"end_line"`
	CreatedAt             string                `json:"created_at,omitempty"`
	UpdatedAt             string                `json:"updated_at,omitempty"`
	TimeToFix             string                `json:"time_to_fix,omitempty"`
	ContextualExplanation string                `json:"contextual_explanation,omitempty"`
	Metadata              VulnerabilityMetadata `json:"metadata"`
	History               []HistoryItem         `json:"history,omitempty"`
	CodeSnippets          []CodeSnippet         `json:"code_snippets,omitempty"`

	SAST *SASTDetail `json:"sast,omitempty"`
	SCA  *SCADetail  `json:"sca,omitempty"`
}

type SASTDetail struct {
	DataFlow []DataFlowItem `json:"data_flow"`
}

type SCADetail struct {
	Library   *ScaLibrary  `json:"library,omitempty"`
	CVSSScore *float64     `json:"cvss_score,omitempty"`
	CVE       *ScaMetadata `json:"cve,omitempty"`
}

type VulnerabilityMetadata struct {
	ID                string   `json:"id"`
	CWE               []string `json:"cwe"`
	Name              string   `json:"name"`
	ShortDescription  string   `json:"shortDescription"`
	Description       string   `json:"description"`
	HowToPrevent      string   `json:"howToPrevent"`
	OWASPTop10        []string `json:"owaspTop10,omitempty"`
	Severity          string   `json:"severity"`
	Language          string   `json:"language"`
	VulnerabilityType string   `json:"vulnerabilityType"`
}

type UserInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type HistoryItem struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	Value  string    `json:"value"`
	Date   string    `json:"date"`
	UserID *string   `json:"userId,omitempty"`
	User   *UserInfo `json:"user,omitempty"`
}

type CodeLine struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

type CodeSnippet struct {
	ID                     string     `json:"id"`
	VulnerableStartLine    int        `json:"vulnerableStartLine"`
	VulnerableEndLine      int        `json:"vulnerableEndLine"`
	StartLine              int        `json:"startLine"`
	EndLine                int        `json:"endLine"`
	Code                   []CodeLine `json:"code"`
	Language               string     `json:"language"`
	FixAnalysis            string     `json:"fixAnalysis,omitempty"`
	FixAnalysisDescription string     `json:"fixAnalysisDescription,omitempty"`
}

type DataFlowItem struct {
	ID            string     `json:"id"`
	NameHighlight string     `json:"nameHighlight"`
	Line          int        `json:"line"`
	Language      string     `json:"language"`
	Code          []CodeLine `json:"code"`
	Type          string     `json:"type"`
	Order         int        `json:"order"`
}

type ScaLibrary struct {
	ID             string `json:"id"`
	ProjectID      string `json:"projectId"`
	PackageName    string `json:"packageName"`
	PackageVersion string `json:"packageVersion"`
	FileName       string `json:"fileName"`
	Ecosystem      string `json:"ecosystem"`
}

type ScaCWE struct {
	ID    string `json:"id"`
	CWEID string `json:"cweId"`
}

type ScaAlias struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
}

type ScaReference struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type ScaSeverity struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Score string `json:"score"`
}

type ScaPackage struct {
	ID           string `json:"id"`
	Ecosystem    string `json:"ecosystem"`
	PackageName  string `json:"packageName"`
	Introduced   string `json:"introduced"`
	Fixed        string `json:"fixed"`
	FixAvailable bool   `json:"fixAvailable"`
}

type ScaMetadata struct {
	CVE              string         `json:"cve"`
	InternalID       string         `json:"internalId"`
	Summary          string         `json:"summary"`
	SeverityGH       string         `json:"severityGh"`
	SchemaVersion    string         `json:"schemaVersion"`
	ModifiedAt       string         `json:"modifiedAt,omitempty"`
	PublishedAt      string         `json:"publishedAt,omitempty"`
	GithubReviewedAt string         `json:"githubReviewedAt,omitempty"`
	NVDPublishedAt   string         `json:"nvdPublishedAt,omitempty"`
	Aliases          []ScaAlias     `json:"aliases,omitempty"`
	Details          string         `json:"details,omitempty"`
	CWEs             []ScaCWE       `json:"cwes,omitempty"`
	References       []ScaReference `json:"references,omitempty"`
	Severities       []ScaSeverity  `json:"severities,omitempty"`
	Packages         []ScaPackage   `json:"packages,omitempty"`
}
