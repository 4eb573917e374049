package types

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type (
	ProjectID string
	ScanID    string
	JobID     string
	RequestID string
	APIKey    string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
	GCSBucket       string
)

func (x ProjectID) String() string       { return string(x) }
func (x ScanID) String() string          { return string(x) }
func (x JobID) String() string           { return string(x) }
func (x RequestID) String() string       { return string(x) }
func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }
func (x GCSBucket) String() string       { return string(x) }

func NewJobID() JobID {
	return JobID(uuid.NewString())
}

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x APIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x APIKey) String() string {
	return "***********"
}

// BranchName is a VCS branch. Empty means no branch.
type BranchName string

const detachedPrefix = "HEAD ("

func (x BranchName) String() string { return string(x) }

// DetachedBranch builds the synthetic label used for a detached HEAD.
func DetachedBranch(shortSHA string) BranchName {
	return BranchName(detachedPrefix + shortSHA + ")")
}

// IsDetached reports whether x is a synthetic detached HEAD label.
func (x BranchName) IsDetached() bool {
	return strings.HasPrefix(string(x), detachedPrefix)
}

// ForRequest returns the branch value safe to embed in API requests. Detached
// labels are dropped.
func (x BranchName) ForRequest() BranchName {
	if x.IsDetached() {
		return ""
	}
	return x
}

type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
)

// ParseRegion falls back to RegionUS for unknown values.
func ParseRegion(s string) Region {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eu":
		return RegionEU
	default:
		return RegionUS
	}
}

func (x Region) BaseURL() string {
	switch x {
	case RegionEU:
		return "https://api-eu.cybedefend.com"
	default:
		return "https://api-us.cybedefend.com"
	}
}
