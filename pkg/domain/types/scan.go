package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type ScanState string

const (
	ScanStateQueued            ScanState = "QUEUED"
	ScanStateRunning           ScanState = "RUNNING"
	ScanStateCompleted         ScanState = "COMPLETED"
	ScanStateCompletedDegraded ScanState = "COMPLETED_DEGRADED"
	ScanStateFailed            ScanState = "FAILED"

	// ScanStateCancelled is only recorded locally for runs stopped by the user.
	ScanStateCancelled ScanState = "CANCELLED"

	// ScanStateUnknown is shown before any scan has been published.
	ScanStateUnknown ScanState = "N/A"
)

func NormalizeScanState(raw string) ScanState {
	return ScanState(strings.ToUpper(strings.TrimSpace(raw)))
}

func (x ScanState) String() string { return string(x) }

func (x ScanState) IsTerminal() bool {
	switch x {
	case ScanStateCompleted, ScanStateCompletedDegraded, ScanStateFailed:
		return true
	}
	return false
}

func (x ScanState) IsSuccess() bool {
	return x == ScanStateCompleted || x == ScanStateCompletedDegraded
}

type VulnType string

const (
	VulnTypeSAST VulnType = "sast"
	VulnTypeIaC  VulnType = "iac"
	VulnTypeSCA  VulnType = "sca"
)

func (x VulnType) String() string { return string(x) }

var VulnTypes = []VulnType{VulnTypeSAST, VulnTypeIaC, VulnTypeSCA}

// ParseVulnType accepts "sast", "iac" or "sca" in any case.
func ParseVulnType(s string) (VulnType, error) {
	t := VulnType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range VulnTypes {
		if t == known {
			return t, nil
		}
	}
	return "", goerr.Wrap(ErrInvalidOption, "unknown vulnerability type", goerr.V("type", s))
}
