package types_test

import (
	"errors"
	"testing"

	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestBranchName(t *testing.T) {
	t.Run("detached label", func(t *testing.T) {
		b := types.DetachedBranch("a1b2c3d4")
		gt.V(t, b).Equal(types.BranchName("HEAD (a1b2c3d4)"))
		gt.True(t, b.IsDetached())
		gt.V(t, b.ForRequest()).Equal(types.BranchName(""))
	})

	t.Run("named branch is sent as is", func(t *testing.T) {
		b := types.BranchName("feature/login")
		gt.False(t, b.IsDetached())
		gt.V(t, b.ForRequest()).Equal(b)
	})
}

func TestParseRegion(t *testing.T) {
	gt.V(t, types.ParseRegion("EU")).Equal(types.RegionEU)
	gt.V(t, types.ParseRegion(" us ")).Equal(types.RegionUS)
	gt.V(t, types.ParseRegion("apac")).Equal(types.RegionUS)
	gt.V(t, types.RegionEU.BaseURL()).Equal("https://api-eu.cybedefend.com")
	gt.V(t, types.RegionUS.BaseURL()).Equal("https://api-us.cybedefend.com")
}

func TestScanState(t *testing.T) {
	testCases := []struct {
		raw      string
		state    types.ScanState
		terminal bool
		success  bool
	}{
		{"queued", types.ScanStateQueued, false, false},
		{"Running", types.ScanStateRunning, false, false},
		{" completed ", types.ScanStateCompleted, true, true},
		{"completed_degraded", types.ScanStateCompletedDegraded, true, true},
		{"FAILED", types.ScanStateFailed, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			s := types.NormalizeScanState(tc.raw)
			gt.V(t, s).Equal(tc.state)
			gt.V(t, s.IsTerminal()).Equal(tc.terminal)
			gt.V(t, s.IsSuccess()).Equal(tc.success)
		})
	}
}

func TestParseVulnType(t *testing.T) {
	gt.V(t, gt.R1(types.ParseVulnType("sast")).NoError(t)).Equal(types.VulnTypeSAST)
	gt.V(t, gt.R1(types.ParseVulnType(" IaC ")).NoError(t)).Equal(types.VulnTypeIaC)
	gt.V(t, gt.R1(types.ParseVulnType("SCA")).NoError(t)).Equal(types.VulnTypeSCA)

	for _, s := range []string{"", "dast", "sast/1"} {
		_, err := types.ParseVulnType(s)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	}
}

func TestAPIKeyIsMasked(t *testing.T) {
	key := types.APIKey("secret-key")
	gt.V(t, key.String()).NotEqual("secret-key")
	gt.V(t, key.LogValue().String()).NotEqual("secret-key")
}

func TestNewJobID(t *testing.T) {
	a := types.NewJobID()
	b := types.NewJobID()
	gt.V(t, a).NotEqual(b)
	gt.N(t, len(a)).Equal(36)
}
