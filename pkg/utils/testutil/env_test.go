package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cybedefend/cdscan/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func TestGetEnvOrSkip(t *testing.T) {
	key := "CDSCAN_TEST_ENV_VAR_SET"
	t.Setenv(key, "test_value")

	value := testutil.GetEnvOrSkip(t, key)
	gt.V(t, value).Equal("test_value")
}

func TestWriteTree(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"main.go":          "package main",
		"src/app/index.ts": "export {}",
	})

	body := gt.R1(os.ReadFile(filepath.Join(root, "src", "app", "index.ts"))).NoError(t)
	gt.V(t, string(body)).Equal("export {}")
}
