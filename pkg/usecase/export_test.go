package usecase

import "context"

// Export unexported functions for testing
var (
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
	SleepContextForTest                = sleepContext
)

func CreateWorkspaceArchiveForTest(ctx context.Context, root string, excludes []string, useGitignore bool) (string, error) {
	return createWorkspaceArchive(ctx, root, archiveOptions{excludes: excludes, useGitignore: useGitignore})
}
