package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrInvalidResponse  = goerr.New("invalid response from API")
	ErrAPIRequest       = goerr.New("API request failed")
	ErrUploadFailed     = goerr.New("archive upload failed")
	ErrScanFailed       = goerr.New("scan failed")
	ErrScanTimeout      = goerr.New("scan polling timed out")
	ErrScanCancelled    = goerr.New("scan cancelled")
	ErrScanInProgress   = goerr.New("scan already in progress")
	ErrNotGitRepository = goerr.New("not a git repository")
)
