package safe

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cybedefend/cdscan/pkg/utils/logging"
)

// Close closes the resource and logs the error if any.
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed) {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// Remove deletes the file. A file that is already gone is not an error.
func Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Default().Warn("Fail to remove file", slog.String("path", path), slog.Any("error", err))
	}
}
