package usecase

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/cybedefend/cdscan/pkg/utils/safe"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultExcludes are directory names never sent to the scanner.
var DefaultExcludes = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"out",
	"target",
	".gradle",
}

type archiveOptions struct {
	excludes     []string
	useGitignore bool
}

// createWorkspaceArchive writes root into a temporary zip file and returns its
// path. The caller owns the file.
func createWorkspaceArchive(ctx context.Context, root string, opts archiveOptions) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", goerr.Wrap(err, "failed to stat workspace root", goerr.V("root", root))
	}
	if !info.IsDir() {
		return "", goerr.Wrap(types.ErrInvalidOption, "workspace root is not a directory", goerr.V("root", root))
	}

	excluded := newExcludeSet(append(append([]string{}, DefaultExcludes...), opts.excludes...))

	var matcher gitignore.Matcher
	if opts.useGitignore {
		patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read .gitignore", goerr.V("root", root))
		}
		matcher = gitignore.NewMatcher(patterns)
	}

	tmp, err := os.CreateTemp("", "cdscan_workspace.*.zip")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temp file for archive")
	}
	archivePath := tmp.Name()

	if err := writeArchive(ctx, tmp, root, excluded, matcher); err != nil {
		safe.Close(tmp)
		safe.Remove(archivePath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(archivePath)
		return "", goerr.Wrap(err, "failed to close archive", goerr.V("path", archivePath))
	}

	logging.From(ctx).Debug("workspace archived", "root", root, "archive", archivePath)
	return archivePath, nil
}

// excludeSet holds exclude entries. A bare name matches a directory of that
// name at any depth. An entry containing a slash matches the directory or file
// at that path relative to the workspace root.
type excludeSet struct {
	names map[string]struct{}
	paths map[string]struct{}
}

func newExcludeSet(entries []string) excludeSet {
	set := excludeSet{
		names: make(map[string]struct{}),
		paths: make(map[string]struct{}),
	}
	for _, entry := range entries {
		entry = strings.Trim(path.Clean("/"+filepath.ToSlash(entry)), "/")
		switch {
		case entry == "":
		case strings.Contains(entry, "/"):
			set.paths[entry] = struct{}{}
		default:
			set.names[entry] = struct{}{}
		}
	}
	return set
}

func (x excludeSet) skipDir(name, rel string) bool {
	if _, ok := x.names[name]; ok {
		return true
	}
	_, ok := x.paths[rel]
	return ok
}

func (x excludeSet) skipFile(rel string) bool {
	_, ok := x.paths[rel]
	return ok
}

func writeArchive(ctx context.Context, w io.Writer, root string, excluded excludeSet, matcher gitignore.Matcher) error {
	zw := zip.NewWriter(w)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return goerr.Wrap(err, "failed to walk workspace", goerr.V("path", path))
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve relative path", goerr.V("path", path))
		}
		name := filepath.ToSlash(rel)
		segments := strings.Split(name, "/")

		if d.IsDir() {
			if excluded.skipDir(d.Name(), name) {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.Match(segments, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if ctx.Err() != nil {
			return goerr.Wrap(types.ErrScanCancelled, "archiving interrupted", goerr.V("path", name))
		}

		// symlinks and special files are left out
		if !d.Type().IsRegular() {
			return nil
		}
		if excluded.skipFile(name) {
			return nil
		}
		if matcher != nil && matcher.Match(segments, false) {
			return nil
		}

		return addFile(zw, path, name)
	})
	if walkErr != nil {
		safe.Close(zw)
		return walkErr
	}

	if err := zw.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize archive")
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	defer safe.Close(fd)

	info, err := fd.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat file", goerr.V("path", path))
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return goerr.Wrap(err, "failed to build zip header", goerr.V("path", path))
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return goerr.Wrap(err, "failed to add zip entry", goerr.V("name", name))
	}
	if _, err := io.Copy(dst, fd); err != nil {
		return goerr.Wrap(err, "failed to write zip entry", goerr.V("name", name))
	}
	return nil
}
