package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// Runner executes a command in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, goerr.Wrap(err, "git command failed",
			goerr.V("args", args),
			goerr.V("stderr", strings.TrimSpace(stderr.String())),
		)
	}
	return stdout.Bytes(), nil
}

type Detector struct {
	gitPath string
	runner  Runner
}

var _ interfaces.BranchDetector = (*Detector)(nil)

type Option func(*Detector)

// WithGitPath sets the git binary used by the command fallback.
func WithGitPath(p string) Option {
	return func(x *Detector) {
		x.gitPath = p
	}
}

func WithRunner(r Runner) Option {
	return func(x *Detector) {
		x.runner = r
	}
}

func New(options ...Option) *Detector {
	d := &Detector{
		gitPath: "git",
		runner:  execRunner{},
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

var fullSHA = regexp.MustCompile(`^[0-9a-f]{40}$`)

// CurrentBranch reports the checked-out branch of root. A detached HEAD is
// reported as a "HEAD (<sha>)" label. It never fails; false means the branch
// could not be determined.
func (x *Detector) CurrentBranch(ctx context.Context, root string) (types.BranchName, bool) {
	logger := logging.From(ctx).With(slog.String("root", root))

	branch, err := readHeadFile(root)
	if err == nil {
		logger.Debug("Git branch detected from HEAD file", slog.Any("branch", branch))
		return branch, true
	}
	logger.Debug("Cannot read branch from HEAD file", slog.Any("error", err))

	branch, err = x.readFromCommand(ctx, root)
	if err == nil {
		logger.Debug("Git branch detected from git command", slog.Any("branch", branch))
		return branch, true
	}
	logger.Debug("Cannot read branch from git command", slog.Any("error", err))

	logger.Warn("Could not detect Git branch")
	return "", false
}

func gitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	stat, err := os.Stat(dotGit)
	if err != nil {
		return "", goerr.Wrap(types.ErrNotGitRepository, "no .git entry", goerr.V("path", dotGit))
	}
	if stat.IsDir() {
		return dotGit, nil
	}

	// worktree or submodule: .git is a file pointing to the real directory
	raw, err := os.ReadFile(dotGit)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read .git file", goerr.V("path", dotGit))
	}
	content := strings.TrimSpace(string(raw))
	dir, ok := strings.CutPrefix(content, "gitdir:")
	if !ok {
		return "", goerr.New("unexpected .git file format", goerr.V("path", dotGit))
	}
	dir = strings.TrimSpace(dir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

func readHeadFile(root string) (types.BranchName, error) {
	dir, err := gitDir(root)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(filepath.Join(dir, "HEAD"))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read HEAD", goerr.V("git_dir", dir))
	}
	return parseHead(strings.TrimSpace(string(raw)))
}

func parseHead(head string) (types.BranchName, error) {
	switch {
	case strings.HasPrefix(head, "ref: refs/heads/"):
		return types.BranchName(strings.TrimPrefix(head, "ref: refs/heads/")), nil

	case strings.HasPrefix(head, "ref:"):
		ref := strings.TrimSpace(strings.TrimPrefix(head, "ref:"))
		return types.BranchName(path.Base(ref)), nil

	case fullSHA.MatchString(head):
		return types.DetachedBranch(head[:8]), nil

	default:
		return "", goerr.New("unexpected HEAD content", goerr.V("head", head))
	}
}

func (x *Detector) readFromCommand(ctx context.Context, root string) (types.BranchName, error) {
	out, err := x.runner.Run(ctx, root, x.gitPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := firstLine(out)
	if branch == "" {
		return "", goerr.New("git returned empty branch")
	}
	if branch != "HEAD" {
		return types.BranchName(branch), nil
	}

	out, err = x.runner.Run(ctx, root, x.gitPath, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	sha := firstLine(out)
	if sha == "" {
		return "", goerr.New("git returned empty commit for detached HEAD")
	}
	return types.DetachedBranch(sha), nil
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// RepositoryName names the repository at root after its origin remote, or
// after the directory when there is no origin. It returns "" when root is not
// a git repository.
func (x *Detector) RepositoryName(root string) string {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			logging.Default().Debug("Failed to open git repository", slog.String("root", root), slog.Any("error", err))
		}
		return ""
	}

	if remote, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			if name := nameFromURL(urls[0]); name != "" {
				return name
			}
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}

func nameFromURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	u = strings.TrimSuffix(u, ".git")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		u = u[i+1:]
	}
	return u
}
