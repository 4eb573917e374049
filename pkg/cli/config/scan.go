package config

import (
	"log/slog"
	"time"

	"github.com/cybedefend/cdscan/pkg/infra/git"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Scan struct {
	pollInterval time.Duration
	maxAttempts  int64
	excludes     []string
	gitignore    bool
	gitPath      string
}

func (x *Scan) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Wait between scan status checks",
			Category:    "Scan",
			Value:       usecase.DefaultPollInterval,
			Destination: &x.pollInterval,
			Sources:     cli.EnvVars("CDSCAN_POLL_INTERVAL"),
		},
		&cli.Int64Flag{
			Name:        "max-attempts",
			Usage:       "Number of status checks before giving up",
			Category:    "Scan",
			Value:       usecase.DefaultMaxAttempts,
			Destination: &x.maxAttempts,
			Sources:     cli.EnvVars("CDSCAN_MAX_ATTEMPTS"),
		},
		&cli.StringSliceFlag{
			Name:        "exclude",
			Aliases:     []string{"x"},
			Usage:       "Additional directory name, or root-relative path, left out of the archive (repeatable)",
			Category:    "Scan",
			Destination: &x.excludes,
			Sources:     cli.EnvVars("CDSCAN_EXCLUDE"),
		},
		&cli.BoolFlag{
			Name:        "gitignore",
			Usage:       "Leave files matched by .gitignore out of the archive",
			Category:    "Scan",
			Destination: &x.gitignore,
			Sources:     cli.EnvVars("CDSCAN_GITIGNORE"),
		},
		&cli.StringFlag{
			Name:        "git-path",
			Usage:       "Path to git binary",
			Category:    "Scan",
			Value:       "git",
			Destination: &x.gitPath,
			Sources:     cli.EnvVars("CDSCAN_GIT_PATH"),
		},
	}
}

func (x *Scan) BranchDetector() *git.Detector {
	return git.New(git.WithGitPath(x.gitPath))
}

func (x *Scan) Options() []usecase.Option {
	options := []usecase.Option{
		usecase.WithExcludes(x.excludes),
		usecase.WithGitignore(x.gitignore),
	}
	if x.pollInterval > 0 {
		options = append(options, usecase.WithPollInterval(x.pollInterval))
	}
	if x.maxAttempts > 0 {
		options = append(options, usecase.WithMaxAttempts(int(x.maxAttempts)))
	}
	return options
}

func (x *Scan) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("PollInterval", x.pollInterval),
		slog.Int64("MaxAttempts", x.maxAttempts),
		slog.Any("Excludes", x.excludes),
		slog.Bool("Gitignore", x.gitignore),
		slog.String("GitPath", x.gitPath),
	)
}
