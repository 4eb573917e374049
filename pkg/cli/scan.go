package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/cybedefend/cdscan/pkg/utils/logging"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ErrFindingsDetected is returned by the scan command with --fail-on-findings.
var ErrFindingsDetected = goerr.New("vulnerabilities detected")

var severityOrder = []string{"CRITICAL", "HIGH", "MEDIUM", "LOW", "INFO"}

func scanCommand(w io.Writer) *cli.Command {
	var (
		cfg            scanConfig
		dir            string
		failOnFindings bool
	)

	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"sc"},
		Usage:   "Scan a local directory with CybeDefend and print the findings",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Path to directory to scan",
				Value:       ".",
				Destination: &dir,
			},
			&cli.BoolFlag{
				Name:        "fail-on-findings",
				Usage:       "Exit with an error when any vulnerability is found",
				Sources:     cli.EnvVars("CDSCAN_FAIL_ON_FINDINGS"),
				Destination: &failOnFindings,
			},
		}, cfg.flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve directory", goerr.V("dir", dir))
			}

			logging.Default().Info("Starting scan",
				slog.String("dir", root),
				slog.Any("cybedefend", &cfg.cybeDefend),
				slog.Any("scan", &cfg.scan),
				slog.Any("bigquery", &cfg.bigQuery),
				slog.Bool("firestore_enabled", cfg.firestore.Enabled()),
				slog.Any("archive", &cfg.archive),
			)

			if err := requireProjectID(cfg.cybeDefend.ProjectID()); err != nil {
				return err
			}
			if err := cfg.sentry.Configure(ctx); err != nil {
				return err
			}
			defer cfg.sentry.Flush()

			uc, err := cfg.newUseCase(ctx,
				usecase.WithProgress(func(ctx context.Context, msg string) {
					fmt.Fprintln(w, color.CyanString("»"), msg)
				}),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := uc.RunScan(ctx, &model.ScanInput{
				ProjectID:     cfg.cybeDefend.ProjectID(),
				WorkspaceRoot: root,
			}); err != nil {
				return err
			}

			snapshot := uc.Snapshot()
			printSummary(w, &snapshot)

			if failOnFindings && snapshot.TotalVulnerabilities > 0 {
				return goerr.Wrap(ErrFindingsDetected, "scan found vulnerabilities",
					goerr.V("total", snapshot.TotalVulnerabilities),
				)
			}
			return nil
		},
	}
}

func countBySeverity(list []model.Vulnerability) map[string]int {
	counts := make(map[string]int)
	for _, v := range list {
		sev := strings.ToUpper(strings.TrimSpace(v.Severity))
		if !slices.Contains(severityOrder, sev) {
			sev = "OTHER"
		}
		counts[sev]++
	}
	return counts
}

func severityColor(sev string) *color.Color {
	switch sev {
	case "CRITICAL":
		return color.New(color.FgRed, color.Bold)
	case "HIGH":
		return color.New(color.FgRed)
	case "MEDIUM":
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}

func printSummary(w io.Writer, snapshot *model.Snapshot) {
	columns := append(append([]string{}, severityOrder...), "OTHER")
	rows := []struct {
		name string
		list []model.Vulnerability
	}{
		{"SAST", snapshot.SAST},
		{"IaC", snapshot.IaC},
		{"SCA", snapshot.SCA},
	}

	fmt.Fprintln(w)
	if snapshot.CurrentBranch != "" {
		fmt.Fprintf(w, "Branch: %s\n", snapshot.CurrentBranch)
	}
	fmt.Fprintf(w, "Scan state: %s\n\n", snapshot.LastScanState)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\t%s\tTOTAL\n", strings.Join(columns, "\t"))
	for _, row := range rows {
		counts := countBySeverity(row.list)
		cells := make([]string, 0, len(columns))
		for _, sev := range columns {
			cells = append(cells, fmt.Sprint(counts[sev]))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", row.name, strings.Join(cells, "\t"), len(row.list))
	}
	safeFlush(tw)

	total := fmt.Sprintf("\nFound %d vulnerabilities\n", snapshot.TotalVulnerabilities)
	if snapshot.TotalVulnerabilities == 0 {
		color.New(color.FgGreen).Fprint(w, total)
		return
	}
	fmt.Fprint(w, total)

	for _, list := range [][]model.Vulnerability{snapshot.SAST, snapshot.IaC, snapshot.SCA} {
		for _, v := range list {
			sev := strings.ToUpper(v.Severity)
			location := v.Path
			if v.StartLine > 0 {
				location = fmt.Sprintf("%s:%d", v.Path, v.StartLine)
			}
			fmt.Fprintf(w, "  %s [%s] %s %s\n",
				severityColor(sev).Sprintf("%-8s", sev),
				v.Type,
				v.Metadata.Name,
				location,
			)
		}
	}
}

func safeFlush(tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil {
		logging.Default().Warn("failed to flush summary", slog.Any("error", err))
	}
}
