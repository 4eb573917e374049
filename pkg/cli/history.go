package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cybedefend/cdscan/pkg/cli/config"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func historyCommand(w io.Writer) *cli.Command {
	var (
		firestore config.Firestore
		projectID string
		limit     int64
	)

	return &cli.Command{
		Name:  "history",
		Usage: "List recorded scans from Firestore",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "project-id",
				Aliases:     []string{"p"},
				Usage:       "Only list scans of this project",
				Sources:     cli.EnvVars("CDSCAN_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "Maximum number of scans",
				Value:       usecase.DefaultHistoryLimit,
				Destination: &limit,
			},
		}, firestore.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !firestore.Enabled() {
				return goerr.Wrap(types.ErrInvalidOption, "scan history needs --firestore-project-id")
			}
			repo, err := firestore.NewRepository(ctx)
			if err != nil {
				return err
			}
			uc := usecase.New(infra.New(infra.WithScanRepository(repo)))

			records, err := uc.ListScans(ctx, types.ProjectID(projectID), int(limit))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tPROJECT\tBRANCH\tSTATE\tFINDINGS\tJOB")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.StartedAt.Local().Format(time.DateTime),
					r.ProjectID,
					r.Branch,
					r.State,
					r.Total(),
					r.JobID,
				)
			}
			safeFlush(tw)
			return nil
		},
	}
}
