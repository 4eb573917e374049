package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cybedefend/cdscan/pkg/cli/config"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/cybedefend/cdscan/pkg/infra"
	"github.com/cybedefend/cdscan/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func statusCommand(w io.Writer) *cli.Command {
	var (
		cybeDefend config.CybeDefend
		scanID     string
	)

	return &cli.Command{
		Name:  "status",
		Usage: "Show the state of a remote scan",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "scan-id",
				Usage:       "Scan ID returned when the scan was started",
				Required:    true,
				Destination: &scanID,
			},
		}, cybeDefend.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireProjectID(cybeDefend.ProjectID()); err != nil {
				return err
			}

			client, err := cybeDefend.NewClient()
			if err != nil {
				return err
			}
			uc := usecase.New(infra.New(infra.WithCybeDefend(client)))

			status, err := uc.GetRemoteScanStatus(ctx, cybeDefend.ProjectID(), types.ScanID(scanID))
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Scan:     %s\n", status.ID)
			fmt.Fprintf(w, "State:    %s\n", types.NormalizeScanState(status.State))
			fmt.Fprintf(w, "Progress: %d%%\n", status.Progress)
			if status.Step != "" {
				fmt.Fprintf(w, "Step:     %s\n", status.Step)
			}
			if status.VulnerabilityDetected != nil {
				fmt.Fprintf(w, "Findings: %d\n", *status.VulnerabilityDetected)
			}
			return nil
		},
	}
}
