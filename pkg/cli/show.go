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

func showCommand(w io.Writer) *cli.Command {
	var (
		cybeDefend config.CybeDefend
		vulnType   string
		vulnID     string
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Show one vulnerability of the project",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Usage:       "Vulnerability type (sast, iac, sca)",
				Required:    true,
				Destination: &vulnType,
			},
			&cli.StringFlag{
				Name:        "id",
				Usage:       "Vulnerability ID",
				Required:    true,
				Destination: &vulnID,
			},
		}, cybeDefend.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			vt, err := types.ParseVulnType(vulnType)
			if err != nil {
				return err
			}
			if err := requireProjectID(cybeDefend.ProjectID()); err != nil {
				return err
			}

			client, err := cybeDefend.NewClient()
			if err != nil {
				return err
			}
			uc := usecase.New(infra.New(infra.WithCybeDefend(client)))

			v, err := uc.GetVulnerability(ctx, cybeDefend.ProjectID(), vt, vulnID)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "ID:       %s\n", v.ID)
			fmt.Fprintf(w, "Type:     %s\n", v.Type)
			if v.Metadata.Name != "" {
				fmt.Fprintf(w, "Name:     %s\n", v.Metadata.Name)
			}
			fmt.Fprintf(w, "Severity: %s\n", v.Severity)
			if v.State != "" {
				fmt.Fprintf(w, "State:    %s\n", v.State)
			}
			if v.Path != "" {
				fmt.Fprintf(w, "Location: %s:%d\n", v.Path, v.StartLine)
			}
			if v.SCA != nil && v.SCA.Library != nil {
				fmt.Fprintf(w, "Package:  %s@%s\n", v.SCA.Library.PackageName, v.SCA.Library.PackageVersion)
			}
			return nil
		},
	}
}
