package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"staffmatch/internal/app"
	"staffmatch/internal/pipeline"
	"staffmatch/internal/repository"

	"github.com/spf13/cobra"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <project-id>",
		Short: "Run team matching for a project and wait for the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || projectID <= 0 {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := app.NewContainer(ctx, cfg, opts.log)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			p, err := c.Projects.Get(ctx, projectID)
			if err != nil {
				if errors.Is(err, repository.ErrProjectNotFound) {
					return fmt.Errorf("project %d not found", projectID)
				}
				return err
			}

			out, err := c.Matcher.Run(ctx, p.ID, p.Description)
			if err != nil {
				return fmt.Errorf("matching failed at %s: %w", pipeline.StageOf(err), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
