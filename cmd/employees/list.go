package main

import (
	"context"

	"github.com/ogurasousui/employee-registry/internal/platform/session"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the employees table without inserting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, false, func(ctx context.Context, r *session.Runner) error {
				return r.Show(ctx)
			})
		},
	}
}
