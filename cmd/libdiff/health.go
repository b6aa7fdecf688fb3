package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/libdiff/health"
)

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health [version...]",
		Short: "Check the snapshot store, property source and optional versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var checks []health.Status
			if a.cfg.Store.Kind == "file" {
				checks = append(checks, health.DirCheck(a.cfg.Store.Dir))
			}
			if p, ok := a.src.(health.Pinger); ok {
				checks = append(checks, health.PingCheck(ctx, a.cfg.Store.Kind, p))
			}
			if a.props != nil {
				checks = append(checks, health.PropertyCheck(ctx, a.props))
			}
			checks = append(checks, health.VersionCheck(ctx, a.src, args...))

			status := health.Combine(checks...)
			if err := a.print(cmd, status); err != nil {
				return err
			}
			if status.IsUnhealthy() {
				return errors.New(status.Message)
			}
			return nil
		},
	}
}
