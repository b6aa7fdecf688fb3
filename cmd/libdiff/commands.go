package main

import (
	"github.com/spf13/cobra"

	"github.com/zero-day-ai/libdiff"
)

func (a *app) librariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libraries <first-version> <first-library> <second-version> <second-library>",
		Short: "Compare two libraries, possibly of different versions",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.svc.CompareLibraries(cmd.Context(), libdiff.Request{
				FirstVersion:  args[0],
				FirstLibrary:  args[1],
				SecondVersion: args[2],
				SecondLibrary: args[3],
			})
			if err != nil {
				return err
			}
			return a.print(cmd, g)
		},
	}
}

func (a *app) libraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library <first-version> <second-version> <library-ref>",
		Short: "Compare one library across two versions",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.svc.CompareLibrarySpecific(cmd.Context(), libdiff.Request{
				FirstVersion:  args[0],
				SecondVersion: args[1],
				LibraryRef:    args[2],
			})
			if err != nil {
				return err
			}
			return a.print(cmd, g)
		},
	}
}

func (a *app) versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <first-version> <second-version>",
		Short: "Compare every library of two versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gl, err := a.svc.CompareVersions(cmd.Context(), versionsRequest(args))
			if err != nil {
				return err
			}
			return a.print(cmd, gl)
		},
	}
}

func (a *app) compactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact <first-version> <second-version> [library-ref]",
		Short: "Print the compact changelog of two versions or of one library",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := versionsRequest(args)
			if len(args) == 3 {
				req.LibraryRef = args[2]
			}
			r, err := a.svc.CompactChangelog(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, r)
		},
	}
	cmd.Flags().StringVar(&a.filter, "filter", "", `CEL expression over category, ref, action and changes (e.g. 'action == "D"')`)
	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <first-version> <second-version>",
		Short: "List added, deleted and modified libraries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc.SummarizeLibraries(cmd.Context(), versionsRequest(args))
			if err != nil {
				return err
			}
			return a.print(cmd, s)
		},
	}
}

func (a *app) relationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relations <first-version> <second-version>",
		Short: "List added and deleted relations and new countermeasures",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.svc.RelationsChangelog(cmd.Context(), versionsRequest(args))
			if err != nil {
				return err
			}
			return a.print(cmd, r)
		},
	}
}

func versionsRequest(args []string) libdiff.Request {
	return libdiff.Request{FirstVersion: args[0], SecondVersion: args[1]}
}
