package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/libdiff"
	"github.com/zero-day-ai/libdiff/changelog"
	"github.com/zero-day-ai/libdiff/config"
	"github.com/zero-day-ai/libdiff/store"
)

// app carries the state shared by subcommands for one invocation.
type app struct {
	configPath      string
	storeDir        string
	showMitigations bool
	filter          string
	pretty          bool

	cfg     *config.Config
	src     store.Source
	props   config.PropertySource
	svc     *libdiff.Service
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "libdiff",
		Short: "Compare security-content library snapshots",
		Long: `libdiff compares two snapshot versions of a security-content library
collection and prints changelog graphs, compact changelogs, library
summaries and relation reports as JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a libdiff YAML config file")
	flags.StringVar(&a.storeDir, "store-dir", "", "read snapshots from this directory")
	flags.BoolVar(&a.showMitigations, "show-mitigations", false, "render changed mitigation values")
	flags.BoolVar(&a.pretty, "pretty", false, "indent JSON output")

	root.AddCommand(
		a.librariesCmd(),
		a.libraryCmd(),
		a.versionsCmd(),
		a.compactCmd(),
		a.summaryCmd(),
		a.relationsCmd(),
		a.healthCmd(),
	)
	return root
}

// setup loads configuration and wires the service. Resources opened before a
// failure are released.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.wire(cmd); err != nil {
		if cerr := a.close(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
	return nil
}

func (a *app) wire(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.storeDir != "" {
		cfg.Store.Kind = "file"
		cfg.Store.Dir = a.storeDir
	}
	if cmd.Flags().Changed("show-mitigations") {
		cfg.ShowMitigationValues = a.showMitigations
	}

	logger := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	opts := append(libdiff.FromConfig(cfg), libdiff.WithLogger(logger))

	src, err := a.source(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.src = src

	if cfg.Properties.Etcd != nil {
		props, err := config.NewEtcdProperties(*cfg.Properties.Etcd)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, props)
		a.props = props
		opts = append(opts, libdiff.WithProperties(props))
	}

	if a.filter != "" {
		f, err := changelog.NewFilter(a.filter)
		if err != nil {
			return err
		}
		opts = append(opts, libdiff.WithFilter(f))
	}

	svc, err := libdiff.New(src, opts...)
	if err != nil {
		return err
	}
	a.svc = svc
	return nil
}

func (a *app) source(cfg *config.Config) (store.Source, error) {
	switch cfg.Store.Kind {
	case "redis":
		src, err := store.NewRedisSource(store.RedisOptions{
			URL:    cfg.Store.Redis.URL,
			Prefix: cfg.Store.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, src)
		return src, nil
	default:
		return store.NewFileSource(cfg.Store.Dir)
	}
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) print(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
