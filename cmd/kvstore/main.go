/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/config"
	"github.com/suparena/keyvaluestore/schema"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	envFile  string
	typeName string

	logger  *zap.Logger
	backend backend
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "kvstore",
		Short:         "Read and write schema-defined fields of key-value records",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&a.typeName, "type", "", "schema type to use (defaults to KVSTORE_TYPE, then the first type)")

	root.AddCommand(newVersionCommand())
	root.AddCommand(a.command(&cobra.Command{
		Use:   "fields",
		Short: "List the fields of the schema type",
		Args:  cobra.NoArgs,
	}, a.runFields))
	root.AddCommand(a.command(&cobra.Command{
		Use:   "show <id>",
		Short: "Print every field of a record",
		Args:  cobra.ExactArgs(1),
	}, a.runShow))
	root.AddCommand(a.command(&cobra.Command{
		Use:   "get <id> <field>",
		Short: "Print one field of a record",
		Args:  cobra.ExactArgs(2),
	}, a.runGet))
	root.AddCommand(a.command(&cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Write one field of a record; the value is parsed as a YAML scalar",
		Args:  cobra.ExactArgs(3),
	}, a.runSet))

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := kv.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "keyvaluestore version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	}
}

// command wires setup and teardown of the backend around run.
func (a *app) command(cmd *cobra.Command, run func(ctx context.Context, out io.Writer, args []string) error) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.setup(ctx); err != nil {
			return err
		}
		defer a.teardown()
		return run(ctx, cmd.OutOrStdout(), args)
	}
	return cmd
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger, err = cfg.Logger()
	if err != nil {
		return err
	}
	kv.SetLogger(a.logger)

	f, err := schema.LoadFile(cfg.SchemaPath)
	if err != nil {
		return err
	}

	typeName := a.typeName
	if typeName == "" {
		typeName = cfg.TypeName
	}
	def, err := pickDefinition(f, typeName)
	if err != nil {
		return err
	}

	a.backend, err = openBackend(ctx, cfg, def, a.logger)
	return err
}

func (a *app) teardown() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("Failed to close backend", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func pickDefinition(f *schema.File, typeName string) (*schema.Definition, error) {
	if typeName == "" {
		if len(f.Types) == 0 {
			return nil, fmt.Errorf("schema defines no types")
		}
		return &f.Types[0], nil
	}
	def, ok := f.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("schema has no type %q", typeName)
	}
	return def, nil
}

func (a *app) runFields(_ context.Context, out io.Writer, _ []string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKEY\tMODE\tDOC")
	for _, f := range a.backend.Fields() {
		mode := "rw"
		if f.ReadOnly {
			mode = "ro"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Key, mode, f.Doc)
	}
	return w.Flush()
}

func (a *app) runShow(ctx context.Context, out io.Writer, args []string) error {
	s, err := a.backend.Show(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

func (a *app) runGet(ctx context.Context, out io.Writer, args []string) error {
	v, err := a.backend.Get(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, v)
	return err
}

func (a *app) runSet(ctx context.Context, _ io.Writer, args []string) error {
	return a.backend.Set(ctx, args[0], args[1], parseValue(args[2]))
}

// parseValue decodes a command line value as a YAML scalar so numbers and booleans
// keep their type; anything else stays a string.
func parseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case nil:
		if raw == "" {
			return ""
		}
		return nil
	case string, int, float64, bool:
		return v
	default:
		return raw
	}
}
