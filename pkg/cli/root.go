package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/cliconfig"
	"github.com/nksaraf/magiql/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Persistent flags available to all subcommands
	jsonOutput bool
	flags      cliconfig.CLIConfig

	cfg    *cliconfig.CLIConfig
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd builds the magiql command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Nop(), cfg: cliconfig.NewDefault()}

	rootCmd := &cobra.Command{
		Use:   "magiql",
		Short: "magiql edits GraphQL documents through a path-addressed reactive store",
		Long: `magiql decomposes GraphQL query documents into one reactive cell per AST
field, addressed by dot-separated paths such as
Foo.definitions.0.selectionSet.selections.0, and prints them back.

Configuration can be provided via flags, MAGIQL_* environment variables,
a local .magiqlrc.yaml or the global config at $XDG_CONFIG_HOME/magiql/config.yaml.`,
		// No Run function here means 'magiql' with no args will print help text by default.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&a.jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&a.flags.Schema, cliconfig.KeySchema, "", "GraphQL schema (SDL) file")
	pf.StringVar(&a.flags.Root, cliconfig.KeyRoot, "", "Root path of the document (default: first definition name)")
	pf.StringVar(&a.flags.Indent, cliconfig.KeyIndent, "", "Indentation for printed documents")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "Log format: text, json")

	rootCmd.AddCommand(
		a.newFmtCmd(),
		a.newTreeCmd(),
		a.newRemoveCmd(),
		a.newAddCmd(),
		a.newFieldsCmd(),
		a.newWatchCmd(),
		a.newVersionCmd(),
	)
	return rootCmd
}

// configure resolves configuration and the logger once flags are parsed.
func (a *app) configure(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cliconfig.MergeConfig(cfg, &a.flags, cliconfig.SourceFlag)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: a.stderr,
	})
	a.logger.Debug("config loaded",
		"schema", cfg.Schema, "schemaSource", cfg.Source(cliconfig.KeySchema),
		"root", cfg.Root, "rootSource", cfg.Source(cliconfig.KeyRoot))
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
