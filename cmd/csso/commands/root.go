// Package commands implements the command line interface of csso.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/csso/internal/build"
	"go.trai.ch/csso/internal/core/domain"
	"golang.org/x/term"
)

// CLI represents the command line interface for csso.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	flags       domain.Flags
	version     bool
	interactive func() bool
	getwd       func() (string, error)
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, workDir string, flags domain.Flags) error
	EngineVersion(name string) (string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app:         a,
		interactive: stdinIsTerminal,
		getwd:       os.Getwd,
	}

	rootCmd := &cobra.Command{
		Use:   "csso [input]",
		Short: "CSS minifier with structural optimisations",
		Long: fmt.Sprintf("csso %s (commit: %s, date: %s)\n\n"+
			"Minifies a stylesheet read from a file or standard input and writes the\n"+
			"result to a file or standard output, optionally with a source map.",
			build.Version, build.Commit, build.Date),
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return domain.NewConfigError(err.Error())
	})

	f := rootCmd.Flags()
	f.StringVarP(&c.flags.Input, domain.FlagInput, "i", "", "Input file")
	f.StringVarP(&c.flags.Output, domain.FlagOutput, "o", "", "Output file (result outputs to stdout if not set)")
	f.StringVarP(&c.flags.SourceMap, domain.FlagSourceMap, "s", string(domain.OutputMapNone),
		"Generate source map: none, inline, file or <filename>")
	f.StringVarP(&c.flags.Usage, domain.FlagUsage, "u", "", "Usage data file")
	f.StringVar(&c.flags.InputSourceMap, domain.FlagInputSourceMap, string(domain.InputMapAuto),
		"Input source map: none, auto or <filename>")
	f.BoolVarP(&c.flags.DeclarationList, domain.FlagDeclarationList, "d", false, "Treat input as a declaration list")
	f.BoolVar(&c.flags.NoRestructure, domain.FlagNoRestructure, false, "Disable structural optimisations")
	f.BoolVar(&c.flags.ForceMediaMerge, domain.FlagForceMediaMerge, false, "Enable unsafe merge of @media rules")
	f.StringVar(&c.flags.Comments, domain.FlagComments, string(domain.CommentsExclamation),
		"Comments to keep: exclamation, first-exclamation or none")
	f.BoolVar(&c.flags.Statistics, domain.FlagStat, false, "Output statistics in stderr")
	f.StringVar(&c.flags.Debug, domain.FlagDebug, "", "Output debug information, --debug=<level> for more")
	f.Lookup(domain.FlagDebug).NoOptDefVal = "1"
	f.BoolVar(&c.flags.Watch, domain.FlagWatch, false, "Watch source file for changes")
	f.StringVar(&c.flags.Engine, domain.FlagEngine, domain.DefaultEngine, "Minification engine: esbuild, tdewolff or cssmin")
	f.StringVarP(&c.flags.ConfigFile, domain.FlagConfig, "c", "", "YAML file with option defaults")
	f.BoolVarP(&c.version, "version", "v", false, "Print the engine version")

	rootCmd.InitDefaultHelpFlag()
	f.Lookup("help").Usage = "Show help"

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInteractive overrides the check for an interactive standard input. Used for testing.
func (c *CLI) SetInteractive(fn func() bool) {
	c.interactive = fn
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	if c.version {
		engine := ""
		if cmd.Flags().Changed(domain.FlagEngine) {
			engine = c.flags.Engine
		}
		v, err := c.app.EngineVersion(engine)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
		return err
	}

	flags := c.flags
	if flags.Input == "" && len(args) > 0 {
		flags.Input = args[0]
	}

	if flags.Input == "" && flags.Output == "" && c.interactive() {
		return cmd.Help()
	}

	flags.Changed = make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flags.Changed[f.Name] = true
	})

	workDir, err := c.getwd()
	if err != nil {
		return err
	}

	return c.app.Run(cmd.Context(), workDir, flags)
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return domain.NewConfigError(err.Error())
		}
		return nil
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
}
