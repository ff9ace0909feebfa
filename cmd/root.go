package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Anikeit18/Stock-Reseacher/client"
	"github.com/Anikeit18/Stock-Reseacher/config"
	"github.com/Anikeit18/Stock-Reseacher/tui"
	"github.com/Anikeit18/Stock-Reseacher/ui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func termSize(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}

// rootOptions carries the global flags and the state PersistentPreRunE
// builds from them for every subcommand.
type rootOptions struct {
	configPath    string
	apiURL        string
	verbose       bool
	logFile       string
	growthRefetch string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCmd creates the stock-researcher command. Without a subcommand it
// starts the interactive UI.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stock-researcher",
		Short:         "Search stocks and browse their overview, growth, news and financials",
		Version:       version,
		Example:       rootCmdExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides config and env)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose mode - show detailed logs")
	flags.StringVar(&opts.logFile, "log-file", "", "log file for the interactive UI")
	flags.StringVar(&opts.growthRefetch, "growth-refetch", "",
		fmt.Sprintf("growth tab refetch policy: %q or %q", config.RefetchOnce, config.RefetchOnActivate))

	cmd.AddCommand(newSearchCmd(opts), newShowCmd(opts), newHealthCmd(opts))
	return cmd
}

const rootCmdExample = `  # Browse interactively
  stock-researcher

  # Search and print matches
  stock-researcher search apple

  # Pick one of several matches and show its details
  stock-researcher search -i apple

  # Print every section for a ticker as JSON
  stock-researcher show AAPL --json

  # Check the backend
  stock-researcher health --api-url http://localhost:5000`

// setup loads the configuration, applies flag overrides and builds the
// stderr logger used by the subcommands.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	// CLI flags override environment variables and config file
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if cmd.Flags().Changed("growth-refetch") {
		cfg.GrowthRefetch = config.RefetchPolicy(o.growthRefetch)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	o.cfg = cfg
	o.logger = ui.InitLogger(o.verbose, cfg.LogLevel, cmd.ErrOrStderr())
	o.logger.Debug("Configuration loaded", "api_url", cfg.APIURL, "growth_refetch", cfg.GrowthRefetch)
	return nil
}

func (o *rootOptions) newClient() *client.Client {
	return client.NewClient(o.cfg.APIURL,
		client.WithTimeout(o.cfg.Timeout),
		client.WithFinancialsDelay(o.cfg.FinancialsDelay),
	)
}

// runInteractive runs the Bubble Tea UI. Logs go to a rotating file since
// the UI owns the terminal.
func runInteractive(cmd *cobra.Command, o *rootOptions) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("the interactive UI needs a terminal; use the search, show or health commands instead")
	}

	logOut, err := ui.RotatingFile(o.cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logOut.Close()

	logger := ui.InitLogger(o.verbose, o.cfg.LogLevel, logOut)
	logger.Info("Starting interactive UI", "api_url", o.cfg.APIURL)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := tui.NewModel(tui.Options{
		Context:       ctx,
		Backend:       o.newClient(),
		Logger:        logger,
		GrowthRefetch: o.cfg.GrowthRefetch,
		MarkdownStyle: o.cfg.MarkdownStyle,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("interactive UI failed: %w", err)
	}

	logger.Info("Interactive UI closed")
	return nil
}
