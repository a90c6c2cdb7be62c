package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexmk92/modelpicker/core"
	"github.com/alexmk92/modelpicker/core/config"
	"github.com/alexmk92/modelpicker/core/listers"
	"github.com/alexmk92/modelpicker/ui"
)

type rootFlags struct {
	configPath string
	model      string
	driver     string
	locked     bool
	debug      bool
}

// Keep main lean, everything it does is wiring: config, logging, the model
// service and the UI that consumes it.
func main() {
	log.SetReportTimestamp(false)
	log.SetPrefix("modelpicker")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal("Error switching model", "error", err)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "modelpicker",
		Short: "Pick the model used by the chat session",
		Long: "modelpicker opens the model switcher. The recommended models are shown first,\n" +
			"everything else the provider offers sits behind the group entry.\n" +
			"The chosen model is printed on exit when it changed.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/modelpicker/config.yaml)")
	cmd.Flags().StringVar(&flags.model, "model", "", "model the session is currently using")
	cmd.Flags().StringVar(&flags.driver, "driver", "", "where the model list comes from: openai or static")
	cmd.Flags().BoolVar(&flags.locked, "locked", false, "the session already has a response, switching is not allowed")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "log debug output")

	return cmd
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	// Flags beat config, config beats defaults
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.driver != "" {
		cfg.Provider.Driver = flags.driver
	}

	closeLog, err := setupLogging(cfg.Log, flags.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Debug("Config loaded", "path", cfg.Path(), "model", cfg.Model, "driver", cfg.Provider.Driver)

	service, err := newModelService(cfg)
	if err != nil {
		return err
	}

	opts := ui.Options{
		CurrentModel:    cfg.Model,
		HasLastResponse: flags.locked,
		GroupLabel:      cfg.Provider.GroupLabel,
		FetchTimeout:    cfg.Provider.Timeout,
	}
	if cfg.SaveSelection {
		savePath := cfg.Path()
		opts.OnModelChanged = func(model string) error {
			return config.SaveModel(savePath, model)
		}
	}

	uiManager := ui.Start(service, opts)
	p := tea.NewProgram(uiManager, tea.WithOutput(cmd.ErrOrStderr()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// Printed after the program exits so it persists, and so the tool can be
	// used from a shell as model=$(modelpicker)
	if out := uiManager.FinalOutput(); out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// newModelService resolves the provider credentials and builds the lister behind
// the model service
func newModelService(cfg config.Config) (*core.ModelService, error) {
	credentialsPath := cfg.Provider.CredentialsFile
	if credentialsPath == "" {
		path, err := core.DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
		credentialsPath = path
	}

	reader := core.NewCredentialReader()
	if err := reader.LoadFile(credentialsPath); err != nil {
		return nil, err
	}
	cred := reader.ResolveCredential(cfg.Provider.Profile)
	if !cred.HasAPIKey() {
		log.Debug("No API key found, falling back to the recommended models", "profile", cfg.Provider.Profile)
	}

	name, err := listers.ParseLister(cfg.Provider.Driver)
	if err != nil {
		return nil, err
	}
	lister, err := listers.GetLister(name, cred, cfg.Provider.Models, cfg.Recommended)
	if err != nil {
		return nil, err
	}

	return core.NewModelService(lister, cfg.Recommended).WithTimeout(cfg.Provider.Timeout), nil
}

// setupLogging points the logger away from the terminal while the UI owns it.
// Logs go to log.file, or with --debug and no file to a file in the temp dir.
func setupLogging(cfg config.LogConfig, debug bool) (func(), error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	path := cfg.File
	if path == "" && debug {
		path = filepath.Join(os.TempDir(), "modelpicker.log")
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
