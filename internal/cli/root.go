package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"actionboard/internal/config"
	"actionboard/internal/exitcode"
	"actionboard/internal/seed"
	"actionboard/internal/storage"
	"actionboard/internal/tasks"
	"actionboard/internal/ui"
	"actionboard/internal/webhook"
)

type App struct {
	ConfigPath string
	Link       string
	Data       string
	Webhook    string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "actionboard [link]",
		Short:        "Edit meeting action items and send them to a webhook",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Open the editor seeded from a meeting link
  actionboard 'https://meet.example.com/actions?data=%7B%22tasks%22%3A%5B%5D%7D'

  # Seed from a bare data parameter
  actionboard --data '%5B%7B%22task%22%3A%22Draft%20doc%22%7D%5D'

  # Send a link without opening the editor
  actionboard send --meeting-type Planning '<link>'
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.Link = args[0]
			}
			return runEditor(cmd.Context(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/actionboard/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Link, "url", "", "meeting link carrying a data parameter")
	cmd.PersistentFlags().StringVar(&app.Data, "data", "", "raw data parameter value, as it appears in a query string")
	cmd.PersistentFlags().StringVar(&app.Webhook, "webhook", "", "webhook URL (overrides config)")

	cmd.AddCommand(newSendCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return ExitCode(err)
	}
	return exitcode.Success
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var rejected *webhook.RejectedError
	var network *webhook.NetworkError
	if errors.As(err, &rejected) || errors.As(err, &network) {
		return exitcode.BackendError
	}
	return exitcode.UserError
}

func (app *App) loadConfig() (config.Config, error) {
	path := app.ConfigPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if app.Webhook != "" {
		cfg.WebhookURL = app.Webhook
	}
	return cfg, nil
}

// openJournal returns nil when the journal is disabled or cannot be opened;
// the editor works without it.
func openJournal(cfg config.Config) *storage.Store {
	if cfg.JournalPath == "" {
		return nil
	}
	store, err := storage.Open(cfg.JournalPath)
	if err != nil {
		log.Printf("journal disabled: %v", err)
		return nil
	}
	return store
}

func runEditor(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	logFile, err := logToFile(cfg.LogPath)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	sess := tasks.NewSession()
	if app.Data != "" {
		seed.LoadValue(sess, app.Data)
	} else {
		seed.Load(sess, app.Link)
	}
	log.Printf("editor started with %d tasks", sess.Tasks.Len())

	opts := ui.Options{
		Session:   sess,
		Config:    cfg,
		Submitter: webhook.NewClient(cfg.WebhookURL, cfg.RequestTimeout()),
	}
	if journal := openJournal(cfg); journal != nil {
		defer journal.Close()
		opts.Journal = journal
	}
	return ui.Run(ctx, opts)
}

// logToFile sends the standard logger to path while the editor owns the
// terminal. An empty path discards log output.
func logToFile(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, config.AppName)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return f, nil
}
