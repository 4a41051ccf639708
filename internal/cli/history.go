package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"actionboard/internal/storage"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent webhook submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JournalPath == "" {
				return errors.New("journal disabled: set journal_path in the config")
			}
			journal, err := storage.Open(cfg.JournalPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer journal.Close()

			subs, err := journal.Recent(limit)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(subs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of submissions to show (0 for all)")
	return cmd
}

func renderHistory(subs []storage.Submission) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		status := "-"
		if s.Status != 0 {
			status = strconv.Itoa(s.Status)
		}
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(s.Outcome),
			status,
			s.MeetingType,
			s.MeetingTitle,
			strconv.Itoa(s.TaskCount),
			s.ID,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WHEN", "OUTCOME", "STATUS", "TYPE", "TITLE", "TASKS", "ID").
		Rows(rows...)
	return t.String()
}
