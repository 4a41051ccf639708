package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"actionboard/internal/seed"
	"actionboard/internal/tasks"
	"actionboard/internal/ui"
	"actionboard/internal/webhook"
)

func newSendCmd(app *App) *cobra.Command {
	var meetingType string

	cmd := &cobra.Command{
		Use:   "send [link]",
		Short: "Submit the action items in a link without opening the editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.Link = args[0]
			}
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			s, err := readSeed(app)
			if err != nil {
				return err
			}
			if meetingType == "" {
				meetingType = cfg.MeetingTypes[0]
			}

			sess := tasks.NewSession()
			seed.Apply(sess, s)
			list := sess.Tasks.All()
			for i := range list {
				list[i].Task = strings.TrimSpace(list[i].Task)
				list[i].Owner = strings.TrimSpace(list[i].Owner)
			}
			p := webhook.Payload{MeetingTitle: sess.MeetingTitle, MeetingType: meetingType, Tasks: list}

			client := webhook.NewClient(cfg.WebhookURL, cfg.RequestTimeout())
			rcpt, sendErr := client.Submit(cmd.Context(), p)
			if journal := openJournal(cfg); journal != nil {
				if rcpt.SubmissionID != "" {
					if err := journal.Record(ui.JournalEntry(p, rcpt, sendErr)); err != nil {
						log.Printf("journal submission %s: %v", rcpt.SubmissionID, err)
					}
				}
				journal.Close()
			}
			if sendErr != nil {
				return sendErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "delivered %d action items (status %d, id %s)\n", len(list), rcpt.Status, rcpt.SubmissionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&meetingType, "meeting-type", "", "meeting type sent with the list (default: first configured type)")
	return cmd
}

// readSeed reports broken payloads instead of ignoring them, since there is
// no editor to fall back on.
func readSeed(app *App) (seed.Seed, error) {
	if app.Data != "" {
		return seed.FromValue(app.Data)
	}
	s, ok, err := seed.FromURL(app.Link)
	if err != nil {
		return seed.Seed{}, err
	}
	if !ok {
		return seed.Seed{}, errors.New("no data parameter: pass a link with ?" + seed.Param + "= or use --data")
	}
	return s, nil
}
