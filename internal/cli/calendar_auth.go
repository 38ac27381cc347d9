package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voice-task-board/pkg/gcalendar"
)

var calendarAuthCmd = &cobra.Command{
	Use:   "calendar-auth",
	Short: "Authorize Google Calendar access and write token.json",
	Long: `calendar-auth runs the OAuth flow for Desktop App credentials. Open the
printed URL, approve access, then paste the authorization code back here.
The server reads the resulting token file to create due date reminders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(cfg.Calendar.CredentialsPath)
		if err != nil {
			return fmt.Errorf("read credentials: %w", err)
		}
		conf, err := gcalendar.OAuthConfigFromJSON(raw)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Open this URL in your browser and approve access:\n\n%s\n\n", gcalendar.AuthCodeURL(conf, "voicectl"))
		fmt.Fprint(out, "Authorization code: ")

		code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && strings.TrimSpace(code) == "" {
			return fmt.Errorf("read authorization code: %w", err)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return fmt.Errorf("no authorization code entered")
		}

		if _, err := gcalendar.ExchangeAndSave(cmd.Context(), conf, code, cfg.Calendar.TokenPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s token saved to %s\n", okStyle.Render("✓"), cfg.Calendar.TokenPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarAuthCmd)
}
