package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var (
	configPath string
	cfg        Config
)

var rootCmd = &cobra.Command{
	Use:   "voicectl",
	Short: "Record tasks by voice and send them to a Voice Task Board server",
	Long: `voicectl records a spoken task description from the microphone, sends it to
a Voice Task Board server for transcription and field extraction, and prints
the parsed title, priority and due date. With --create the task is saved.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if s, _ := cmd.Flags().GetString("server"); s != "" {
			loaded.Server = s
		}
		if tz, _ := cmd.Flags().GetString("timezone"); tz != "" {
			loaded.Timezone = tz
		}
		cfg = loaded
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "voicectl %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath(), "path to the TOML config file")
	rootCmd.PersistentFlags().String("server", "", "server base URL (overrides config)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for resolving dates (overrides config)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
