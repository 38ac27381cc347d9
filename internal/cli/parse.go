package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Extract task fields from typed text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		create, _ := cmd.Flags().GetBool("create")

		client := newAPIClient(cfg.Server)
		res, err := client.Parse(cmd.Context(), strings.Join(args, " "), cfg.Timezone)
		if err != nil {
			return err
		}
		if err := printResult(cmd.OutOrStdout(), res, asJSON); err != nil {
			return err
		}
		if !create {
			return nil
		}

		created, err := client.CreateTask(cmd.Context(), res, cfg.Timezone)
		if err != nil {
			return err
		}
		printCreated(cmd.OutOrStdout(), created)
		return nil
	},
}

func init() {
	parseCmd.Flags().Bool("json", false, "print the result as JSON")
	parseCmd.Flags().Bool("create", false, "save the parsed task")
	rootCmd.AddCommand(parseCmd)
}
