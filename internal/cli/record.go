package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"voice-task-board/pkg/recorder"
	"voice-task-board/pkg/recorder/portaudio"
)

var errCancelled = errors.New("recording cancelled")

// newRecorder builds the microphone recorder; tests replace it.
var newRecorder = func(sampleRate int) audioRecorder {
	return recorder.New(portaudio.New(), recorder.Config{SampleRate: sampleRate})
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a task from the microphone",
	Long: `record captures audio from the default microphone while showing a live
level meter. Press enter or space to finish and upload, esc to cancel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		create, _ := cmd.Flags().GetBool("create")

		rec := newRecorder(cfg.SampleRate)
		final, err := tea.NewProgram(newMeterModel(cmd.Context(), rec), tea.WithOutput(cmd.ErrOrStderr())).Run()
		if err != nil {
			return err
		}
		m := final.(meterModel)
		switch {
		case m.err != nil:
			return describeRecordError(m.err)
		case m.cancelled:
			return errCancelled
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Uploading %.1fs of audio...\n", m.blob.Duration.Seconds())
		client := newAPIClient(cfg.Server)
		res, err := client.Transcribe(cmd.Context(), m.blob.Data, m.blob.Filename, m.blob.MimeType, cfg.Timezone)
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

// describeRecordError keeps microphone problems distinct from upload failures.
func describeRecordError(err error) error {
	switch {
	case errors.Is(err, recorder.ErrPermissionDenied):
		return fmt.Errorf("microphone access was denied; allow this terminal to use the microphone and try again: %w", err)
	case errors.Is(err, recorder.ErrDeviceUnavailable):
		return fmt.Errorf("no usable microphone found: %w", err)
	default:
		return err
	}
}

func init() {
	recordCmd.Flags().Bool("json", false, "print the result as JSON")
	recordCmd.Flags().Bool("create", false, "save the parsed task")
	rootCmd.AddCommand(recordCmd)
}
