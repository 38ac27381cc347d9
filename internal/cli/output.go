package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	absentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

func printResult(w io.Writer, res processResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	field := func(label string, v *string) {
		val := absentStyle.Render("none")
		if v != nil && *v != "" {
			val = valueStyle.Render(*v)
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label)), val)
	}

	transcript := res.Transcript
	status := res.Parsed.Status
	field("Transcript", &transcript)
	field("Title", res.Parsed.Title)
	field("Description", res.Parsed.Description)
	field("Priority", res.Parsed.Priority)
	field("Status", &status)
	field("Due", res.Parsed.DueDate)
	return nil
}

func printCreated(w io.Writer, t createdTask) {
	fmt.Fprintf(w, "%s task %s created\n", okStyle.Render("✓"), t.Task.ID)
	if t.CalendarLink != "" {
		fmt.Fprintf(w, "  calendar: %s\n", t.CalendarLink)
	}
}
