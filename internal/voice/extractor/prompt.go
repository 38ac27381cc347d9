package extractor

import (
	"fmt"
	"time"

	"voice-task-board/internal/voice"
	"voice-task-board/pkg/datemath"
)

const promptTemplate = `You extract a single task from a spoken note.

Current date and time in the user's timezone (%s): %s (%s)
Current date and time in UTC: %s

Return ONLY one JSON object, no prose and no code fences, with exactly these keys:
{
  "title": "short summary of the main action, or null",
  "description": "additional details or context, or null",
  "priority": "Low | Medium | High | Urgent, or null",
  "status": "To Do | In Progress | Done, or null",
  "dueDate": "ISO 8601 UTC timestamp, or null"
}

Priority must be exactly one of Low, Medium, High, Urgent. Words like "urgent" or "critical" mean Urgent; "high priority" or "important" mean High; "low priority" means Low. Otherwise use null.
Status must be exactly one of To Do, In Progress, Done. Use null when the note does not say.
Use null for any field you cannot determine with confidence.

%s`

// buildSystemInstruction renders the prompt for one time context.
func buildSystemInstruction(tc voice.TimeContext) string {
	local := tc.LocalNow()
	return fmt.Sprintf(promptTemplate,
		tc.Zone(),
		local.Format("2006-01-02T15:04:05-07:00"),
		local.Weekday(),
		tc.Now.UTC().Format(time.RFC3339),
		datemath.Rules,
	)
}
