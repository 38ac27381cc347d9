package extractor

import (
	"regexp"
	"strings"

	"voice-task-board/internal/model"
	"voice-task-board/internal/voice"
	"voice-task-board/pkg/datemath"
)

// priorityKeywords is checked in order; the first group with a hit wins.
var priorityKeywords = []struct {
	priority model.Priority
	words    []string
}{
	{model.PriorityUrgent, []string{"urgent", "critical"}},
	{model.PriorityHigh, []string{"high priority", "important"}},
	{model.PriorityLow, []string{"low priority"}},
}

var (
	keywordRe    = regexp.MustCompile(`(?i)\b(?:urgent|critical|high priority|low priority|important)\b`)
	datePhraseRe = regexp.MustCompile(`(?i)\b(?:by|due|before|until)\s+\w+\s*\w*`)
	spacesRe     = regexp.MustCompile(`\s+`)
	spacePunctRe = regexp.MustCompile(`\s+([,.;:!?])`)
)

const trimChars = " \t\r\n,.;:!?-"

// Fallback extracts task fields with keyword rules and the procedural date
// resolver. It makes no network calls and returns the same output for the same input.
func Fallback(transcript string, tc voice.TimeContext) voice.ExtractedTaskFields {
	fields := voice.ExtractedTaskFields{
		Priority: fallbackPriority(transcript),
		Status:   model.StatusToDo,
	}

	parser := datemath.NewParserInLocation(tc.Location)
	if due, ok := parser.Resolve(transcript, tc.Now); ok {
		fields.DueDate = &due
	}

	title := fallbackTitle(transcript)
	fields.Title = &title

	return fields
}

func fallbackPriority(transcript string) *model.Priority {
	lower := strings.ToLower(transcript)
	for _, group := range priorityKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				p := group.priority
				return &p
			}
		}
	}
	return nil
}

func fallbackTitle(transcript string) string {
	title := keywordRe.ReplaceAllString(transcript, "")
	title = datePhraseRe.ReplaceAllString(title, "")
	title = spacesRe.ReplaceAllString(title, " ")
	title = spacePunctRe.ReplaceAllString(title, "$1")
	title = strings.Trim(title, trimChars)
	if title == "" {
		return transcript
	}
	return title
}
