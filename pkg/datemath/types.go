package datemath

import "time"

// ParseResult holds the result of resolving a free-text date expression.
type ParseResult struct {
	AbsoluteTime time.Time // always UTC
	IsAllDay     bool      // no clock time or part of day was given
}

// clock is a wall-clock time of day.
type clock struct {
	hour   int
	minute int
	second int
}

// Part-of-day defaults, local time.
var (
	morning   = clock{hour: 9}
	afternoon = clock{hour: 14}
	evening   = clock{hour: 18}
	endOfDay  = clock{hour: 23, minute: 59, second: 59}
)

// Rules describes the resolution rules in prose so a language model can be asked
// to resolve dates the same way Resolve does.
const Rules = `Date and time rules:
- Count relative days ("today", "tomorrow", "next Monday", "in 3 days", "next week") from the current UTC date.
- Resolve absolute dates ("Jan 15", "15th January") to the nearest occurrence of that date in the previous, current or next year.
- When an explicit clock time is given ("5 PM", "17:30", "noon"), use exactly that time of day in the user's timezone.
- When only a part of day is given, use morning 09:00, afternoon 14:00, evening or tonight 18:00, in the user's timezone.
- When a date has no time of day, use 23:59:59 in the user's timezone on that date.
- When a time of day has no date, use the current date.
- "in N minutes" and "in N hours" are offsets from the current instant.
- When the text contains no date or time, dueDate is null.
- Always return dueDate as an ISO 8601 UTC timestamp ending in Z, for example 2024-06-11T21:00:00Z.`
