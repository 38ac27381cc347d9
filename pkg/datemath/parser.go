package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts relative date strings to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "America/New_York"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// NewParserInLocation creates a parser for an already loaded location. A nil location means UTC.
func NewParserInLocation(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{location: loc}
}

// Location returns the timezone clock times are interpreted in.
func (p *Parser) Location() *time.Location {
	return p.location
}

var (
	inDurationRe = regexp.MustCompile(`in (\d+|` + numberWordPattern + `) (day|days|week|weeks|month|months)\b`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
)

// Parse converts a relative date string to the start of the matching day in the
// parser's timezone; weekdays and day offsets are counted on the local calendar.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))
	baseTime = baseTime.In(p.location)

	switch relative {
	case "today", "tonight":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "day after tomorrow", "the day after tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 2)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "next week":
		return p.startOfDay(baseTime.AddDate(0, 0, 7)), nil
	case "next month":
		return p.startOfDay(baseTime.AddDate(0, 1, 0)), nil
	}

	// Handle "in X days/weeks/months"
	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	// Handle "next <weekday>"
	if strings.HasPrefix(relative, "next ") {
		return p.parseNextWeekday(relative, baseTime)
	}

	// Handle "<weekday>" and "this <weekday>"
	if wd, ok := weekdays[strings.TrimPrefix(relative, "this ")]; ok {
		return p.startOfDay(baseTime.AddDate(0, 0, daysUntil(baseTime.Weekday(), wd, false))), nil
	}

	// Fallback: treat unknown as today
	return p.startOfDay(baseTime), nil
}

// parseInDuration handles patterns like "in 3 days", "in two weeks", "in a month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, ok := parseAmount(matches[1])
	if !ok {
		return baseTime, fmt.Errorf("invalid duration amount: %q", matches[1])
	}
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(relative string, baseTime time.Time) (time.Time, error) {
	dayName := strings.TrimPrefix(relative, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil(baseTime.Weekday(), targetWeekday, true))), nil
}

// daysUntil counts forward from current to target. With strict set, the same
// weekday means a week ahead instead of today.
func daysUntil(current, target time.Weekday, strict bool) int {
	n := int(target - current)
	if n < 0 || (strict && n == 0) {
		n += 7
	}
	return n
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

const numberWordPattern = `a|an|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

func parseAmount(s string) (int, bool) {
	if n, ok := numberWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
