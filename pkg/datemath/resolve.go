package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	isoDateTimeRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})t(\d{2}:\d{2})`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDayRe    = regexp.MustCompile(`\b` + monthPattern + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`)
	dayMonthRe    = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthPattern + `\b(?:,?\s+(\d{4})\b)?`)
	relativeDayRe = regexp.MustCompile(
		`\b(?:the\s+)?day after tomorrow\b|\btomorrow\b|\btoday\b|\btonight\b|\byesterday\b|` +
			`\bnext (?:week|month)\b|\bin (?:\d+|` + numberWordPattern + `) (?:days?|weeks?|months?)\b|` +
			`\b(?:(?:next|this)\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	inClockDurationRe = regexp.MustCompile(`\bin (\d+|` + numberWordPattern + `) (minutes?|mins?|hours?|hrs?)\b`)
	inHalfHourRe      = regexp.MustCompile(`\bin half an hour\b`)

	ampmRe       = regexp.MustCompile(`\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm|a\.m\.|p\.m\.)(?:[^a-z]|$)`)
	clock24Re    = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	atHourRe     = regexp.MustCompile(`\bat\s+(\d{1,2})(?:\s*o'?clock)?(?:[^\d:a-z]|$)`)
	noonRe       = regexp.MustCompile(`\b(?:noon|midday)\b`)
	midnightRe   = regexp.MustCompile(`\bmidnight\b`)
	partOfDayRe  = regexp.MustCompile(`\b(morning|afternoon|evening|tonight)\b`)
	barePartRe   = regexp.MustCompile(`\b(?:this\s+(morning|afternoon|evening)|(tonight))\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Resolve scans free text for a date or time expression and returns the absolute
// UTC instant it denotes. The second result is false when the text has no date or
// time content.
//
// Relative days are counted from the UTC calendar date of now; clock times and
// part-of-day defaults are read in the parser's location.
func (p *Parser) Resolve(text string, now time.Time) (time.Time, bool) {
	r, ok := p.ResolveDetail(text, now)
	return r.AbsoluteTime, ok
}

// ResolveDetail is Resolve plus whether the result fell back to end of day.
func (p *Parser) ResolveDetail(text string, now time.Time) (ParseResult, bool) {
	s := normalize(text)
	if s == "" {
		return ParseResult{}, false
	}

	if d, ok := clockDuration(s); ok {
		return ParseResult{AbsoluteTime: now.Add(d).UTC()}, true
	}

	base := p.anchor(now)
	day, hasDate := p.findDate(s, base)

	c, hasClock := findClock(s)
	if !hasClock {
		c, hasClock = findPartOfDay(s, hasDate)
	}

	if !hasDate && !hasClock {
		return ParseResult{}, false
	}
	if !hasDate {
		day = p.startOfDay(base)
	}

	allDay := false
	if !hasClock {
		c, allDay = endOfDay, true
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, c.second, 0, p.location)
	return ParseResult{AbsoluteTime: t.UTC(), IsAllDay: allDay}, true
}

// anchor returns noon, in the parser's location, on the UTC calendar date of now.
// Noon keeps day arithmetic clear of DST transitions.
func (p *Parser) anchor(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, p.location)
}

func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, " ")
	return isoDateTimeRe.ReplaceAllString(s, "$1 $2")
}

func clockDuration(s string) (time.Duration, bool) {
	if inHalfHourRe.MatchString(s) {
		return 30 * time.Minute, true
	}
	m := inClockDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, ok := parseAmount(m[1])
	if !ok {
		return 0, false
	}
	if strings.HasPrefix(m[2], "h") {
		return time.Duration(n) * time.Hour, true
	}
	return time.Duration(n) * time.Minute, true
}

func (p *Parser) findDate(s string, base time.Time) (time.Time, bool) {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := p.date(y, time.Month(mo), d); ok {
			return t, true
		}
	}

	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		if t, ok := p.monthDay(m[1], m[2], m[3], base); ok {
			return t, true
		}
	}

	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		if t, ok := p.monthDay(m[2], m[1], m[3], base); ok {
			return t, true
		}
	}

	if phrase := relativeDayRe.FindString(s); phrase != "" {
		t, err := p.Parse(phrase, base)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

func (p *Parser) monthDay(monthWord, dayStr, yearStr string, base time.Time) (time.Time, bool) {
	month, ok := monthsByPrefix[monthWord[:3]]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	if yearStr != "" {
		year, _ := strconv.Atoi(yearStr)
		return p.date(year, month, day)
	}
	return p.nearest(month, day, base)
}

// nearest picks the occurrence of month/day closest to base among the previous,
// current and next year. Ties go to the later date.
func (p *Parser) nearest(month time.Month, day int, base time.Time) (time.Time, bool) {
	ref := p.startOfDay(base)
	var best time.Time
	var bestDiff time.Duration
	for _, y := range []int{base.Year() - 1, base.Year(), base.Year() + 1} {
		c, ok := p.date(y, month, day)
		if !ok {
			continue
		}
		diff := c.Sub(ref)
		if diff < 0 {
			diff = -diff
		}
		if best.IsZero() || diff < bestDiff || (diff == bestDiff && c.After(best)) {
			best, bestDiff = c, diff
		}
	}
	return best, !best.IsZero()
}

// date builds local midnight for y-m-d, rejecting dates time.Date would normalize.
func (p *Parser) date(y int, m time.Month, d int) (time.Time, bool) {
	t := time.Date(y, m, d, 0, 0, 0, 0, p.location)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func findClock(s string) (clock, bool) {
	if m := ampmRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h >= 1 && h <= 12 {
			minute := 0
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			pm := strings.HasPrefix(m[3], "p")
			switch {
			case pm && h != 12:
				h += 12
			case !pm && h == 12:
				h = 0
			}
			return clock{hour: h, minute: minute}, true
		}
	}

	if m := clock24Re.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return clock{hour: h, minute: minute}, true
	}

	if noonRe.MatchString(s) {
		return clock{hour: 12}, true
	}
	if midnightRe.MatchString(s) {
		return clock{}, true
	}

	if m := atHourRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h <= 23 {
			return clock{hour: h}, true
		}
	}

	return clock{}, false
}

// findPartOfDay maps morning/afternoon/evening to fixed clock times. Without a
// date the phrase must be anchored ("this morning", "tonight") to count.
func findPartOfDay(s string, hasDate bool) (clock, bool) {
	var word string
	if hasDate {
		if m := partOfDayRe.FindStringSubmatch(s); m != nil {
			word = m[1]
		}
	} else if m := barePartRe.FindStringSubmatch(s); m != nil {
		word = m[1] + m[2]
	}

	switch word {
	case "morning":
		return morning, true
	case "afternoon":
		return afternoon, true
	case "evening", "tonight":
		return evening, true
	}
	return clock{}, false
}
