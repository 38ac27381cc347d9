package extractor

import (
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"

	"voice-task-board/internal/model"
	"voice-task-board/internal/voice"
)

func TestFallback_Priority(t *testing.T) {
	tc := voice.NewTimeContext(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "UTC")

	tcs := map[string]struct {
		transcript string
		want       *model.Priority
	}{
		"urgent":        {transcript: "this is urgent, call the vendor", want: ptr(model.PriorityUrgent)},
		"critical":      {transcript: "Critical bug in checkout", want: ptr(model.PriorityUrgent)},
		"high_priority": {transcript: "High priority: prepare slides", want: ptr(model.PriorityHigh)},
		"important":     {transcript: "important meeting notes", want: ptr(model.PriorityHigh)},
		"low_priority":  {transcript: "low priority: clean desk", want: ptr(model.PriorityLow)},
		"urgent_wins":   {transcript: "low priority but actually urgent", want: ptr(model.PriorityUrgent)},
		"none":          {transcript: "water the plants", want: nil},
	}

	for name, tc2 := range tcs {
		t.Run(name, func(t *testing.T) {
			got := Fallback(tc2.transcript, tc).Priority
			if !reflect.DeepEqual(got, tc2.want) {
				t.Errorf("Fallback(%q).Priority = %v, want %v", tc2.transcript, deref(got), deref(tc2.want))
			}
		})
	}
}

func TestFallback_Title(t *testing.T) {
	tc := voice.NewTimeContext(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "UTC")

	tcs := map[string]struct {
		transcript string
		want       string
	}{
		"keyword_removed":  {transcript: "this is urgent, call the vendor", want: "this is, call the vendor"},
		"prefix_removed":   {transcript: "low priority: clean desk", want: "clean desk"},
		"date_phrase":      {transcript: "finish the report by next friday", want: "finish the report"},
		"due_phrase":       {transcript: "tax return due end of month", want: "tax return month"},
		"plain":            {transcript: "buy milk", want: "buy milk"},
		"only_keywords":    {transcript: "urgent!", want: "urgent!"},
		"whitespace_fixed": {transcript: "  call   mom  important ", want: "call mom"},
	}

	for name, tc2 := range tcs {
		t.Run(name, func(t *testing.T) {
			got := Fallback(tc2.transcript, tc)
			if got.Title == nil || *got.Title != tc2.want {
				t.Errorf("Fallback(%q).Title = %v, want %q", tc2.transcript, deref(got.Title), tc2.want)
			}
		})
	}
}

func TestFallback_DueDate(t *testing.T) {
	tcs := map[string]struct {
		now        time.Time
		tz         string
		transcript string
		want       *time.Time
	}{
		"new_york_tomorrow_5pm": {
			now:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			tz:         "America/New_York",
			transcript: "remind me tomorrow at 5 PM",
			want:       ptr(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)),
		},
		"tomorrow_morning_utc": {
			now:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			tz:         "UTC",
			transcript: "follow up tomorrow morning",
			want:       ptr(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
		},
		"no_date": {
			now:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			tz:         "UTC",
			transcript: "call the vendor",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got := Fallback(tc.transcript, voice.NewTimeContext(tc.now, tc.tz))
			if tc.want == nil {
				if got.DueDate != nil {
					t.Fatalf("expected no due date, got %v", got.DueDate)
				}
				return
			}
			if got.DueDate == nil || !got.DueDate.Equal(*tc.want) {
				t.Fatalf("DueDate = %v, want %v", deref(got.DueDate), *tc.want)
			}
			if got.DueDate.Location() != time.UTC {
				t.Errorf("DueDate not in UTC: %v", got.DueDate.Location())
			}
		})
	}
}

func TestFallback_Defaults(t *testing.T) {
	got := Fallback("water the plants", voice.NewTimeContext(time.Now(), ""))
	if got.Status != model.StatusToDo {
		t.Errorf("Status = %q, want %q", got.Status, model.StatusToDo)
	}
	if got.Description != nil {
		t.Errorf("Description = %q, want nil", *got.Description)
	}
}

func TestFallback_Idempotent(t *testing.T) {
	words := []string{"urgent", "call", "mom", "tomorrow", "at", "5", "pm", "by", "friday",
		"low priority", "important", "morning", "jan", "15", "report", "in", "3", "days", ","}
	zones := []string{"UTC", "America/New_York", "Asia/Tokyo", "Europe/Berlin", "bogus/zone"}

	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(words), 0, 12).Draw(rt, "words")
		transcript := ""
		for i, w := range parts {
			if i > 0 {
				transcript += " "
			}
			transcript += w
		}
		sec := rapid.Int64Range(946684800, 4102444800).Draw(rt, "now")
		tc := voice.NewTimeContext(time.Unix(sec, 0), rapid.SampledFrom(zones).Draw(rt, "tz"))

		a := Fallback(transcript, tc)
		b := Fallback(transcript, tc)
		if !reflect.DeepEqual(a, b) {
			rt.Fatalf("Fallback not deterministic for %q: %+v vs %+v", transcript, a, b)
		}
		if a.Status != model.StatusToDo {
			rt.Fatalf("Status = %q", a.Status)
		}
		if a.Priority != nil && !a.Priority.Valid() {
			rt.Fatalf("invalid priority %q", *a.Priority)
		}
		if a.DueDate != nil && a.DueDate.Location() != time.UTC {
			rt.Fatalf("due date not UTC: %v", a.DueDate)
		}
	})
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
