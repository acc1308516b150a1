package review

import (
	"reflect"
	"testing"
)

func TestParseReview_JSONWithCommentary(t *testing.T) {
	raw := `Sure! {"summary":"Great day","score":85}`
	rev := ParseReview(raw, "2026-08-27")

	if rev.Summary != "Great day" {
		t.Errorf("Summary = %q", rev.Summary)
	}
	if rev.Score != 85 {
		t.Errorf("Score = %d, want 85", rev.Score)
	}
	if len(rev.Highlights) != 0 {
		t.Errorf("Highlights = %v, want empty", rev.Highlights)
	}
	if rev.Mood != MoodGood {
		t.Errorf("Mood = %q, want default good", rev.Mood)
	}
	if rev.Date != "2026-08-27" {
		t.Errorf("Date = %q", rev.Date)
	}
}

func TestParseReview_FullPayload(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "Strong finish",
		"detailed_review": "You closed out everything that mattered.",
		"highlights": ["all high-importance tasks done"],
		"suggestions": ["start the hard task earlier"],
		"mood": "excellent",
		"score": 92
	}` + "\n```"

	rev := ParseReview(raw, "2026-08-27")
	if rev.Summary != "Strong finish" || rev.Mood != MoodExcellent || rev.Score != 92 {
		t.Errorf("unexpected review: %+v", rev)
	}
	if !reflect.DeepEqual(rev.Highlights, []string{"all high-importance tasks done"}) {
		t.Errorf("Highlights = %v", rev.Highlights)
	}
	if !reflect.DeepEqual(rev.Suggestions, []string{"start the hard task earlier"}) {
		t.Errorf("Suggestions = %v", rev.Suggestions)
	}
}

func TestParseReview_NoJSONFallsBackToText(t *testing.T) {
	raw := "You did well today, keep it up."
	rev := ParseReview(raw, "2026-08-27")

	if rev.DetailedReview != raw {
		t.Errorf("DetailedReview = %q, want raw text", rev.DetailedReview)
	}
	if rev.Summary != defaultSummary || rev.Score != defaultScore || rev.Mood != MoodGood {
		t.Errorf("defaults not applied: %+v", rev)
	}
	if rev.Highlights == nil || rev.Suggestions == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestParseReview_InvalidFieldsUseDefaults(t *testing.T) {
	raw := `{"summary":"  ","mood":"ecstatic","score":250}`
	rev := ParseReview(raw, "2026-08-27")

	if rev.Summary != defaultSummary {
		t.Errorf("Summary = %q, want default for blank", rev.Summary)
	}
	if rev.Mood != MoodGood {
		t.Errorf("Mood = %q, want default for unknown value", rev.Mood)
	}
	if rev.Score != defaultScore {
		t.Errorf("Score = %d, want default for out-of-range", rev.Score)
	}
}

func TestParseReview_ScoreZeroIsValid(t *testing.T) {
	rev := ParseReview(`{"score":0}`, "2026-08-27")
	if rev.Score != 0 {
		t.Errorf("Score = %d, want 0 kept as-is", rev.Score)
	}
}

func TestParseReview_MalformedJSONDegrades(t *testing.T) {
	raw := `here you go {"summary": "oops", }`
	rev := ParseReview(raw, "2026-08-27")
	if rev.DetailedReview != raw {
		t.Errorf("DetailedReview = %q, want raw text", rev.DetailedReview)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"leading prose", `sure: {"a":1} bye`, `{"a":1}`, true},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"}"}`, `{"a":"}"}`, true},
		{"escaped quote", `{"a":"\"}"}`, `{"a":"\"}"}`, true},
		{"unbalanced", `{"a":1`, "", false},
		{"no object", "nothing here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
