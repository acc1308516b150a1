package review

import (
	"encoding/json"
	"strings"
)

// Defaults used when the model's JSON omits or mangles a field. A parse
// problem never fails the checkup; it degrades to these.
const (
	defaultSummary = "Another day of showing up."
	defaultScore   = 70
)

// reviewPayload mirrors the JSON shape the prompt asks for.
type reviewPayload struct {
	Summary        string   `json:"summary"`
	DetailedReview string   `json:"detailed_review"`
	Highlights     []string `json:"highlights"`
	Suggestions    []string `json:"suggestions"`
	Mood           string   `json:"mood"`
	Score          *int     `json:"score"`
}

// extractJSONObject returns the first balanced top-level {...} object in
// text. Models often wrap their JSON in commentary or markdown fences, so
// everything outside the braces is ignored. String contents are tracked so
// braces inside values do not throw off the balance.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseReview builds a CheckupReview for date from the raw model response.
// Missing or invalid fields fall back to defaults; when no JSON object is
// present at all, the whole response becomes the detailed review. This never
// fails: a model that ignores the format instructions still yields a usable
// review.
func ParseReview(raw, date string) CheckupReview {
	review := CheckupReview{
		Date:           date,
		Summary:        defaultSummary,
		DetailedReview: raw,
		Highlights:     []string{},
		Suggestions:    []string{},
		Mood:           MoodGood,
		Score:          defaultScore,
	}

	obj, ok := extractJSONObject(raw)
	if !ok {
		return review
	}

	var payload reviewPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return review
	}

	if s := strings.TrimSpace(payload.Summary); s != "" {
		review.Summary = s
	}
	if s := strings.TrimSpace(payload.DetailedReview); s != "" {
		review.DetailedReview = s
	}
	if payload.Highlights != nil {
		review.Highlights = payload.Highlights
	}
	if payload.Suggestions != nil {
		review.Suggestions = payload.Suggestions
	}
	if m := Mood(payload.Mood); m.valid() {
		review.Mood = m
	}
	if payload.Score != nil && *payload.Score >= 0 && *payload.Score <= 100 {
		review.Score = *payload.Score
	}

	return review
}
