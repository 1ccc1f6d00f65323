package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Rrens/workout-planner/internal/domain"
)

var (
	leadingFence  = regexp.MustCompile("^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// ExtractJSON pulls the JSON object out of raw generator output.
//
// The text is trimmed, a leading ```/```json fence and a trailing ``` fence are
// removed, and everything from the first '{' to the last '}' is decoded. Prose
// around the object is tolerated. Two sibling objects in one response are not:
// the span covers both and decoding fails.
func ExtractJSON(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return nil, &domain.ExtractionError{Reason: "no JSON object found"}
	}
	candidate := text[start : end+1]

	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &domain.ExtractionError{Reason: "malformed JSON", Err: err}
	}
	if rest := strings.TrimSpace(candidate[dec.InputOffset():]); rest != "" {
		return nil, &domain.ExtractionError{Reason: "malformed JSON", Err: fmt.Errorf("unexpected data after object at offset %d", dec.InputOffset())}
	}

	return obj, nil
}

// ParseDraft checks a decoded object against the workout plan schema and
// returns the first offending field as a *domain.SchemaError
func ParseDraft(obj map[string]any) (*domain.GenerationDraft, error) {
	title, err := requireString(obj, "title", "title", false)
	if err != nil {
		return nil, err
	}

	dateStr, err := requireString(obj, "date", "date", false)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, &domain.SchemaError{Field: "date", Reason: "not a parseable date"}
	}

	rawExercises, ok := obj["exercises"]
	if !ok || rawExercises == nil {
		return nil, &domain.SchemaError{Field: "exercises", Reason: "missing"}
	}
	list, ok := rawExercises.([]any)
	if !ok {
		return nil, &domain.SchemaError{Field: "exercises", Reason: "must be an array"}
	}
	if len(list) == 0 {
		return nil, &domain.SchemaError{Field: "exercises", Reason: "must contain at least one exercise"}
	}

	exercises := make([]domain.Exercise, 0, len(list))
	for i, item := range list {
		prefix := fmt.Sprintf("exercises[%d]", i)
		ex, ok := item.(map[string]any)
		if !ok {
			return nil, &domain.SchemaError{Field: prefix, Reason: "must be an object"}
		}

		name, err := requireString(ex, "name", prefix+".name", false)
		if err != nil {
			return nil, err
		}
		description, err := requireString(ex, "description", prefix+".description", true)
		if err != nil {
			return nil, err
		}
		sets, err := requirePositiveInt(ex, "sets", prefix+".sets")
		if err != nil {
			return nil, err
		}
		reps, err := requirePositiveInt(ex, "reps", prefix+".reps")
		if err != nil {
			return nil, err
		}

		exercises = append(exercises, domain.Exercise{
			Name:        name,
			Description: description,
			Sets:        sets,
			Reps:        reps,
		})
	}

	return &domain.GenerationDraft{
		Title:     title,
		Date:      date,
		Exercises: exercises,
	}, nil
}

// requireString returns obj[key] as a trimmed string. With optional set, a
// missing key yields "" and an empty value is allowed.
func requireString(obj map[string]any, key, field string, optional bool) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		if optional {
			return "", nil
		}
		return "", &domain.SchemaError{Field: field, Reason: "missing"}
	}

	s, ok := v.(string)
	if !ok {
		return "", &domain.SchemaError{Field: field, Reason: "must be a string"}
	}

	s = strings.TrimSpace(s)
	if s == "" && !optional {
		return "", &domain.SchemaError{Field: field, Reason: "must not be empty"}
	}
	return s, nil
}

func requirePositiveInt(obj map[string]any, key, field string) (int, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return 0, &domain.SchemaError{Field: field, Reason: "missing"}
	}

	num, ok := v.(json.Number)
	if !ok {
		return 0, &domain.SchemaError{Field: field, Reason: "must be a number"}
	}

	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, &domain.SchemaError{Field: field, Reason: "must be a whole number"}
	}
	if f <= 0 || f > math.MaxInt32 {
		return 0, &domain.SchemaError{Field: field, Reason: "must be a positive integer"}
	}

	return int(f), nil
}
