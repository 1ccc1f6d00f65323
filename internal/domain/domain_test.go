package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01", "2024-05-01"},
		{" 2024-05-01 ", "2024-05-01"},
		{"2024-05-01T23:30:00Z", "2024-05-01"},
		{"2024-05-01T23:30:00-05:00", "2024-05-02"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
			assert.Equal(t, time.UTC, d.Location())
			assert.Zero(t, d.Hour())
		})
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "01/05/2024"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(out))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:00:00Z"`), &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`20240501`), &back))
}

func TestValidate_WorkoutInput(t *testing.T) {
	valid := WorkoutInput{
		Title:     "Leg Day",
		Date:      "2024-05-01",
		Exercises: []Exercise{{Name: "Squat", Sets: 3, Reps: 10}},
	}
	assert.NoError(t, Validate(valid))

	err := Validate(WorkoutInput{
		Date:      "not a date",
		Exercises: []Exercise{{Name: "Squat", Sets: 3, Reps: 10}, {Sets: 0, Reps: 5}},
	})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "field is required", validationErr.Fields["title"])
	assert.Equal(t, "invalid date, expected YYYY-MM-DD", validationErr.Fields["date"])
	assert.Contains(t, validationErr.Fields, "exercises[1].name")
	assert.Contains(t, validationErr.Fields, "exercises[1].sets")
	assert.NotContains(t, validationErr.Fields, "exercises[0].name")

	err = Validate(WorkoutInput{Title: "t", Date: "2024-05-01", Exercises: []Exercise{}})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "must contain at least 1 item(s)", validationErr.Fields["exercises"])
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "field is required", "date": "invalid"}}
	assert.Equal(t, "validation failed: date: invalid, title: field is required", err.Error())
}

func TestGenerationDraft_Input(t *testing.T) {
	d, _ := ParseDate("2024-05-01")
	draft := &GenerationDraft{Title: "Leg Day", Date: d, Exercises: []Exercise{{Name: "Squat", Sets: 3, Reps: 10}}}

	input := draft.Input()
	assert.Equal(t, "2024-05-01", input.Date)
	assert.NoError(t, Validate(input))
}
