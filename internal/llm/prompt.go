package llm

import "fmt"

// BuildWorkoutPrompt creates the instruction prompt for plan generation.
// The output depends only on its arguments.
func BuildWorkoutPrompt(description, date string) string {
	return fmt.Sprintf(`Generate a single-day workout plan and return it only as valid JSON in exactly this shape:

{
  "title": "<short name of workout>",
  "date": "<YYYY-MM-DD>",
  "exercises": [
    {
      "name": "<exercise name>",
      "description": "<brief description>",
      "sets": <number>,
      "reps": <number>
    }
  ]
}

Rules:
1. Output ONLY the JSON object, no explanations, prose or markdown code fences
2. "sets" and "reps" must be positive whole numbers
3. Include at least one exercise
4. Use the date given below for "date"

WORKOUT NAME: %q
DATE: %q
`, description, date)
}
