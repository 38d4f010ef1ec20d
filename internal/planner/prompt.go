// Package planner turns plan parameters into a provider prompt and the
// provider's reply back into exercises.
package planner

import (
	"alcyxob/swimcoach/internal/domain"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingParams is returned by PlanParams.Validate.
var ErrMissingParams = errors.New("level, goals, daysPerWeek and duration are required")

// PlanParams are the user-supplied inputs for one generated plan.
type PlanParams struct {
	Level       domain.Level
	Goals       []string
	DaysPerWeek int
	Duration    int // Minutes per session
}

// Validate is a presence check only.
func (p PlanParams) Validate() error {
	if strings.TrimSpace(string(p.Level)) == "" || len(NormalizeGoals(p.Goals)) == 0 || p.DaysPerWeek <= 0 || p.Duration <= 0 {
		return ErrMissingParams
	}
	return nil
}

// NormalizeGoals trims goal labels and drops blanks and duplicates, keeping first-seen order.
func NormalizeGoals(goals []string) []string {
	seen := make(map[string]struct{}, len(goals))
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		key := strings.ToLower(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

// BuildPrompt renders the instruction sent to the provider. Same input, same output.
func BuildPrompt(p PlanParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a swimming training plan for a %s level swimmer.\n", p.Level)
	fmt.Fprintf(&b, "Goals: %s\n", strings.Join(NormalizeGoals(p.Goals), ", "))
	fmt.Fprintf(&b, "Training days per week: %d\n", p.DaysPerWeek)
	fmt.Fprintf(&b, "Session duration: %d minutes\n\n", p.Duration)
	b.WriteString("List the exercises for one session in this exact format, with a blank line between exercises:\n\n")
	b.WriteString("Exercise Name: <name>\n")
	b.WriteString("Sets: <number>\n")
	b.WriteString("Reps: <number>\n")
	b.WriteString("Notes: <distance, stroke, rest and technique cues>\n")
	return b.String()
}
