package planner

import (
	"alcyxob/swimcoach/internal/domain"
	"regexp"
	"strconv"
	"strings"
)

// FallbackNotesLimit is how much of an unparseable reply is kept in the Main Set notes.
const FallbackNotesLimit = 200

var (
	blankLines    = regexp.MustCompile(`\n[ \t]*\n`)
	leadingDigits = regexp.MustCompile(`^\d+`)
)

type field int

const (
	fieldNone field = iota
	fieldName
	fieldSets
	fieldReps
	fieldNotes
)

var prefixes = []struct {
	prefix string
	field  field
}{
	{"exercise name:", fieldName},
	{"sets:", fieldSets},
	{"reps:", fieldReps},
	{"notes:", fieldNotes},
}

// ParseExercises extracts exercises from a provider reply. Blocks are separated by
// blank lines and only blocks with an "Exercise Name:" line count. When nothing
// parses, a fixed warm-up / main set / cool-down sequence is returned so the
// result is never empty.
func ParseExercises(text string) []domain.Exercise {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var exercises []domain.Exercise
	for _, block := range blankLines.Split(normalized, -1) {
		if ex, ok := parseBlock(block); ok {
			exercises = append(exercises, ex)
		}
	}
	if len(exercises) == 0 {
		return fallbackExercises(text)
	}
	return exercises
}

func parseBlock(block string) (domain.Exercise, bool) {
	ex := domain.Exercise{Sets: 1, Reps: 1}
	found := false
	for _, line := range strings.Split(block, "\n") {
		f, value := parseLine(line)
		switch f {
		case fieldName:
			if value != "" {
				ex.Name = value
				found = true
			}
		case fieldSets:
			ex.Sets = positiveOrOne(value)
		case fieldReps:
			ex.Reps = positiveOrOne(value)
		case fieldNotes:
			ex.Notes = value
		}
	}
	return ex, found
}

// parseLine matches a known prefix case-insensitively and returns everything
// after the first colon, so values may themselves contain colons.
func parseLine(line string) (field, string) {
	// Models like to wrap labels in markdown: "- **Sets:** 4"
	trimmed := strings.TrimLeft(strings.TrimSpace(line), "-*• ")
	lower := strings.ToLower(trimmed)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			_, value, _ := strings.Cut(trimmed, ":")
			// Only the closing bold marker of the label is dropped, as in "**Notes:** text"
			value = strings.TrimPrefix(strings.TrimSpace(value), "**")
			return p.field, strings.TrimSpace(value)
		}
	}
	return fieldNone, ""
}

func positiveOrOne(value string) int {
	n, err := strconv.Atoi(leadingDigits.FindString(value))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func fallbackExercises(raw string) []domain.Exercise {
	return []domain.Exercise{
		{Name: "Warm-up", Sets: 1, Reps: 1, Notes: "Easy swimming to warm up"},
		{Name: "Main Set", Sets: 3, Reps: 1, Notes: truncate(raw, FallbackNotesLimit)},
		{Name: "Cool-down", Sets: 1, Reps: 1, Notes: "Easy swimming to cool down"},
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
