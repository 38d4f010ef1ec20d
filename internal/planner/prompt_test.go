package planner

import (
	"alcyxob/swimcoach/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validParams() PlanParams {
	return PlanParams{
		Level:       domain.LevelIntermediate,
		Goals:       []string{"Endurance", "Technique"},
		DaysPerWeek: 4,
		Duration:    45,
	}
}

func TestBuildPrompt_EmbedsAllFields(t *testing.T) {
	prompt := BuildPrompt(validParams())

	assert.Contains(t, prompt, "Intermediate level swimmer")
	assert.Contains(t, prompt, "Goals: Endurance, Technique")
	assert.Contains(t, prompt, "Training days per week: 4")
	assert.Contains(t, prompt, "Session duration: 45 minutes")
	for _, label := range []string{"Exercise Name:", "Sets:", "Reps:", "Notes:"} {
		assert.Contains(t, prompt, label)
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt(validParams()), BuildPrompt(validParams()))
}

func TestBuildPrompt_GoalsAreASet(t *testing.T) {
	p := validParams()
	p.Goals = []string{"Speed", " speed ", "Endurance", ""}

	assert.Contains(t, BuildPrompt(p), "Goals: Speed, Endurance\n")
}

func TestPlanParamsValidate(t *testing.T) {
	assert.NoError(t, validParams().Validate())

	tests := map[string]func(*PlanParams){
		"missing level":    func(p *PlanParams) { p.Level = "" },
		"no goals":         func(p *PlanParams) { p.Goals = nil },
		"blank goals only": func(p *PlanParams) { p.Goals = []string{" ", ""} },
		"zero days":        func(p *PlanParams) { p.DaysPerWeek = 0 },
		"zero duration":    func(p *PlanParams) { p.Duration = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrMissingParams)
		})
	}
}

func TestNormalizeGoals(t *testing.T) {
	assert.Equal(t, []string{"Speed", "endurance"}, NormalizeGoals([]string{" Speed", "endurance", "SPEED"}))
	assert.Empty(t, NormalizeGoals(nil))
}
