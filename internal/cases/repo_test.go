package cases

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Load()
	require.NoError(t, err)
	return r
}

func TestLoad_EmbeddedBankIsValid(t *testing.T) {
	r := loadRepo(t)
	analysis, bias, scenarios := r.Counts()
	assert.Positive(t, analysis)
	assert.Positive(t, bias)
	assert.Positive(t, scenarios)
}

func TestLoad_CorrectIndexInRange(t *testing.T) {
	r := loadRepo(t)
	for _, c := range r.ListCases(FamilyAnalysis) {
		ac := c.(AnalysisCase)
		if ac.CorrectIndex < 0 || ac.CorrectIndex >= len(ac.Options) {
			t.Errorf("case %q: correct index %d out of range", ac.ID, ac.CorrectIndex)
		}
	}
	for _, s := range r.ListScenarios() {
		for i, st := range s.Steps {
			if st.CorrectIndex < 0 || st.CorrectIndex >= len(st.Options) {
				t.Errorf("scenario %q step %d: correct index out of range", s.ID, i)
			}
			if len(st.Feedback) != len(st.Options) {
				t.Errorf("scenario %q step %d: feedback does not cover every option", s.ID, i)
			}
		}
	}
}

func TestLoad_CaseIDsUniqueAcrossFamilies(t *testing.T) {
	r := loadRepo(t)
	seen := map[string]bool{}
	for _, f := range AllFamilies() {
		for _, c := range r.ListCases(f) {
			id := c.Info().ID
			if seen[id] {
				t.Errorf("duplicate case id %q", id)
			}
			seen[id] = true
		}
	}
}

func TestCase_MarketingConversion(t *testing.T) {
	r := loadRepo(t)
	c, err := r.Case("marketing_conversion_1")
	require.NoError(t, err)

	ac, ok := c.(AnalysisCase)
	require.True(t, ok, "expected AnalysisCase, got %T", c)
	assert.Equal(t, 0, ac.CorrectIndex)
	assert.Equal(t, 10, ac.Points)
	assert.Equal(t, Novice, ac.Difficulty)
	assert.True(t, ac.IsCorrect(0))
}

func TestCase_Unknown(t *testing.T) {
	r := loadRepo(t)
	_, err := r.Case("no_such_case")
	assert.ErrorIs(t, err, ErrUnknownCase)

	_, err = r.Scenario("no_such_scenario")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestScenarioNamespaceIsSeparate(t *testing.T) {
	r := loadRepo(t)
	s := r.ListScenarios()[0]
	_, err := r.Case(s.ID)
	assert.ErrorIs(t, err, ErrUnknownCase)
}

func TestBiasCase_FlatReward(t *testing.T) {
	r := loadRepo(t)
	for _, c := range r.ListCases(FamilyBias) {
		assert.Equal(t, BiasPoints, c.Reward())
		assert.Equal(t, FamilyBias, c.Family())
	}
}

func TestFilter(t *testing.T) {
	r := loadRepo(t)
	for _, d := range AllDifficulties() {
		for _, c := range r.Filter(FamilyAnalysis, &d) {
			if c.Info().Difficulty != d {
				t.Errorf("Filter(%s) returned %q at %s", d, c.Info().ID, c.Info().Difficulty)
			}
		}
	}
	assert.Len(t, r.Filter(FamilyAnalysis, nil), len(r.ListCases(FamilyAnalysis)))
}

func TestFilter_EmptyIsNotNil(t *testing.T) {
	r, err := New(Bank{})
	require.NoError(t, err)

	d := Expert
	got := r.Filter(FamilyBias, &d)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NotNil(t, r.ScenariosByDifficulty(&d))
	assert.Empty(t, r.Filter("unknown", nil))
}

func TestAccessorsReturnCopies(t *testing.T) {
	r := loadRepo(t)
	c := r.ListCases(FamilyAnalysis)[0].(AnalysisCase)
	orig := c.Options[0]
	c.Options[0] = "tampered"

	again := r.ListCases(FamilyAnalysis)[0].(AnalysisCase)
	assert.Equal(t, orig, again.Options[0])

	s := r.ListScenarios()[0]
	fb := s.Steps[0].Feedback[0]
	s.Steps[0].Feedback[0] = "tampered"
	s2, err := r.Scenario(s.ID)
	require.NoError(t, err)
	assert.Equal(t, fb, s2.Steps[0].Feedback[0])
}

func TestRandom(t *testing.T) {
	r := loadRepo(t)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		c, ok := r.Random(rng, FamilyBias)
		require.True(t, ok)
		assert.Equal(t, FamilyBias, c.Family())
	}
	_, ok := r.Random(rng, "")
	assert.True(t, ok)

	empty, err := New(Bank{})
	require.NoError(t, err)
	_, ok = empty.Random(rng, "")
	assert.False(t, ok)
}

func TestFindByTitle(t *testing.T) {
	r := loadRepo(t)
	novice := Novice
	list := r.Filter(FamilyAnalysis, &novice)

	c, err := FindByTitle(list, "The Miracle Landing Page")
	require.NoError(t, err)
	assert.Equal(t, "marketing_conversion_1", c.Info().ID)

	_, err = FindByTitle(list, "The Miracle Landing Pag")
	require.ErrorIs(t, err, ErrTitleNotFound)
	var tnf *TitleNotFoundError
	require.True(t, errors.As(err, &tnf))
	assert.Contains(t, tnf.Suggestions, "The Miracle Landing Page")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestFindByTitle_OnlySearchesFilteredList(t *testing.T) {
	r := loadRepo(t)
	expert := Expert
	_, err := FindByTitle(r.Filter(FamilyAnalysis, &expert), "The Miracle Landing Page")
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestFindByTitle_Scenarios(t *testing.T) {
	r := loadRepo(t)
	s, err := FindByTitle(r.ListScenarios(), "The Churn Spike")
	require.NoError(t, err)
	assert.Equal(t, "scenario_churn_spike", s.ID)
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing families", `{"analysis": []}`},
		{"unknown difficulty", `{"analysis": [{"id": "a", "difficulty": "guru", "title": "t", "description": "d",
			"options": ["x", "y"], "correct_index": 0, "explanation": "e", "points": 1}], "bias": [], "scenarios": []}`},
		{"negative points", `{"analysis": [{"id": "a", "difficulty": "novice", "title": "t", "description": "d",
			"options": ["x", "y"], "correct_index": 0, "explanation": "e", "points": -1}], "bias": [], "scenarios": []}`},
		{"unknown field", `{"analysis": [], "bias": [], "scenarios": [], "extra": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse_Minimal(t *testing.T) {
	raw := `{
		"analysis": [{"id": "a_1", "difficulty": "analyst", "title": "T", "description": "D",
			"options": ["x", "y"], "correct_index": 1, "explanation": "E", "points": 5}],
		"bias": [],
		"scenarios": []
	}`
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	c, err := r.Case("a_1")
	require.NoError(t, err)
	assert.Equal(t, Analyst, c.Info().Difficulty)
	assert.Equal(t, 5, c.Reward())
}

func TestDifficulty(t *testing.T) {
	for _, d := range AllDifficulties() {
		got, err := ParseDifficulty(strings.ToUpper(d.String()))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDifficulty("guru")
	assert.Error(t, err)
	assert.Equal(t, "★★☆", Analyst.Stars())
}
