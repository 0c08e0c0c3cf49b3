package cases

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
)

//go:embed data/casebank.json
var bankJSON []byte

// Bank is the decoded case bank document.
type Bank struct {
	Analysis  []AnalysisCase `json:"analysis"`
	Bias      []BiasCase     `json:"bias"`
	Scenarios []Scenario     `json:"scenarios"`
}

// Repository is the immutable catalog of cases and scenarios.
// Content is fixed at construction; accessors return copies.
type Repository struct {
	analysis  []AnalysisCase
	bias      []BiasCase
	scenarios []Scenario

	caseByID     map[string]Case
	scenarioByID map[string]int
}

// Load builds a repository from the embedded case bank.
func Load() (*Repository, error) {
	return Parse(bankJSON)
}

// Parse validates raw case bank JSON against the schema, decodes it and
// builds a repository.
func Parse(raw []byte) (*Repository, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var b Bank
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode case bank: %w", err)
	}
	return New(b)
}

// New builds a repository from an already decoded bank.
func New(b Bank) (*Repository, error) {
	if err := validateBank(b); err != nil {
		return nil, err
	}

	r := &Repository{
		analysis:     make([]AnalysisCase, len(b.Analysis)),
		bias:         make([]BiasCase, len(b.Bias)),
		scenarios:    make([]Scenario, len(b.Scenarios)),
		caseByID:     make(map[string]Case, len(b.Analysis)+len(b.Bias)),
		scenarioByID: make(map[string]int, len(b.Scenarios)),
	}
	for i, c := range b.Analysis {
		r.analysis[i] = c.clone()
		r.caseByID[c.ID] = r.analysis[i]
	}
	for i, c := range b.Bias {
		r.bias[i] = c.clone()
		r.caseByID[c.ID] = r.bias[i]
	}
	for i, s := range b.Scenarios {
		r.scenarios[i] = s.clone()
		r.scenarioByID[s.ID] = i
	}
	return r, nil
}

// ListCases returns the cases of a family in catalog order.
func (r *Repository) ListCases(f Family) []Case {
	return r.Filter(f, nil)
}

// Filter returns the cases of a family, restricted to one difficulty when
// d is non-nil. No match yields an empty slice.
func (r *Repository) Filter(f Family, d *Difficulty) []Case {
	out := []Case{}
	match := func(h Header) bool { return d == nil || h.Difficulty == *d }
	switch f {
	case FamilyAnalysis:
		for _, c := range r.analysis {
			if match(c.Header) {
				out = append(out, c.clone())
			}
		}
	case FamilyBias:
		for _, c := range r.bias {
			if match(c.Header) {
				out = append(out, c.clone())
			}
		}
	}
	return out
}

// ListScenarios returns every scenario in catalog order.
func (r *Repository) ListScenarios() []Scenario {
	return r.ScenariosByDifficulty(nil)
}

// ScenariosByDifficulty returns scenarios at difficulty d, or all when d is nil.
func (r *Repository) ScenariosByDifficulty(d *Difficulty) []Scenario {
	out := []Scenario{}
	for _, s := range r.scenarios {
		if d == nil || s.Difficulty == *d {
			out = append(out, s.clone())
		}
	}
	return out
}

// Case looks up an analysis or bias case by ID.
func (r *Repository) Case(id string) (Case, error) {
	c, ok := r.caseByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCase, id)
	}
	switch c := c.(type) {
	case AnalysisCase:
		return c.clone(), nil
	case BiasCase:
		return c.clone(), nil
	}
	return c, nil
}

// Scenario looks up a scenario by ID.
func (r *Repository) Scenario(id string) (Scenario, error) {
	i, ok := r.scenarioByID[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}
	return r.scenarios[i].clone(), nil
}

// Random picks a case uniformly. An empty family picks from both families.
// Returns false if there is nothing to pick from.
func (r *Repository) Random(rng *rand.Rand, f Family) (Case, bool) {
	var pool []Case
	if f == "" {
		for _, fam := range AllFamilies() {
			pool = append(pool, r.ListCases(fam)...)
		}
	} else {
		pool = r.ListCases(f)
	}
	if len(pool) == 0 {
		return nil, false
	}
	return pool[rng.IntN(len(pool))], true
}

// Counts returns the number of analysis cases, bias cases and scenarios.
func (r *Repository) Counts() (analysis, bias, scenarios int) {
	return len(r.analysis), len(r.bias), len(r.scenarios)
}

func (c AnalysisCase) clone() AnalysisCase {
	c.Options = slices.Clone(c.Options)
	return c
}

func (c BiasCase) clone() BiasCase {
	c.Questions = slices.Clone(c.Questions)
	c.Hints = slices.Clone(c.Hints)
	return c
}

func (s Scenario) clone() Scenario {
	steps := make([]Step, len(s.Steps))
	for i, st := range s.Steps {
		st.Options = slices.Clone(st.Options)
		st.Feedback = slices.Clone(st.Feedback)
		steps[i] = st
	}
	s.Steps = steps
	return s
}
