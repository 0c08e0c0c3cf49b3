package cases

import (
	"fmt"
	"strings"
)

// validateBank performs all structural checks on a decoded bank.
// Returns a combined error describing all problems found, or nil if valid.
func validateBank(b Bank) error {
	var errs []string

	// Analysis and bias cases share one ID namespace.
	caseIDs := make(map[string]bool, len(b.Analysis)+len(b.Bias))
	checkID := func(kind, id string) {
		if id == "" {
			errs = append(errs, fmt.Sprintf("%s case with empty ID", kind))
			return
		}
		if caseIDs[id] {
			errs = append(errs, fmt.Sprintf("duplicate case ID: %q", id))
		}
		caseIDs[id] = true
	}

	for _, c := range b.Analysis {
		checkID("analysis", c.ID)
		if len(c.Options) < 2 {
			errs = append(errs, fmt.Sprintf("case %q: needs at least 2 options, got %d", c.ID, len(c.Options)))
		}
		if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Options) {
			errs = append(errs, fmt.Sprintf("case %q: correct index %d out of range [0, %d)", c.ID, c.CorrectIndex, len(c.Options)))
		}
		if c.Points < 0 {
			errs = append(errs, fmt.Sprintf("case %q: points must be >= 0, got %d", c.ID, c.Points))
		}
	}

	for _, c := range b.Bias {
		checkID("bias", c.ID)
		if len(c.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("bias case %q has no questions", c.ID))
		}
		if strings.TrimSpace(c.Revelation) == "" {
			errs = append(errs, fmt.Sprintf("bias case %q has no revelation", c.ID))
		}
	}

	scenarioIDs := make(map[string]bool, len(b.Scenarios))
	for _, s := range b.Scenarios {
		if scenarioIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario ID: %q", s.ID))
		}
		scenarioIDs[s.ID] = true

		if len(s.Steps) == 0 {
			errs = append(errs, fmt.Sprintf("scenario %q has no steps", s.ID))
		}
		for i, st := range s.Steps {
			prefix := fmt.Sprintf("scenario %q step %d", s.ID, i)
			if len(st.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(st.Options)))
			}
			if st.CorrectIndex < 0 || st.CorrectIndex >= len(st.Options) {
				errs = append(errs, fmt.Sprintf("%s: correct index %d out of range [0, %d)", prefix, st.CorrectIndex, len(st.Options)))
			}
			if len(st.Feedback) != len(st.Options) {
				errs = append(errs, fmt.Sprintf("%s: feedback covers %d of %d options", prefix, len(st.Feedback), len(st.Options)))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("case bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
