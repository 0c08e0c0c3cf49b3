package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/detective/internal/cases"
	"github.com/abhisek/detective/internal/game"
	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/scenario"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Work one case or scenario in plain line mode (no history)",
	Long: `Work a single case or decision scenario without the full-screen board.

Nothing is written to the history database. Useful for a quick case in a
plain terminal or for checking how a case reads.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().String("case", "", "Case ID or exact title")
	solveCmd.Flags().String("scenario", "", "Scenario ID or exact title")
	solveCmd.MarkFlagsMutuallyExclusive("case", "scenario")
	solveCmd.MarkFlagsOneRequired("case", "scenario")
}

func runSolve(cmd *cobra.Command, args []string) error {
	repo, err := cases.Load()
	if err != nil {
		return fmt.Errorf("load case bank: %w", err)
	}
	rec := progress.NewRecord(time.Now())
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if val, _ := cmd.Flags().GetString("scenario"); val != "" {
		sc, err := resolveScenario(repo, val)
		if err != nil {
			return err
		}
		return solveScenario(in, out, rec, sc)
	}

	val, _ := cmd.Flags().GetString("case")
	c, err := resolveCase(repo, val)
	if err != nil {
		return err
	}
	switch c := c.(type) {
	case cases.AnalysisCase:
		return solveAnalysis(in, out, rec, c)
	case cases.BiasCase:
		return solveBias(in, out, rec, c)
	}
	return fmt.Errorf("unsupported case %q", c.Info().ID)
}

// resolveCase finds a case by ID first, then by exact title.
func resolveCase(repo *cases.Repository, val string) (cases.Case, error) {
	if c, err := repo.Case(val); err == nil {
		return c, nil
	}
	var all []cases.Case
	for _, f := range cases.AllFamilies() {
		all = append(all, repo.ListCases(f)...)
	}
	return cases.FindByTitle(all, val)
}

// resolveScenario finds a scenario by ID first, then by exact title.
func resolveScenario(repo *cases.Repository, val string) (cases.Scenario, error) {
	if s, err := repo.Scenario(val); err == nil {
		return s, nil
	}
	return cases.FindByTitle(repo.ListScenarios(), val)
}

func printHeader(out io.Writer, h cases.Header) {
	fmt.Fprintf(out, "%s  [%s %s]\n", h.Title, h.Difficulty.DisplayName(), h.Difficulty.Stars())
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintln(out, h.Description)
	fmt.Fprintln(out)
}

func printOptions(out io.Writer, options []string) {
	for i, o := range options {
		fmt.Fprintf(out, "  %c) %s\n", 'A'+i, o)
	}
}

// askChoice prompts until a valid option is entered. io.EOF means input closed.
func askChoice(in *bufio.Scanner, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !in.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return 0, io.EOF
		}
		k, err := parseChoice(in.Text(), n)
		if err == nil {
			return k, nil
		}
		fmt.Fprintln(out, err)
	}
}

// parseChoice accepts an option letter (A, b, ...) or a 1-based number.
func parseChoice(s string, n int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("enter an option letter or number")
	}
	if len(s) == 1 {
		ch := s[0] | 0x20
		if ch >= 'a' && ch <= 'z' {
			if k := int(ch - 'a'); k < n {
				return k, nil
			}
			return 0, fmt.Errorf("pick A-%c", 'A'+n-1)
		}
	}
	k, err := strconv.Atoi(s)
	if err != nil || k < 1 || k > n {
		return 0, fmt.Errorf("pick A-%c or 1-%d", 'A'+n-1, n)
	}
	return k - 1, nil
}

func printGain(out io.Writer, g game.Gain, repeat bool) {
	switch {
	case repeat:
		fmt.Fprintln(out, "Already solved, no points this time.")
	case g.PointsAwarded > 0:
		fmt.Fprintf(out, "+%d points\n", g.PointsAwarded)
	}
	if g.LevelUp != nil {
		fmt.Fprintf(out, "Level up! %d → %d\n", g.LevelUp.From, g.LevelUp.To)
	}
	for _, a := range g.NewAchievements {
		fmt.Fprintf(out, "Achievement unlocked: %s %s\n", a.Icon(), a.DisplayName())
	}
}

func solveAnalysis(in *bufio.Scanner, out io.Writer, rec *progress.Record, c cases.AnalysisCase) error {
	printHeader(out, c.Header)
	printOptions(out, c.Options)

	for {
		k, err := askChoice(in, out, len(c.Options))
		if errors.Is(err, io.EOF) {
			return nil
		}
		res, err := game.CheckAnswer(rec, c, k)
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
			printGain(out, res.Gain, res.Repeat)
			fmt.Fprintf(out, "Explanation: %s\n", res.Explanation)
			return nil
		}
		fmt.Fprintln(out, "\033[31m✗ Wrong.\033[0m")
		fmt.Fprintln(out, res.Hint)
	}
}

func solveBias(in *bufio.Scanner, out io.Writer, rec *progress.Record, c cases.BiasCase) error {
	printHeader(out, c.Header)

	for i, q := range c.Questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", i+1, len(c.Questions), q)
		fmt.Fprint(out, "Your notes (? for a hint): ")
		shown := 0
		for in.Scan() {
			if strings.TrimSpace(in.Text()) != "?" {
				break
			}
			hint, ok := game.NextHint(c, shown)
			if !ok {
				fmt.Fprint(out, "No more hints. Your notes: ")
				continue
			}
			shown++
			fmt.Fprintf(out, "Hint: %s\nYour notes: ", hint)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Revelation: %s\n", game.RevealBias(c))
	fmt.Fprint(out, "\nDo you see the bias now? [y/N] ")
	understood := in.Scan() && strings.EqualFold(strings.TrimSpace(in.Text()), "y")
	res, err := game.CompleteBias(rec, c, understood)
	if err != nil {
		return err
	}
	if !res.Understood {
		fmt.Fprintln(out, "Case left open. Come back to it once it clicks.")
		return nil
	}
	printGain(out, res.Gain, res.Repeat)
	return nil
}

func solveScenario(in *bufio.Scanner, out io.Writer, rec *progress.Record, sc cases.Scenario) error {
	printHeader(out, sc.Header)
	run := scenario.NewRun(sc)

	for run.State() == scenario.InProgress {
		step := sc.Steps[run.CurrentStep()]
		fmt.Fprintf(out, "── Step %d/%d ──\n%s\n", run.CurrentStep()+1, run.TotalSteps(), step.Prompt)
		printOptions(out, step.Options)

		k, err := askChoice(in, out, len(step.Options))
		if errors.Is(err, io.EOF) {
			return nil
		}
		res, err := game.AdvanceScenario(rec, run, sc, k)
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "\033[32m✓ Good call.\033[0m")
		} else {
			fmt.Fprintln(out, "\033[31m✗ Risky call.\033[0m")
		}
		fmt.Fprintln(out, res.Feedback)
		printGain(out, res.Gain, false)
		fmt.Fprintln(out)

		if res.Summary != nil {
			sum := res.Summary
			fmt.Fprintf(out, "── Debrief: %s %s ──\n", sum.Outcome.Icon(), sum.Outcome.DisplayName())
			fmt.Fprintf(out, "%d/%d points, %d of %d calls correct\n",
				sum.Score, sum.MaxScore, sum.Correct, len(sum.Steps))
		}
	}
	return nil
}
