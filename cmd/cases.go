package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/detective/internal/cases"
	"github.com/spf13/cobra"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the analysis and bias cases in the case bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := cases.Load()
		if err != nil {
			return fmt.Errorf("load case bank: %w", err)
		}

		families := cases.AllFamilies()
		if fam, _ := cmd.Flags().GetString("family"); fam != "" {
			f, err := parseFamily(fam)
			if err != nil {
				return err
			}
			families = []cases.Family{f}
		}
		diff, err := difficultyFlag(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-28s %-9s %-15s %-6s %s\n", "ID", "LEVEL", "FAMILY", "PTS", "TITLE")
		fmt.Println(strings.Repeat("─", 96))
		var n int
		for _, f := range families {
			for _, c := range repo.Filter(f, diff) {
				h := c.Info()
				fmt.Printf("%-28s %-9s %-15s %-6d %s\n",
					h.ID, h.Difficulty, f.DisplayName(), c.Reward(), h.Title)
				n++
			}
		}
		fmt.Printf("\n%d cases\n", n)
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the decision scenarios in the case bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := cases.Load()
		if err != nil {
			return fmt.Errorf("load case bank: %w", err)
		}
		diff, err := difficultyFlag(cmd)
		if err != nil {
			return err
		}

		list := repo.ScenariosByDifficulty(diff)
		fmt.Printf("%-28s %-9s %-6s %s\n", "ID", "LEVEL", "STEPS", "TITLE")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range list {
			fmt.Printf("%-28s %-9s %-6d %s\n", s.ID, s.Difficulty, len(s.Steps), s.Title)
		}
		fmt.Printf("\n%d scenarios\n", len(list))
		return nil
	},
}

func init() {
	casesCmd.Flags().String("family", "", "Filter by family (analysis, bias)")
	casesCmd.Flags().String("difficulty", "", "Filter by difficulty (novice, analyst, expert)")
	scenariosCmd.Flags().String("difficulty", "", "Filter by difficulty (novice, analyst, expert)")
}

// difficultyFlag returns the --difficulty filter, or nil when unset.
func difficultyFlag(cmd *cobra.Command) (*cases.Difficulty, error) {
	val, _ := cmd.Flags().GetString("difficulty")
	if val == "" {
		return nil, nil
	}
	d, err := cases.ParseDifficulty(val)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseFamily(val string) (cases.Family, error) {
	for _, f := range cases.AllFamilies() {
		if strings.EqualFold(val, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown family %q (want analysis or bias)", val)
}
