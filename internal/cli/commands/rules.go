package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/eggmath/internal/cli/ui"
	"github.com/conduit-lang/eggmath/internal/rules"
)

type ruleJSON struct {
	Name string `json:"name"`
	LHS  string `json:"lhs"`
	RHS  string `json:"rhs"`
}

type groupJSON struct {
	Name      string     `json:"name"`
	Soundness string     `json:"soundness"`
	Selected  bool       `json:"selected"`
	Rules     []ruleJSON `json:"rules"`
}

func newRulesCommand(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules [group...]",
		Short: "List rule groups, or the rules of the named groups",
		Long: `List the rewrite rule groups with their soundness class and size.

Groups marked as selected are the ones 'optimize' uses under the current
configuration. Naming groups prints their rules instead.`,
		Example: `  eggmath rules
  eggmath rules commutativity associativity
  eggmath rules --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := g.setup(ctx, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			corpus := a.opt.Corpus()
			shown := corpus
			if len(args) > 0 {
				if shown, err = corpus.Select(args...); err != nil {
					return err
				}
			}

			selected := make(map[string]bool)
			for _, name := range a.opt.Selected().Names() {
				selected[name] = true
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(groupsJSON(shown, selected))
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				table := ui.NewTable(out, color.NoColor, "Group", "Soundness", "Rules", "Selected")
				for _, grp := range shown.Groups() {
					table.AddRow(grp.Name, string(grp.Soundness), strconv.Itoa(len(grp.Rewrites)), yesNo(selected[grp.Name]))
				}
				table.Render()
				fmt.Fprintf(out, "\n%d groups, %d selected\n", shown.Len(), len(selected))
				return nil
			}

			for i, grp := range shown.Groups() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				ui.Header(out, fmt.Sprintf("%s (%s)", grp.Name, grp.Soundness), color.NoColor)
				table := ui.NewTable(out, color.NoColor, "Rule", "Left", "Right")
				for _, rw := range grp.Rewrites {
					table.AddRow(rw.Name, rw.LHS.String(), rw.RHS.String())
				}
				table.Render()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print groups as JSON")
	return cmd
}

func groupsJSON(c *rules.Corpus, selected map[string]bool) []groupJSON {
	out := make([]groupJSON, 0, c.Len())
	for _, grp := range c.Groups() {
		gj := groupJSON{
			Name:      grp.Name,
			Soundness: string(grp.Soundness),
			Selected:  selected[grp.Name],
			Rules:     make([]ruleJSON, 0, len(grp.Rewrites)),
		}
		for _, rw := range grp.Rewrites {
			gj.Rules = append(gj.Rules, ruleJSON{Name: rw.Name, LHS: rw.LHS.String(), RHS: rw.RHS.String()})
		}
		out = append(out, gj)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
