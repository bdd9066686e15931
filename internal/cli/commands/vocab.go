package commands

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/eggmath/internal/cli/ui"
	"github.com/conduit-lang/eggmath/internal/eval"
	"github.com/conduit-lang/eggmath/internal/term"
)

type vocabJSON struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Foldable bool   `json:"foldable"`
}

func newVocabCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List operators and named constants",
		Long: `List every operator and named constant the parser accepts. Operators
marked as folding are evaluated exactly when all of their operands are
rational constants.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := term.Default()
			if err != nil {
				return err
			}

			entries := make([]vocabJSON, 0, vocab.Len())
			for _, name := range vocab.Names() {
				op, _ := vocab.Lookup(name)
				kind := "operator"
				if op.Kind == term.NamedConstant {
					kind = "constant"
				}
				entries = append(entries, vocabJSON{Name: name, Kind: kind, Foldable: eval.Foldable(op)})
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
			}
			table := ui.NewTable(cmd.OutOrStdout(), color.NoColor, "Name", "Kind", "Folds")
			for _, e := range entries {
				folds := ""
				if e.Foldable {
					folds = "yes"
				}
				table.AddRow(e.Name, e.Kind, folds)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the vocabulary as JSON")
	return cmd
}
