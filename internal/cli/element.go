package cli

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// elementCommand creates the element command.
func (c *CLI) elementCommand() *cobra.Command {
	var flags groupFlags
	var count int

	cmd := &cobra.Command{
		Use:   "element [generators...]",
		Short: "Sample uniformly random group elements",
		Long: `Sample elements uniformly at random from the group, by choosing a random
transversal element at every stabilizer chain level. The seed flag makes
samples reproducible.`,
		Example: `  # Three random elements of S4
  schreier element -c 3 "(0 1)" "(0 1 2 3)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args)
			if err != nil {
				return err
			}

			seed := flags.seed
			if seed == 0 {
				seed = rand.Int63()
			}
			rng := rand.New(rand.NewSource(seed))

			for i := 0; i < count; i++ {
				e, err := g.RandomElement(rng)
				if errors.Is(err, errors.ErrCodeUnverifiedGroup) {
					if i == 0 {
						printWarning("Chain not verified: sampling may miss elements")
					}
				} else if err != nil {
					return err
				}
				printInfo("%s", StyleValue.Render(perm.FormatCycles(e)))
			}
			printDetail("seed: %d", seed)
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of elements to sample")
	return cmd
}
