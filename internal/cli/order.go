package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/cache"
	"github.com/matzehuels/schreier/pkg/errors"
)

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var flags groupFlags
	var noCache bool

	cmd := &cobra.Command{
		Use:   "order [generators...]",
		Short: "Compute the exact order of a permutation group",
		Long: `Compute the exact number of elements of the group generated by the given
permutations, using a stabilizer chain. The order is exact at any size;
results are cached by generator list.`,
		Example: `  # Order of S5 from two generators
  schreier order "(0 1)" "(0 1 2 3 4)"

  # From a JSON group document
  schreier order -f group.json

  # Monte-Carlo construction for large generator sets
  schreier order --strategy random "(0 1)" "(0 1 2 3 4)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args)
			if err != nil {
				return err
			}

			store, err := c.newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			key := cache.NewDefaultKeyer().OrderKey(g.Degree(), generatorNotations(g))

			if data, hit, gerr := store.Get(ctx, key); gerr == nil && hit {
				printSuccess("Order: %s", StyleHighlight.Render(string(data)))
				printGroupStats(g.Degree(), len(g.Generators()), 0, true)
				return nil
			}

			spinner := newSpinnerWithContext(ctx, "building stabilizer chain")
			spinner.Start()
			prog := newProgress(c.Logger)
			order, err := g.Order()
			spinner.Stop()
			if order == nil {
				return err
			}
			prog.done("Built stabilizer chain")

			if errors.Is(err, errors.ErrCodeUnverifiedGroup) {
				printWarning("Chain not verified: the order is a probable lower bound")
			} else if err != nil {
				return err
			} else if g.Verified() {
				// Only provably correct answers enter the cache.
				if serr := store.Set(ctx, key, []byte(order.String()), 0); serr != nil {
					c.Logger.Debug("cache write failed", "err", serr)
				}
			}

			levels, _ := g.Levels()
			printSuccess("Order: %s", StyleHighlight.Render(order.String()))
			printGroupStats(g.Degree(), len(g.Generators()), len(levels), false)
			if base, berr := g.Base(); berr == nil && len(base) > 0 {
				printDetail("base: %v", base)
			}
			printNextStep("Inspect the chain", fmt.Sprintf("%s levels %s", appName, quoteArgs(args)))
			return nil
		},
	}

	c.addGroupFlags(cmd, &flags)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")
	return cmd
}

// quoteArgs re-quotes generator arguments for display in next-step hints.
func quoteArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%q", a)
	}
	return out
}
