package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/groupio"
	"github.com/matzehuels/schreier/pkg/perm"
)

// groupFlags holds the flags shared by every command that reads a group:
// generators come either from positional cycle-notation arguments or from a
// JSON group document, and chain construction is tunable.
type groupFlags struct {
	degree   int
	file     string
	strategy string
	seed     int64
	retries  int
}

// addGroupFlags registers the shared group input flags on cmd, with
// defaults taken from the configuration file.
func (c *CLI) addGroupFlags(cmd *cobra.Command, f *groupFlags) {
	cmd.Flags().IntVarP(&f.degree, "degree", "n", 0, "domain size (inferred from generators if omitted)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read the group from a JSON document instead of arguments")
	cmd.Flags().StringVar(&f.strategy, "strategy", c.Config.Build.Strategy, "chain construction strategy (deterministic|random)")
	cmd.Flags().Int64Var(&f.seed, "seed", c.Config.Build.Seed, "seed for the randomized strategy and element sampling")
	cmd.Flags().IntVar(&f.retries, "retries", c.Config.Build.Retries, "random sift attempts before giving up (random strategy)")
}

// buildOptions converts the flags to group options.
func (f *groupFlags) buildOptions() ([]group.Option, error) {
	var opts []group.Option
	switch f.strategy {
	case "", string(group.StrategyDeterministic):
	case string(group.StrategyRandom):
		opts = append(opts, group.WithStrategy(group.StrategyRandom))
	default:
		return nil, fmt.Errorf("unknown strategy %q (want deterministic or random)", f.strategy)
	}
	if f.seed != 0 {
		opts = append(opts, group.WithSeed(f.seed))
	}
	if f.retries > 0 {
		opts = append(opts, group.WithRandomRetries(f.retries))
	}
	return opts, nil
}

// loadGroup builds the group from a JSON document (--file) or from
// positional cycle-notation arguments.
func (c *CLI) loadGroup(ctx context.Context, f *groupFlags, args []string) (*group.Group, error) {
	logger := loggerFromContext(ctx)

	opts, err := f.buildOptions()
	if err != nil {
		return nil, err
	}

	if f.file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("generators given both as arguments and via --file")
		}
		logger.Debug("loading group document", "file", f.file)
		return groupio.ImportJSON(f.file, opts...)
	}
	logger.Debug("parsing generators", "count", len(args), "degree", f.degree)

	gens, err := parseGenerators(args, f.degree)
	if err != nil {
		return nil, err
	}
	return group.New(gens, opts...)
}

// parseGenerators parses cycle-notation arguments into permutations of a
// common degree. When degree is zero it is inferred as the smallest domain
// containing every mentioned point.
func parseGenerators(args []string, degree int) ([]perm.Permutation, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no generators given (pass cycle notation like \"(0 1)\" or use --file)")
	}
	if degree != 0 {
		if err := errors.ValidateDegree(degree); err != nil {
			return nil, err
		}
	}

	// First pass at inferred degree to find the domain size.
	inferred := degree
	if inferred == 0 {
		for _, arg := range args {
			if err := errors.ValidateNotation(arg); err != nil {
				return nil, err
			}
			p, err := perm.ParseCycles(arg, -1)
			if err != nil {
				return nil, fmt.Errorf("generator %q: %w", arg, err)
			}
			if p.Degree() > inferred {
				inferred = p.Degree()
			}
		}
	}

	gens := make([]perm.Permutation, len(args))
	for i, arg := range args {
		if err := errors.ValidateNotation(arg); err != nil {
			return nil, err
		}
		p, err := perm.ParseCycles(arg, inferred)
		if err != nil {
			return nil, fmt.Errorf("generator %q: %w", arg, err)
		}
		gens[i] = p
	}
	return gens, nil
}

// generatorNotations formats a group's generators for cache keys and display.
func generatorNotations(g *group.Group) []string {
	gens := g.Generators()
	notations := make([]string, len(gens))
	for i, p := range gens {
		notations[i] = perm.FormatCycles(p)
	}
	return notations
}
