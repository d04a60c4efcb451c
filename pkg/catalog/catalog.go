// Package catalog persists named permutation groups so computed results can
// be referred to by name instead of re-entering generator lists.
//
// Entries record the defining data (degree and generators in cycle notation)
// plus the computed order and its verification status. Stores are pluggable:
// an in-memory store for the CLI and tests, and a MongoDB store for server
// deployments.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/perm"
)

// Entry is a stored group definition together with its computed invariants.
type Entry struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Degree     int       `json:"degree" bson:"degree"`
	Generators []string  `json:"generators" bson:"generators"`
	Order      string    `json:"order,omitempty" bson:"order,omitempty"`
	Verified   bool      `json:"verified" bson:"verified"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists catalog entries. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put inserts or replaces an entry by ID.
	Put(ctx context.Context, e Entry) error

	// Get retrieves an entry by ID, failing with NOT_FOUND if absent.
	Get(ctx context.Context, id string) (Entry, error)

	// GetByName retrieves an entry by its unique name, failing with
	// NOT_FOUND if absent.
	GetByName(ctx context.Context, name string) (Entry, error)

	// List returns all entries ordered by name.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes an entry by ID, failing with NOT_FOUND if absent.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close(ctx context.Context) error
}

// NewEntry builds a catalog entry from a group, computing its order. The
// name is validated; generator lists are recorded in cycle notation.
func NewEntry(name string, g *group.Group) (Entry, error) {
	if err := errors.ValidateGroupName(name); err != nil {
		return Entry{}, err
	}

	order, err := g.Order()
	if err != nil && !errors.Is(err, errors.ErrCodeUnverifiedGroup) {
		return Entry{}, err
	}

	gens := g.Generators()
	notations := make([]string, len(gens))
	for i, p := range gens {
		notations[i] = perm.FormatCycles(p)
	}

	now := time.Now().UTC()
	return Entry{
		ID:         uuid.NewString(),
		Name:       name,
		Degree:     g.Degree(),
		Generators: notations,
		Order:      order.String(),
		Verified:   g.Verified(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Group reconstructs the permutation group defined by the entry.
func (e Entry) Group(opts ...group.Option) (*group.Group, error) {
	if len(e.Generators) == 0 {
		return group.Trivial(e.Degree, opts...), nil
	}
	gens := make([]perm.Permutation, len(e.Generators))
	for i, notation := range e.Generators {
		p, err := perm.ParseCycles(notation, e.Degree)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
				"entry %s: generator %d", e.ID, i)
		}
		gens[i] = p
	}
	return group.New(gens, opts...)
}
