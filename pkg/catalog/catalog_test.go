package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/perm"
)

func testGroup(t *testing.T) *group.Group {
	t.Helper()
	a, err := perm.ParseCycles("(0 1)", 3)
	require.NoError(t, err)
	b, err := perm.ParseCycles("(1 2)", 3)
	require.NoError(t, err)
	g, err := group.New([]perm.Permutation{a, b})
	require.NoError(t, err)
	return g
}

func TestNewEntry(t *testing.T) {
	e, err := NewEntry("sym3", testGroup(t))
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "sym3", e.Name)
	assert.Equal(t, 3, e.Degree)
	assert.Equal(t, []string{"(0 1)", "(1 2)"}, e.Generators)
	assert.Equal(t, "6", e.Order)
	assert.True(t, e.Verified)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestNewEntry_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "a/b", "has\x00control"} {
		_, err := NewEntry(name, testGroup(t))
		assert.Error(t, err, "name %q", name)
	}
}

func TestEntry_GroupRoundTrip(t *testing.T) {
	e, err := NewEntry("sym3", testGroup(t))
	require.NoError(t, err)

	g, err := e.Group()
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, "6", order.String())
}

func TestEntry_GroupTrivial(t *testing.T) {
	e := Entry{ID: "x", Name: "trivial", Degree: 4}
	g, err := e.Group()
	require.NoError(t, err)
	assert.True(t, g.IsTrivial())
	assert.Equal(t, 4, g.Degree())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	e, err := NewEntry("sym3", testGroup(t))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, e))

	got, err := s.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	got, err = s.GetByName(ctx, "sym3")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	_, err = s.GetByName(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestMemoryStore_ListSortsByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		e, err := NewEntry(name, testGroup(t))
		require.NoError(t, err)
		require.NoError(t, s.Put(ctx, e))
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "mid", entries[1].Name)
	assert.Equal(t, "zeta", entries[2].Name)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	e, err := NewEntry("sym3", testGroup(t))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, e))

	require.NoError(t, s.Delete(ctx, e.ID))
	_, err = s.Get(ctx, e.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	err = s.Delete(ctx, e.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
