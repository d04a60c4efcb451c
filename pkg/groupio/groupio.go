package groupio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/perm"
)

// CurrentVersion is the document format version written by this package.
const CurrentVersion = 1

// Document is the canonical serialization format for a permutation group:
// its defining data, not its computed invariants.
type Document struct {
	Version    int      `json:"version" bson:"version"`
	Degree     int      `json:"degree" bson:"degree"`
	Generators []string `json:"generators" bson:"generators"`
}

// LevelDocument describes one stabilizer chain level.
type LevelDocument struct {
	BasePoint  int      `json:"base_point" bson:"base_point"`
	Orbit      []int    `json:"orbit" bson:"orbit"`
	Generators []string `json:"generators" bson:"generators"`
}

// ChainDocument summarizes a built stabilizer chain for display and API
// responses. It is derived data: consumers rebuild chains from a Document
// rather than parsing this.
type ChainDocument struct {
	Degree   int             `json:"degree" bson:"degree"`
	Order    string          `json:"order" bson:"order"`
	Verified bool            `json:"verified" bson:"verified"`
	Base     []int           `json:"base" bson:"base"`
	Levels   []LevelDocument `json:"levels" bson:"levels"`
}

// FromGroup captures a group's defining data.
func FromGroup(g *group.Group) Document {
	gens := g.Generators()
	notations := make([]string, len(gens))
	for i, p := range gens {
		notations[i] = perm.FormatCycles(p)
	}
	return Document{
		Version:    CurrentVersion,
		Degree:     g.Degree(),
		Generators: notations,
	}
}

// ToGroup reconstructs the group a document defines. The degree and every
// generator string are validated before parsing; a document without
// generators yields the trivial group.
func (d Document) ToGroup(opts ...group.Option) (*group.Group, error) {
	if d.Version > CurrentVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"document version %d is newer than supported version %d", d.Version, CurrentVersion)
	}
	if err := errors.ValidateDegree(d.Degree); err != nil {
		return nil, err
	}
	if len(d.Generators) == 0 {
		return group.Trivial(d.Degree, opts...), nil
	}

	gens := make([]perm.Permutation, len(d.Generators))
	for i, notation := range d.Generators {
		if err := errors.ValidateNotation(notation); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "generator %d", i)
		}
		p, err := perm.ParseCycles(notation, d.Degree)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "generator %d", i)
		}
		gens[i] = p
	}
	return group.New(gens, opts...)
}

// Summarize builds the chain document for a group, triggering a chain build
// if none is cached. Under the randomized strategy the summary may carry
// Verified false together with an UNVERIFIED_GROUP error; both are returned.
func Summarize(g *group.Group) (ChainDocument, error) {
	order, err := g.Order()
	if order == nil {
		return ChainDocument{}, err
	}
	base, berr := g.Base()
	if berr != nil && base == nil {
		return ChainDocument{}, berr
	}
	levels, lerr := g.Levels()
	if lerr != nil && levels == nil {
		return ChainDocument{}, lerr
	}

	doc := ChainDocument{
		Degree:   g.Degree(),
		Order:    order.String(),
		Verified: g.Verified(),
		Base:     base,
		Levels:   make([]LevelDocument, len(levels)),
	}
	for i, lv := range levels {
		gens := make([]string, len(lv.Generators))
		for j, p := range lv.Generators {
			gens[j] = perm.FormatCycles(p)
		}
		doc.Levels[i] = LevelDocument{
			BasePoint:  lv.BasePoint,
			Orbit:      lv.Orbit,
			Generators: gens,
		}
	}
	return doc, err
}

// WriteJSON encodes a group document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *group.Group, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGroup(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a group document from r and reconstructs the group.
//
// The input must be a JSON object with a "degree" field and a "generators"
// array of cycle-notation strings:
//
//	{
//	  "version": 1,
//	  "degree": 3,
//	  "generators": ["(0 1)", "(1 2)"]
//	}
//
// ReadJSON returns an error if the JSON is malformed, the degree is out of
// range, a generator fails to parse, or generator degrees disagree. Errors
// carry codes from the errors package; check them with errors.Is.
func ReadJSON(r io.Reader, opts ...group.Option) (*group.Group, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding group document")
	}
	return doc.ToGroup(opts...)
}

// ExportJSON writes a group document to a JSON file at path.
func ExportJSON(g *group.Group, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ImportJSON reads a JSON file at path and reconstructs the group.
func ImportJSON(path string, opts ...group.Option) (*group.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
