package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/schreier/pkg/catalog"
	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/group"
	"github.com/matzehuels/schreier/pkg/groupio"
	"github.com/matzehuels/schreier/pkg/perm"
)

// groupRequest is the common request body: a group document plus optional
// construction parameters.
type groupRequest struct {
	Degree     int      `json:"degree"`
	Generators []string `json:"generators"`
	Strategy   string   `json:"strategy,omitempty"`
}

// toGroup validates and builds the group a request describes.
func (req groupRequest) toGroup() (*group.Group, error) {
	var opts []group.Option
	switch req.Strategy {
	case "", string(group.StrategyDeterministic):
	case string(group.StrategyRandom):
		opts = append(opts, group.WithStrategy(group.StrategyRandom))
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown strategy %q (want deterministic or random)", req.Strategy)
	}
	doc := groupio.Document{
		Version:    groupio.CurrentVersion,
		Degree:     req.Degree,
		Generators: req.Generators,
	}
	return doc.ToGroup(opts...)
}

type orderResponse struct {
	Order    string `json:"order"`
	Verified bool   `json:"verified"`
	Base     []int  `json:"base"`
	Levels   int    `json:"levels"`
	Cached   bool   `json:"cached"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := req.toGroup()
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	key := s.keyer.OrderKey(g.Degree(), req.Generators)
	useCache := req.Strategy == "" || req.Strategy == string(group.StrategyDeterministic)

	if useCache {
		if data, hit, cerr := s.cache.Get(ctx, key); cerr == nil && hit {
			var resp orderResponse
			if json.Unmarshal(data, &resp) == nil {
				resp.Cached = true
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	doc, err := groupio.Summarize(g)
	if err != nil && !errors.Is(err, errors.ErrCodeUnverifiedGroup) {
		writeError(w, err)
		return
	}

	resp := orderResponse{
		Order:    doc.Order,
		Verified: doc.Verified,
		Base:     doc.Base,
		Levels:   len(doc.Levels),
	}
	if useCache && doc.Verified {
		if data, merr := json.Marshal(resp); merr == nil {
			if serr := s.cache.Set(ctx, key, data, 0); serr != nil {
				s.logger.Debug("cache write failed", "err", serr)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type membershipRequest struct {
	groupRequest
	Element string `json:"element"`
}

type membershipResponse struct {
	Member   bool   `json:"member"`
	Element  string `json:"element"`
	Verified bool   `json:"verified"`
}

func (s *Server) handleMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := req.toGroup()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := errors.ValidateNotation(req.Element); err != nil {
		writeError(w, err)
		return
	}
	element, err := perm.ParseCycles(req.Element, g.Degree())
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := g.Contains(element)
	if err != nil && !errors.Is(err, errors.ErrCodeUnverifiedGroup) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse{
		Member:   member,
		Element:  perm.FormatCycles(element),
		Verified: g.Verified(),
	})
}

type orbitRequest struct {
	groupRequest
	Point int `json:"point"`
}

type orbitResponse struct {
	Point int   `json:"point"`
	Orbit []int `json:"orbit"`
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	var req orbitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := req.toGroup()
	if err != nil {
		writeError(w, err)
		return
	}

	orbit, err := g.Orbit(req.Point)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orbitResponse{Point: req.Point, Orbit: orbit})
}

type groupSaveRequest struct {
	groupRequest
	Name string `json:"name"`
}

func (s *Server) handleGroupSave(w http.ResponseWriter, r *http.Request) {
	var req groupSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	g, err := req.toGroup()
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	if _, err := s.catalog.GetByName(ctx, req.Name); err == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"a group named %q already exists", req.Name))
		return
	}

	entry, err := catalog.NewEntry(req.Name, g)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.Put(ctx, entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGroupList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGroupGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.catalog.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleGroupDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry, err := s.catalog.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.Delete(ctx, entry.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
