package selection

import "github.com/Sumatoshi-tech/codefolio/pkg/commits"

// State is the caller-owned selection state threaded into every recomputation.
type State struct {
	Selection *Region `json:"selection" yaml:"selection"`
}

// Views are the derived displays for one selection state.
type Views struct {
	Count     CountView     `json:"count" yaml:"count"`
	Breakdown BreakdownView `json:"breakdown" yaml:"breakdown"`
}

// Recompute derives both views from state. It has no side effects.
func Recompute(state State, coll *commits.Collection, m Mapping) Views {
	return Views{
		Count:     Count(state.Selection, coll.Summaries(), m),
		Breakdown: Breakdown(state.Selection, coll, m),
	}
}

// Session binds a collection and mapping to the latest selection. Each
// change replaces the state wholesale, so views never mix two regions.
// A Session is not safe for concurrent use.
type Session struct {
	coll    *commits.Collection
	mapping Mapping
	state   State
	views   Views
}

// NewSession creates a session with no selection and its initial views.
func NewSession(coll *commits.Collection, m Mapping) *Session {
	s := &Session{coll: coll, mapping: m}
	s.views = Recompute(s.state, coll, m)

	return s
}

// OnSelectionChange records region as the current selection (nil clears it)
// and returns the recomputed views.
func (s *Session) OnSelectionChange(region *Region) Views {
	s.state = State{Selection: region}
	s.views = Recompute(s.state, s.coll, s.mapping)

	return s.views
}

// State returns the current selection state.
func (s *Session) State() State {
	return s.state
}

// Views returns the views for the current state.
func (s *Session) Views() Views {
	return s.views
}
