// Package fsm holds the transition tables behind every status field.
package fsm

import "github.com/BruksfildServices01/studio-manager/internal/httperr"

type Display struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type State[S ~string] struct {
	Status  S
	Display Display
	Next    []S
}

// StateInfo is the JSON shape the dashboard uses to render status badges and
// the buttons for the next allowed actions.
type StateInfo struct {
	Status   string   `json:"status"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Icon     string   `json:"icon"`
	Next     []string `json:"next"`
	Terminal bool     `json:"terminal"`
}

type Machine[S ~string] struct {
	name   string
	order  []S
	states map[S]State[S]
}

// New panics on a table that names an unknown target; tables are package
// level values so this fires at init.
func New[S ~string](name string, states ...State[S]) *Machine[S] {
	m := &Machine[S]{
		name:   name,
		states: make(map[S]State[S], len(states)),
	}
	for _, st := range states {
		m.order = append(m.order, st.Status)
		m.states[st.Status] = st
	}
	for _, st := range states {
		for _, to := range st.Next {
			if _, ok := m.states[to]; !ok {
				panic("fsm " + name + ": unknown target " + string(to))
			}
		}
	}
	return m
}

func (m *Machine[S]) Name() string {
	return m.name
}

func (m *Machine[S]) Valid(s S) bool {
	_, ok := m.states[s]
	return ok
}

func (m *Machine[S]) Next(s S) []S {
	st, ok := m.states[s]
	if !ok {
		return nil
	}
	out := make([]S, len(st.Next))
	copy(out, st.Next)
	return out
}

func (m *Machine[S]) IsTerminal(s S) bool {
	st, ok := m.states[s]
	return ok && len(st.Next) == 0
}

func (m *Machine[S]) Display(s S) Display {
	return m.states[s].Display
}

// CanTransition returns invalid_status for unknown states and
// invalid_transition for a move the table does not allow.
func (m *Machine[S]) CanTransition(from, to S) error {
	if !m.Valid(from) || !m.Valid(to) {
		return httperr.ErrBusiness("invalid_status")
	}
	for _, n := range m.states[from].Next {
		if n == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func (m *Machine[S]) Describe() []StateInfo {
	out := make([]StateInfo, 0, len(m.order))
	for _, s := range m.order {
		st := m.states[s]
		next := make([]string, 0, len(st.Next))
		for _, n := range st.Next {
			next = append(next, string(n))
		}
		out = append(out, StateInfo{
			Status:   string(s),
			Label:    st.Display.Label,
			Color:    st.Display.Color,
			Icon:     st.Display.Icon,
			Next:     next,
			Terminal: len(st.Next) == 0,
		})
	}
	return out
}
