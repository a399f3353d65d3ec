package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

type light string

func newLight() *Machine[light] {
	return New("light",
		State[light]{Status: "red", Display: Display{Label: "Đỏ"}, Next: []light{"green"}},
		State[light]{Status: "green", Next: []light{"yellow", "off"}},
		State[light]{Status: "yellow", Next: []light{"red"}},
		State[light]{Status: "off"},
	)
}

func TestCanTransition(t *testing.T) {
	m := newLight()

	require.NoError(t, m.CanTransition("red", "green"))
	assert.True(t, httperr.IsBusiness(m.CanTransition("red", "yellow"), "invalid_transition"))
	assert.True(t, httperr.IsBusiness(m.CanTransition("blue", "red"), "invalid_status"))
	assert.True(t, httperr.IsBusiness(m.CanTransition("off", "red"), "invalid_transition"))
}

func TestNext_ReturnsCopy(t *testing.T) {
	m := newLight()

	next := m.Next("green")
	next[0] = "red"

	assert.Equal(t, []light{"yellow", "off"}, m.Next("green"))
	assert.Nil(t, m.Next("blue"))
}

func TestDescribe(t *testing.T) {
	m := newLight()

	info := m.Describe()

	require.Len(t, info, 4)
	assert.Equal(t, "red", info[0].Status)
	assert.Equal(t, "Đỏ", info[0].Label)
	assert.Equal(t, []string{"green"}, info[0].Next)
	assert.True(t, info[3].Terminal)
	assert.True(t, m.IsTerminal("off"))
}

func TestNew_PanicsOnUnknownTarget(t *testing.T) {
	assert.Panics(t, func() {
		New("broken", State[light]{Status: "a", Next: []light{"b"}})
	})
}
