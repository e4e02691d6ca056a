package availability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/hallcheck/internal/browser"
	"github.com/example/hallcheck/internal/browser/browsertest"
)

func timeSelect() *browsertest.Element {
	return &browsertest.Element{
		Opts: []browser.Option{
			{Label: "19:00 - 20:30", Value: "a"},
			{Label: "20:00 - 21:30", Value: "b"},
			{Label: "20:00 - 22:00", Value: "c"},
		},
	}
}

func TestCheckMatchesStartPrefix(t *testing.T) {
	sel := timeSelect()
	ok, label := Check(sel, "20:00")
	require.True(t, ok)
	require.Equal(t, "20:00 - 21:30", label)
	require.Equal(t, "b", sel.Selected)
}

func TestCheckNoMatch(t *testing.T) {
	sel := timeSelect()
	ok, label := Check(sel, "21:00")
	require.False(t, ok)
	require.Empty(t, label)
	require.Empty(t, sel.Selected)
}

func TestCheckSelectionRejected(t *testing.T) {
	// A slot that matches lexically but refuses selection is the site's
	// encoding of fully booked: unavailable, and the second lexical
	// match is never consulted.
	sel := timeSelect()
	sel.Rejected = map[string]bool{"b": true}
	ok, label := Check(sel, "20:00")
	require.False(t, ok)
	require.Empty(t, label)
	require.Empty(t, sel.Selected)
}

func TestCheckNilControl(t *testing.T) {
	ok, label := Check(nil, "20:00")
	require.False(t, ok)
	require.Empty(t, label)
}
