package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitCallsListenersInOrder(t *testing.T) {
	n := New()
	var got []int
	n.Subscribe("change", func() { got = append(got, 1) })
	n.Subscribe("change", func() { got = append(got, 2) })
	n.Subscribe("other", func() { got = append(got, 99) })

	n.Emit("change")

	assert.Equal(t, []int{1, 2}, got)
}

func TestEmitWithoutListeners(t *testing.T) {
	n := New()
	assert.NotPanics(t, func() { n.Emit("change") })

	var zero Notifier
	assert.NotPanics(t, func() { zero.Emit("change") })
	zero.Subscribe("change", func() {})
	assert.Equal(t, 1, zero.Len("change"))
}

func TestSubscriptionCancel(t *testing.T) {
	n := New()
	calls := 0
	sub := n.Subscribe("change", func() { calls++ })
	require.NotEmpty(t, sub.ID)
	require.Equal(t, 1, n.Len("change"))

	n.Emit("change")
	sub.Cancel()
	n.Emit("change")
	sub.Cancel()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, n.Len("change"))
}

func TestUnsubscribeKeepsOtherListeners(t *testing.T) {
	n := New()
	var got []string
	a := n.Subscribe("change", func() { got = append(got, "a") })
	n.Subscribe("change", func() { got = append(got, "b") })
	n.Unsubscribe(a)

	n.Emit("change")

	assert.Equal(t, []string{"b"}, got)
	assert.NotPanics(t, func() { Subscription{}.Cancel() })
}

func TestSubscribeNilIsIgnored(t *testing.T) {
	n := New()
	sub := n.Subscribe("change", nil)
	assert.Empty(t, sub.ID)
	assert.Equal(t, 0, n.Len("change"))
}

func TestListenerAddedDuringEmitRunsNextTime(t *testing.T) {
	n := New()
	late := 0
	added := false
	n.Subscribe("change", func() {
		if !added {
			added = true
			n.Subscribe("change", func() { late++ })
		}
	})

	n.Emit("change")
	assert.Equal(t, 0, late)
	n.Emit("change")
	assert.Equal(t, 1, late)
}
