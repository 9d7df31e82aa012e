// Package observer provides a small publish/subscribe primitive keyed by event
// name. A Notifier is owned by a single component instance; it is not a
// process-wide registry.
package observer

import "github.com/google/uuid"

// Subscription identifies a registered listener so it can be removed later.
type Subscription struct {
	ID    string
	Event string
	n     *Notifier
}

// Cancel removes the listener from the notifier it was registered on.
// Cancelling twice or cancelling a zero Subscription is a no-op.
func (s Subscription) Cancel() {
	if s.n == nil {
		return
	}
	s.n.Unsubscribe(s)
}

type listener struct {
	id string
	fn func()
}

// Notifier dispatches zero-argument callbacks grouped by event name.
// Emission is synchronous; a listener that emits the same event recurses.
type Notifier struct {
	listeners map[string][]listener
}

// New returns an empty Notifier.
func New() *Notifier {
	return &Notifier{listeners: make(map[string][]listener)}
}

// Subscribe registers fn for event. Listeners run in registration order.
func (n *Notifier) Subscribe(event string, fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	id := uuid.NewString()
	n.listeners[event] = append(n.listeners[event], listener{id: id, fn: fn})
	return Subscription{ID: id, Event: event, n: n}
}

// Unsubscribe removes the listener behind sub. Unknown subscriptions are ignored.
func (n *Notifier) Unsubscribe(sub Subscription) {
	ls := n.listeners[sub.Event]
	for i, l := range ls {
		if l.id != sub.ID {
			continue
		}
		out := make([]listener, 0, len(ls)-1)
		out = append(out, ls[:i]...)
		out = append(out, ls[i+1:]...)
		if len(out) == 0 {
			delete(n.listeners, sub.Event)
		} else {
			n.listeners[sub.Event] = out
		}
		return
	}
}

// Emit calls every listener registered for event. The listener set is
// captured before dispatch, so subscriptions added or removed by a listener
// take effect from the next Emit.
func (n *Notifier) Emit(event string) {
	ls := n.listeners[event]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len reports how many listeners are registered for event.
func (n *Notifier) Len(event string) int { return len(n.listeners[event]) }
