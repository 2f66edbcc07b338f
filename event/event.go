// Package event provides a minimal synchronous event bus. The simulation
// publishes gameplay events; audio and HUD layers subscribe without the
// systems knowing about them.
package event

// Type identifies a kind of event.
type Type string

// Event carries a type and optional payload.
type Event struct {
	Type Type
	Data any
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Dispatcher routes events to subscribed listeners. Not safe for
// concurrent use; all dispatching happens on the frame loop.
type Dispatcher struct {
	listeners map[Type][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe registers a listener for the event type.
func (d *Dispatcher) Subscribe(eventType Type, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes a previously subscribed listener.
func (d *Dispatcher) Unsubscribe(eventType Type, listener Listener) {
	listeners, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers the event to all listeners of its type, in
// subscription order.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// Emit is shorthand for dispatching a type with a payload.
func (d *Dispatcher) Emit(eventType Type, data any) {
	d.Dispatch(Event{Type: eventType, Data: data})
}
