// Package events is a process-local pub/sub dispatcher. Services publish
// domain events (document uploaded, reminder sent); subscribers attach at
// startup and detach on shutdown.
package events

import (
	"sync"
	"time"
)

const (
	DocumentUploaded = "document.uploaded"
	DocumentDeleted  = "document.deleted"
	ReminderSent     = "reminder.sent"
	ReminderFailed   = "reminder.failed"
	ConfigUpdated    = "config.updated"
)

type Event struct {
	Type      string
	StartupID string
	Detail    string
	At        time.Time
}

type Listener func(Event)

type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	next      int
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its id for Unsubscribe.
func (d *Dispatcher) Subscribe(fn Listener) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.listeners[d.next] = fn
	return d.next
}

func (d *Dispatcher) Unsubscribe(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, id)
}

// Publish delivers the event to every listener synchronously, in the
// caller's goroutine. Listeners must not block.
func (d *Dispatcher) Publish(eventType, startupID, detail string) {
	e := Event{Type: eventType, StartupID: startupID, Detail: detail, At: time.Now()}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, fn := range d.listeners {
		fn(e)
	}
}
