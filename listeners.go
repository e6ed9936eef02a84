package simplecal

import (
	"log/slog"
)

// Listener receives every applied change
type Listener func(Change)

// Subscribe registers fn for every applied change and returns a function
// that removes it. fn runs on the mutating goroutine after the save.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(change Change) {
	s.subMu.Lock()
	fns := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// LogListener logs every change at debug level and failed saves at warn
func LogListener(logger *slog.Logger) Listener {
	return func(c Change) {
		if c.Err != nil {
			logger.Warn("change not persisted", "event", c.Event.Type(), "error", c.Err)
			return
		}
		logger.Debug("change applied", "event", c.Event.Type(), "time", c.Event.Timestamp())
	}
}

// ChannelListener forwards changes to a buffered channel, dropping them when
// the reader falls behind. The returned stop function unsubscribes; the
// channel is never closed.
func (s *Store) ChannelListener(buffer int) (<-chan Change, func()) {
	ch := make(chan Change, buffer)
	done := make(chan struct{})
	unsubscribe := s.Subscribe(func(c Change) {
		select {
		case <-done:
		case ch <- c:
		default:
		}
	})
	return ch, func() {
		unsubscribe()
		close(done)
	}
}
