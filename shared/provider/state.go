package provider

import (
	"sync"
)

// AuthState tracks the signed-in identity of an auth handle and notifies
// subscribers when it changes. Adapters embed it.
type AuthState struct {
	mu        sync.Mutex
	current   *Identity
	nextID    uint64
	listeners map[uint64]func(*Identity)
	order     []uint64
}

// CurrentUser returns a copy of the signed-in identity or nil.
func (s *AuthState) CurrentUser() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneIdentity(s.current)
}

// SetCurrent replaces the signed-in identity and notifies subscribers.
// Setting nil when nobody is signed in does not notify.
func (s *AuthState) SetCurrent(identity *Identity) {
	s.mu.Lock()
	if s.current == nil && identity == nil {
		s.mu.Unlock()
		return
	}
	s.current = cloneIdentity(identity)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneIdentity(identity))
	}
}

// OnAuthStateChanged registers fn. It is called once with the current state
// before OnAuthStateChanged returns and then once per change.
func (s *AuthState) OnAuthStateChanged(fn func(*Identity)) func() {
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[uint64]func(*Identity))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	current := cloneIdentity(s.current)
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *AuthState) snapshotListeners() []func(*Identity) {
	listeners := make([]func(*Identity), 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	return listeners
}

func cloneIdentity(identity *Identity) *Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}

// updateCurrent modifies the signed-in identity in place without notifying
// subscribers. It is a no-op when nobody is signed in.
func (s *AuthState) updateCurrent(fn func(*Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		fn(s.current)
	}
}
