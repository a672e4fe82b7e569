package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps open wizards in memory, keyed by id and scoped to their owner.
type Store struct {
	mu      sync.Mutex
	wizards map[string]*Wizard
	ttl     time.Duration
	now     func() time.Time
}

// NewStore returns a store that forgets wizards idle for longer than ttl.
// A non-positive ttl keeps them until deleted.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		wizards: make(map[string]*Wizard),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Create(owner string) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := New(uuid.New().String(), owner, s.now())
	s.wizards[w.ID] = w
	return *w
}

func (s *Store) Get(id, owner string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.lookup(id, owner)
	if err != nil {
		return Wizard{}, err
	}
	return *w, nil
}

// Update runs fn on the wizard under the store lock and returns the result.
// The wizard is left untouched when fn fails.
func (s *Store) Update(id, owner string, fn func(*Wizard) error) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.lookup(id, owner)
	if err != nil {
		return Wizard{}, err
	}
	working := *w
	if err := fn(&working); err != nil {
		return *w, err
	}
	working.UpdatedAt = s.now()
	*w = working
	return working, nil
}

// Delete removes the wizard and returns its last state.
func (s *Store) Delete(id, owner string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.lookup(id, owner)
	if err != nil {
		return Wizard{}, err
	}
	delete(s.wizards, id)
	return *w, nil
}

// Sweep drops idle wizards and returns them. Wizards in the middle of a
// submission are kept.
func (s *Store) Sweep() []Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return nil
	}
	now := s.now()
	var removed []Wizard
	for id, w := range s.wizards {
		if !w.Submitting && now.Sub(w.UpdatedAt) > s.ttl {
			removed = append(removed, *w)
			delete(s.wizards, id)
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wizards)
}

// lookup must be called with s.mu held.
func (s *Store) lookup(id, owner string) (*Wizard, error) {
	w, ok := s.wizards[id]
	if !ok || w.Owner != owner {
		return nil, ErrDraftNotFound
	}
	if s.ttl > 0 && !w.Submitting && s.now().Sub(w.UpdatedAt) > s.ttl {
		return nil, ErrDraftNotFound
	}
	return w, nil
}
