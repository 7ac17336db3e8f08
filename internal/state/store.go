package state

import (
	"sync"

	"github.com/five82/roost/internal/domain"
)

// State is the full client state tree.
type State struct {
	Offers OffersState
	Auth   AuthState
}

// InitialState returns the tree every session starts from.
func InitialState() State {
	return State{
		Offers: initialOffersState(),
		Auth:   initialAuthState(),
	}
}

// Reduce routes a to both partitions.
func Reduce(s State, a Action) State {
	return State{
		Offers: ReduceOffers(s.Offers, a),
		Auth:   ReduceAuth(s.Auth, a),
	}
}

// Dispatcher is the write side of the store as seen by operations.
type Dispatcher interface {
	Dispatch(a Action)
	State() State
}

// Ensure Store implements Dispatcher at compile time.
var _ Dispatcher = (*Store)(nil)

// Store owns the state tree. Every mutation goes through Dispatch, which
// serializes reducer calls.
type Store struct {
	once   sync.Once
	mu     sync.RWMutex
	state  State
	notify []chan struct{}
}

// New returns a store holding InitialState. The zero Store behaves the same.
func New() *Store {
	s := &Store{}
	s.ensure()
	return s
}

// Dispatch applies a and wakes subscribers.
func (s *Store) Dispatch(a Action) {
	s.ensure()
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	subs := s.notify
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// State returns a copy of the current tree.
func (s *Store) State() State {
	s.ensure()
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Offers.Offers = cloneOffers(s.state.Offers.Offers)
	if s.state.Auth.User != nil {
		user := *s.state.Auth.User
		snap.Auth.User = &user
	}
	return snap
}

// Subscribe returns a channel that receives a signal after dispatches.
// Signals coalesce: a slow reader sees one pending wake-up, not one per
// action.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.notify = append(s.notify, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) ensure() {
	s.once.Do(func() {
		s.mu.Lock()
		s.state = InitialState()
		s.mu.Unlock()
	})
}

func cloneOffers(offers []domain.Offer) []domain.Offer {
	dup := make([]domain.Offer, len(offers))
	copy(dup, offers)
	return dup
}
