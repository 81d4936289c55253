// Package auth owns the user session: the bearer token, who is logged in,
// and the auth endpoints that establish or tear down a session.
package auth

import (
	"log"
	"sync"

	"beyt_client/storage"
)

// TokenStore persists the token across runs. *storage.SQLiteStore satisfies
// it.
type TokenStore interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
}

// Session is the single owner of the bearer token. Login and Logout write
// through to the store before returning, so the next outgoing request always
// sees the new value. Components that care about auth transitions subscribe
// rather than polling.
type Session struct {
	mu    sync.Mutex
	store TokenStore
	token string
	subs  []chan struct{}
}

func NewSession(store TokenStore) (*Session, error) {
	token, err := store.Get(storage.TokenKey)
	if err != nil {
		return nil, err
	}
	return &Session{store: store, token: token}, nil
}

// Token implements api.TokenSource. Empty means logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Login stores the token and notifies subscribers.
func (s *Session) Login(token string) error {
	s.mu.Lock()
	if err := s.store.Put(storage.TokenKey, token); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = token
	s.mu.Unlock()

	log.Println("auth: session established")
	s.notify()
	return nil
}

// Logout deletes the token and notifies subscribers.
func (s *Session) Logout() error {
	s.mu.Lock()
	if err := s.store.Delete(storage.TokenKey); err != nil {
		s.mu.Unlock()
		return err
	}
	s.token = ""
	s.mu.Unlock()

	log.Println("auth: session cleared")
	s.notify()
	return nil
}

// Subscribe returns a channel that receives a tick on every login or logout.
// The channel is buffered; a slow subscriber coalesces ticks instead of
// blocking the session.
func (s *Session) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Session) notify() {
	s.mu.Lock()
	subs := append([]chan struct{}(nil), s.subs...)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
