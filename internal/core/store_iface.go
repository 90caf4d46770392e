package core

import "github.com/dkeye/Live/internal/domain"

// SessionStore holds the live sessions of this process.
// Implementations hand out copies; callers never alias stored state.
type SessionStore interface {
	// Put stores s under s.ID and reports whether an entry was replaced.
	Put(s domain.Session) (replaced bool)
	Get(id domain.SessionID) (domain.Session, bool)
	// Update applies fn to the stored entry and returns the result.
	Update(id domain.SessionID, fn func(*domain.Session)) (domain.Session, bool)
	Delete(id domain.SessionID) bool
	List() []domain.Session
	Len() int
}
