package locale

import (
	"fmt"

	"github.com/gin-contrib/sessions"
)

// SessionStore persists the preference in a gin session under PreferenceKey.
type SessionStore struct {
	session sessions.Session
}

func NewSessionStore(session sessions.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Load() (string, error) {
	if s == nil || s.session == nil {
		return "", nil
	}
	value, _ := s.session.Get(PreferenceKey).(string)
	return value, nil
}

func (s *SessionStore) Save(value string) error {
	if s == nil || s.session == nil {
		return nil
	}
	s.session.Set(PreferenceKey, value)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("save language session: %w", err)
	}
	return nil
}
