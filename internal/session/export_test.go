package session

import "time"

func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}
