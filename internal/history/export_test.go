package history

import "time"

// WithClock pins the service's notion of now.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

var BuildQuery = buildQuery
