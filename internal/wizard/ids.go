package wizard

import (
	"strconv"
	"sync"
	"time"
)

// IDSource hands out timestamp-based entry ids (Unix milliseconds). Two calls
// within the same millisecond get consecutive values.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return strconv.FormatInt(n, 10)
}

var defaultIDs = NewIDSource()
