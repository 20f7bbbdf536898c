package tool

import "time"

// timeLayout is the wall-clock format the current_time tool reports:
// 'YYYY-MM-DD HH:MM:SS' in the server's local timezone.
const timeLayout = "2006-01-02 15:04:05"

// TimeService reports the current wall-clock time.
type TimeService struct {
	now func() time.Time
}

// NewTimeService returns a TimeService on the real clock.
func NewTimeService() *TimeService {
	return NewTimeServiceWithClock(time.Now)
}

// NewTimeServiceWithClock returns a TimeService using now as its clock source.
func NewTimeServiceWithClock(now func() time.Time) *TimeService {
	return &TimeService{now: now}
}

// CurrentTime returns the current local time formatted as timeLayout.
func (s *TimeService) CurrentTime() string {
	return s.now().Local().Format(timeLayout)
}
