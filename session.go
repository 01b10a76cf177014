package falseshare

import "github.com/llxisdsh/pb"

// Session is a concurrency-safe registry of named comparison reports. It
// exists so a test suite can run many small, independent comparisons — even
// from parallel tests — and collect their reports in one place.
//
// Concurrent Run calls are safe but share the machine; overlapped sessions
// are for exercising correctness, not for timing fidelity.
type Session struct {
	_       noCopy
	driver  Driver
	reports pb.MapOf[string, *Report]
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Run executes one comparison and records its report under name. Re-running
// a name replaces the previous report. On error nothing is recorded.
func (s *Session) Run(name string, cfg Config) (*Report, error) {
	rep, err := s.driver.Compare(cfg)
	if err != nil {
		return nil, err
	}
	s.reports.Store(name, rep)
	return rep, nil
}

// Report returns the recorded report for name, if any.
func (s *Session) Report(name string) (*Report, bool) {
	return s.reports.Load(name)
}

// Range calls f for every recorded report until f returns false.
func (s *Session) Range(f func(name string, r *Report) bool) {
	s.reports.Range(f)
}

// Len returns the number of recorded reports.
func (s *Session) Len() int {
	return s.reports.Size()
}
