package dashboard

import (
	"context"
	"sync"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// DefaultRange is the time range selected on mount.
const DefaultRange = 30

// Ranges are the selectable dashboard time ranges, in days.
var Ranges = []int{7, 30, 90}

type StateKind int

const (
	StateLoading StateKind = iota
	StateError
	StateReady
)

// State is the tagged view state: exactly one of loading, error or ready.
// Keeping the variants in one value rules out impossible combinations like a
// loading flag set alongside an error message.
type State struct {
	Kind    StateKind
	Range   int
	Err     string
	Expired bool
	Report  models.DashboardReport
}

// Store holds the dashboard view state for one client instance. Every range
// selection issues exactly one fetch tagged with the range it was issued
// for; a response is applied only while that tag still matches the current
// selection, so a slow response for range A can never overwrite state after
// the user has switched to range B.
type Store struct {
	Fetch func(ctx context.Context, days int) (models.DashboardReport, error)

	mu       sync.Mutex
	selected int
	state    State
}

func NewStore(client *Client) *Store {
	return &Store{
		Fetch:    client.FetchDashboard,
		selected: DefaultRange,
		state:    State{Kind: StateLoading, Range: DefaultRange},
	}
}

// Load fetches the report for the current selection; called once on mount.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	days := s.selected
	s.mu.Unlock()
	s.Select(ctx, days)
}

// Select switches the time range and fetches its report. On success the held
// report is replaced whole; on failure any previous report is discarded and
// the error is surfaced. Both paths leave the loading state, and a stale
// response (selection changed while the request was in flight) is dropped
// without touching state at all.
func (s *Store) Select(ctx context.Context, days int) {
	s.mu.Lock()
	s.selected = days
	s.state = State{Kind: StateLoading, Range: days}
	s.mu.Unlock()

	report, err := s.Fetch(ctx, days)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != days {
		// stale response for an abandoned selection
		return
	}
	if err != nil {
		s.state = State{
			Kind:    StateError,
			Range:   days,
			Err:     err.Error(),
			Expired: domain.IsAuthExpired(err),
		}
		return
	}
	s.state = State{Kind: StateReady, Range: days, Report: report}
}

// State returns a snapshot of the current view state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selected returns the currently selected range in days.
func (s *Store) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}
