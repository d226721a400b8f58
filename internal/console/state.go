package console

import (
	"context"
	"sync"

	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
	"github.com/frahmantamala/employee-admin/internal/core/events"
	"github.com/frahmantamala/employee-admin/internal/employee"
)

// State is one browser session's console: the tracked page, the form and the last
// applied table. Network calls never run under mu.
type State struct {
	mu          sync.Mutex
	currentPage int
	formOpen    bool
	form        viewmodels.EmployeeForm
	rows        []viewmodels.EmployeeRow
	pagination  viewmodels.Pagination
	alert       string
	loaded      bool
	// seq is the number of the latest load issued; only its response is applied.
	seq uint64
}

func NewState() *State {
	return &State{rows: []viewmodels.EmployeeRow{}}
}

func (s *State) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// beginLoad issues a new load ticket for the tracked page.
func (s *State) beginLoad() (page int, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.currentPage, s.seq
}

// apply installs a loaded page unless a newer load has been issued since.
func (s *State) apply(seq uint64, page *employee.Page, photoURL func(string) string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.rows = RenderEmployees(page.Employees, photoURL)
	s.pagination = UpdatePagination(page.CurrentPage, page.TotalPages)
	s.loaded = true
	return true
}

// Snapshot copies the state for rendering and consumes any pending alert.
func (s *State) Snapshot() viewmodels.EmployeesPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]viewmodels.EmployeeRow, len(s.rows))
	copy(rows, s.rows)

	out := viewmodels.EmployeesPage{
		Rows:       rows,
		Pagination: s.pagination,
		FormOpen:   s.formOpen,
		Form:       s.form,
		Alert:      s.alert,
		Loaded:     s.loaded,
	}
	s.alert = ""
	return out
}

// StateStore holds one State per session id.
type StateStore struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]*State)}
}

func (st *StateStore) Get(sessionID string) *State {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.states[sessionID]
	if !ok {
		s = NewState()
		st.states[sessionID] = s
	}
	return s
}

func (st *StateStore) Delete(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.states, sessionID)
}

func (st *StateStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.states)
}

// HandleSessionRemoved drops the console state of a closed or purged session.
func (st *StateStore) HandleSessionRemoved(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.SessionRemovedEvent)
	if !ok {
		return nil
	}
	st.Delete(e.SessionID)
	return nil
}
