package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
	"github.com/frahmantamala/employee-admin/internal/core/events"
	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/employeeservice"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/pkg/logger"
)

const AlertEmployeeAdded = "Employee added successfully!"

type EmployeeServiceAPI interface {
	AddEmployee(ctx context.Context, sess *session.Session, dto employee.CreateEmployeeDTO) error
	LoadEmployees(ctx context.Context, sess *session.Session, page int) (*employee.Page, error)
	LoadOwn(ctx context.Context, sess *session.Session) (*employee.Page, error)
	GetEmployee(ctx context.Context, sess *session.Session, id string) (*employee.Employee, error)
	PhotoURL(photoPath string) string
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Controller drives a session's console state. Each operation returns the
// resulting page ready to render.
type Controller struct {
	employees EmployeeServiceAPI
	states    *StateStore
	publisher Publisher
	logger    *slog.Logger
}

func NewController(employees EmployeeServiceAPI, states *StateStore, publisher Publisher, logger *slog.Logger) *Controller {
	return &Controller{
		employees: employees,
		states:    states,
		publisher: publisher,
		logger:    logger,
	}
}

// Load reloads the table at the tracked page.
func (c *Controller) Load(ctx context.Context, sess *session.Session) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)
	c.reload(ctx, sess, st)
	return st.Snapshot()
}

// Show opens the add-employee form.
func (c *Controller) Show(sess *session.Session) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)

	st.mu.Lock()
	st.formOpen = true
	st.mu.Unlock()

	return st.Snapshot()
}

// Cancel closes the form and clears what was typed into it.
func (c *Controller) Cancel(sess *session.Session) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)

	st.mu.Lock()
	st.formOpen = false
	st.form = viewmodels.EmployeeForm{}
	st.mu.Unlock()

	return st.Snapshot()
}

// Submit sends the form to the employee service. On success the form hides with
// its values kept, and the table reloads once at the tracked page; a rejection keeps the form open and
// shows the service's own message; a transport failure is only logged.
func (c *Controller) Submit(ctx context.Context, sess *session.Session, dto employee.CreateEmployeeDTO) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)

	st.mu.Lock()
	st.formOpen = true
	st.form = formFromDTO(dto)
	st.mu.Unlock()

	err := c.employees.AddEmployee(ctx, sess, dto)
	if err == nil {
		st.mu.Lock()
		st.alert = AlertEmployeeAdded
		st.formOpen = false
		st.mu.Unlock()

		c.reload(ctx, sess, st)
		c.publish(ctx, events.NewEmployeeAddedEvent(dto.Email, dto.JobTitle, string(sess.Role), logger.TraceID(ctx)))
		return st.Snapshot()
	}

	var statusErr *employeeservice.StatusError
	switch {
	case errors.As(err, &statusErr):
		st.mu.Lock()
		st.alert = "Error: " + statusErr.Body
		st.mu.Unlock()
	case isValidation(err):
		appErr, _ := internal.IsAppError(err)
		st.mu.Lock()
		st.form.Errors = fieldErrors(appErr)
		st.mu.Unlock()
	default:
		logger.From(ctx).Error("Submit: employee service unreachable", "error", err)
	}

	return st.Snapshot()
}

// Prev steps back one page; on the first page it does nothing.
func (c *Controller) Prev(ctx context.Context, sess *session.Session) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)

	st.mu.Lock()
	moved := st.currentPage > 0
	if moved {
		st.currentPage--
	}
	st.mu.Unlock()

	if moved {
		c.reload(ctx, sess, st)
	}
	return st.Snapshot()
}

// Next steps forward one page. There is no upper bound here; the rendered page
// disables the button on the last page.
func (c *Controller) Next(ctx context.Context, sess *session.Session) viewmodels.EmployeesPage {
	st := c.states.Get(sess.ID)

	st.mu.Lock()
	st.currentPage++
	st.mu.Unlock()

	c.reload(ctx, sess, st)
	return st.Snapshot()
}

// Detail loads one record for its own page.
func (c *Controller) Detail(ctx context.Context, sess *session.Session, id string) (viewmodels.EmployeeDetail, error) {
	e, err := c.employees.GetEmployee(ctx, sess, id)
	if err != nil {
		return viewmodels.EmployeeDetail{}, err
	}

	return viewmodels.EmployeeDetail{
		Employee: renderRow(e, c.employees.PhotoURL),
		FullName: e.FullName(),
		BackURL:  "/employees",
	}, nil
}

// Self shows the caller's own record. It does not touch the console state.
func (c *Controller) Self(ctx context.Context, sess *session.Session) (viewmodels.SelfPage, error) {
	page, err := c.employees.LoadOwn(ctx, sess)
	if err != nil {
		return viewmodels.SelfPage{Rows: []viewmodels.EmployeeRow{}}, err
	}
	return viewmodels.SelfPage{Rows: RenderEmployees(page.Employees, c.employees.PhotoURL)}, nil
}

func (c *Controller) reload(ctx context.Context, sess *session.Session, st *State) {
	page, seq := st.beginLoad()

	result, err := c.employees.LoadEmployees(ctx, sess, page)
	if err != nil {
		// the previous rows stay on screen
		return
	}

	if !st.apply(seq, result, c.employees.PhotoURL) {
		c.logger.Debug("dropped stale employee page", "page", page, "seq", seq)
	}
}

func (c *Controller) publish(ctx context.Context, event events.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func formFromDTO(dto employee.CreateEmployeeDTO) viewmodels.EmployeeForm {
	return viewmodels.EmployeeForm{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		JobTitle:    dto.JobTitle,
		BirthDate:   dto.BirthDate,
		StartDate:   dto.StartDate,
		AddressType: dto.AddressType,
	}
}

func isValidation(err error) bool {
	appErr, ok := internal.IsAppError(err)
	return ok && appErr.Type == internal.ErrorTypeValidation
}

func fieldErrors(appErr *internal.AppError) map[string]string {
	out := map[string]string{}
	if details, ok := appErr.Details.(internal.ValidationErrors); ok {
		for _, fe := range details.Errors {
			out[fe.Field] = fe.Message
		}
	}
	if len(out) == 0 {
		out["_form"] = appErr.Message
	}
	return out
}
