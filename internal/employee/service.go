package employee

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-admin/internal/employeeservice"
	"github.com/frahmantamala/employee-admin/internal/session"
)

type ClientAPI interface {
	AddEmployee(ctx context.Context, token string, query url.Values) error
	ListEmployees(ctx context.Context, token string, page int) (*employeeDatamodel.Page, error)
	GetEmployee(ctx context.Context, token, id string) (*employeeDatamodel.Lookup, error)
	PhotoURL(photoPath string) string
}

type Service struct {
	client ClientAPI
	logger *slog.Logger
}

func NewService(client ClientAPI, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// AddEmployee validates the form and issues one creation request. A rejection by
// the service comes back as *employeeservice.StatusError.
func (s *Service) AddEmployee(ctx context.Context, sess *session.Session, dto CreateEmployeeDTO) error {
	if err := validation.Struct(dto); err != nil {
		return err
	}

	err := s.client.AddEmployee(ctx, sess.Token, dto.Query())
	if err != nil {
		var statusErr *employeeservice.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Error("failed to add employee", "status", statusErr.StatusCode, "body", statusErr.Body)
		} else {
			s.logger.Error("error while adding employee", "error", err)
		}
		return err
	}

	s.logger.Info("employee added", "email", dto.Email)
	return nil
}

// LoadEmployees fetches the page an admin asked for. Any other role only ever sees
// their own record, adapted to a single-row page; page is ignored for them.
func (s *Service) LoadEmployees(ctx context.Context, sess *session.Session, page int) (*Page, error) {
	if !sess.IsAdmin() {
		return s.LoadOwn(ctx, sess)
	}

	data, err := s.client.ListEmployees(ctx, sess.Token, page)
	if err != nil {
		s.logLoadFailure(ctx, err)
		return nil, err
	}

	return s.toPage(data), nil
}

// LoadOwn fetches the caller's own record as a one-row page.
func (s *Service) LoadOwn(ctx context.Context, sess *session.Session) (*Page, error) {
	if sess.EmployeeID == "" {
		s.logger.Warn("session has no employee id")
		return nil, internal.ErrEmployeeNotFound
	}

	lookup, err := s.client.GetEmployee(ctx, sess.Token, sess.EmployeeID)
	if err != nil {
		s.logLoadFailure(ctx, err)
		return nil, err
	}

	data := lookup.AsPage()
	return s.toPage(&data), nil
}

func (s *Service) toPage(data *employeeDatamodel.Page) *Page {
	result := PageFromDataModel(data)
	if !result.Consistent() {
		s.logger.Warn("employee page out of range",
			"current_page", result.CurrentPage,
			"total_pages", result.TotalPages)
	}
	return result
}

func (s *Service) logLoadFailure(ctx context.Context, err error) {
	sessionID := internal.SessionIDFromContext(ctx)

	var statusErr *employeeservice.StatusError
	if errors.As(err, &statusErr) {
		s.logger.Error("failed to load employees", "session_id", sessionID, "status", statusErr.StatusCode, "body", statusErr.Body)
		return
	}
	s.logger.Error("error while loading employees", "session_id", sessionID, "error", err)
}

// GetEmployee loads one record for the detail page.
func (s *Service) GetEmployee(ctx context.Context, sess *session.Session, id string) (*Employee, error) {
	lookup, err := s.client.GetEmployee(ctx, sess.Token, id)
	if err != nil {
		var statusErr *employeeservice.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("failed to get employee", "id", id, "error", err)
		if errors.Is(err, employeeservice.ErrTransport) {
			return nil, internal.ErrUpstreamDown.WithCause(err)
		}
		return nil, err
	}

	page := lookup.AsPage()
	if len(page.Content) == 0 {
		return nil, internal.ErrEmployeeNotFound
	}

	e := FromDataModel(&page.Content[0])
	return &e, nil
}

func (s *Service) PhotoURL(photoPath string) string {
	return s.client.PhotoURL(photoPath)
}
