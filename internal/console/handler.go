package console

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
	"github.com/frahmantamala/employee-admin/internal/core/common/validation"
	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/internal/transport"
	"github.com/go-chi/chi"
)

const maxUploadMemory = 10 << 20

type Handler struct {
	*transport.BaseHandler
	Controller *Controller
	LoginPath  string
	templates  *template.Template
}

func NewHandler(baseHandler *transport.BaseHandler, controller *Controller, loginPath string) (*Handler, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		BaseHandler: baseHandler,
		Controller:  controller,
		LoginPath:   loginPath,
		templates:   tmpl,
	}, nil
}

// Index is the landing page; guard notices arrive in the notice query parameter.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.RenderHTML(w, http.StatusOK, h.templates, "index.html", viewmodels.IndexPage{
		Notice:    r.URL.Query().Get("notice"),
		LoginPath: h.LoginPath,
	})
}

func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.renderEmployees(w, h.Controller.Load(r.Context(), sess))
}

func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.renderEmployees(w, h.Controller.Show(sess))
}

func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.renderEmployees(w, h.Controller.Cancel(sess))
}

func (h *Handler) PrevPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.renderEmployees(w, h.Controller.Prev(r.Context(), sess))
}

func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	h.renderEmployees(w, h.Controller.Next(r.Context(), sess))
}

// Submit accepts the add-employee form, multipart or urlencoded. Only the chosen
// photo's file name is forwarded.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	dto, err := h.decodeEmployeeForm(r)
	if err != nil {
		h.Logger.Warn("Submit: unreadable form", "error", err)
		h.renderError(w, err, "/employees")
		return
	}

	h.renderEmployees(w, h.Controller.Submit(r.Context(), sess, dto))
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	detail, err := h.Controller.Detail(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, err, "/employees")
		return
	}
	h.RenderHTML(w, http.StatusOK, h.templates, "detail.html", detail)
}

func (h *Handler) Self(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	page, err := h.Controller.Self(r.Context(), sess)
	if err != nil {
		h.renderError(w, err, "")
		return
	}
	h.RenderHTML(w, http.StatusOK, h.templates, "self.html", page)
}

func (h *Handler) decodeEmployeeForm(r *http.Request) (employee.CreateEmployeeDTO, error) {
	var dto employee.CreateEmployeeDTO

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return dto, internal.NewValidationError("malformed form submission", internal.ErrCodeValidationFailed).WithCause(err)
	}
	if err := validation.DecodeForm(&dto, r.PostForm); err != nil {
		return dto, err
	}

	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
		if file, header, err := r.FormFile("photo"); err == nil {
			file.Close()
			dto.PhotoName = header.Filename
		}
	}

	return dto, nil
}

func (h *Handler) renderEmployees(w http.ResponseWriter, page viewmodels.EmployeesPage) {
	h.RenderHTML(w, http.StatusOK, h.templates, "employees.html", page)
}

func (h *Handler) renderError(w http.ResponseWriter, err error, backURL string) {
	status := http.StatusBadGateway
	message := "The employee service could not be reached."

	if appErr, ok := internal.IsAppError(err); ok {
		status = appErr.StatusCode
		message = appErr.Message
	} else {
		h.Logger.Error("console request failed", "error", err)
	}

	h.RenderHTML(w, status, h.templates, "error.html", viewmodels.ErrorPage{
		Status:  status,
		Message: message,
		BackURL: backURL,
	})
}
