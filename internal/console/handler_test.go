package console_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/frahmantamala/employee-admin/internal/console"
	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/internal/transport"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Console Handler", func() {
	var (
		fake    *fakeEmployees
		handler *console.Handler
		sess    *session.Session
	)

	BeforeEach(func() {
		fake = newFakeEmployees(3)
		controller := console.NewController(fake, console.NewStateStore(), &fakePublisher{}, logger.Discard())

		var err error
		handler, err = console.NewHandler(transport.NewBaseHandler(logger.Discard()), controller, "/login")
		Expect(err).NotTo(HaveOccurred())

		sess = &session.Session{ID: "s1", Token: "tok", Role: session.RoleAdmin}
	})

	withSession := func(req *http.Request) *http.Request {
		return req.WithContext(session.NewContext(req.Context(), sess))
	}

	serve := func(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, withSession(req))
		return rec
	}

	It("should show the guard notice on the index page, escaped", func() {
		req := httptest.NewRequest(http.MethodGet, "/?notice="+url.QueryEscape("<b>You need to log in first.</b>"), nil)
		rec := httptest.NewRecorder()

		handler.Index(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("&lt;b&gt;You need to log in first.&lt;/b&gt;"))
		Expect(rec.Body.String()).To(ContainSubstring(`id="sessionHandoff"`))
	})

	It("should render the table with the trigger and without the form", func() {
		rec := serve(handler.Employees, httptest.NewRequest(http.MethodGet, "/employees", nil))

		body := rec.Body.String()
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
		Expect(body).To(ContainSubstring(`id="addNewEmployeeButton"`))
		Expect(body).NotTo(ContainSubstring(`id="addEmployeeForm"`))
		Expect(body).To(ContainSubstring("First0"))
		Expect(body).To(ContainSubstring("Page 1 of 3"))
		Expect(body).To(MatchRegexp(`id="prevPage" type="submit" disabled`))
	})

	It("should swap the trigger for the form", func() {
		rec := serve(handler.ShowForm, httptest.NewRequest(http.MethodPost, "/employees/form/show", nil))

		body := rec.Body.String()
		Expect(body).To(ContainSubstring(`id="addEmployeeForm"`))
		Expect(body).NotTo(ContainSubstring(`id="addNewEmployeeButton"`))
	})

	It("should submit an urlencoded form without a photo", func() {
		form := url.Values{
			"firstName":           {"Ada"},
			"lastName":            {"Lovelace"},
			"email":               {"ada@example.com"},
			"jobTitle":            {"Engineer"},
			"birthDate":           {"1815-12-10"},
			"startDate":           {"2024-01-01"},
			"addressTypeDropdown": {"WORK"},
		}
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := serve(handler.Submit, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(fake.added).To(HaveLen(1))
		Expect(fake.added[0].AddressType).To(Equal("WORK"))
		Expect(fake.added[0].PhotoName).To(BeEmpty())
		Expect(rec.Body.String()).To(ContainSubstring(console.AlertEmployeeAdded))
	})

	It("should forward only the chosen photo's file name", func() {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for k, v := range map[string]string{
			"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "jobTitle": "Engineer",
			"birthDate": "1815-12-10", "startDate": "2024-01-01", "addressTypeDropdown": "HOME",
		} {
			Expect(mw.WriteField(k, v)).To(Succeed())
		}
		part, err := mw.CreateFormFile("photo", "ada.png")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("\x89PNG"))
		Expect(err).NotTo(HaveOccurred())
		Expect(mw.Close()).To(Succeed())

		req := httptest.NewRequest(http.MethodPost, "/employees", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		serve(handler.Submit, req)

		Expect(fake.added).To(HaveLen(1))
		Expect(fake.added[0].PhotoName).To(Equal("ada.png"))
		Expect(fake.added[0].Query().Get("photo")).To(Equal("ada.png"))
	})

	It("should render a record's detail page from the route id", func() {
		fake.record = &employee.Employee{ID: "7", FirstName: "Grace", LastName: "Hopper", PhotoPath: "g.png"}

		router := chi.NewRouter()
		router.Get("/employees/{id}", handler.Detail)

		req := httptest.NewRequest(http.MethodGet, "/employees/7", nil)
		req = req.WithContext(session.NewContext(context.Background(), sess))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Grace Hopper"))
		Expect(rec.Body.String()).To(ContainSubstring(`src="http://upstream.test/g.png"`))
	})

	It("should render an error page when the record cannot be loaded", func() {
		router := chi.NewRouter()
		router.Get("/employees/{id}", handler.Detail)

		req := httptest.NewRequest(http.MethodGet, "/employees/404", nil)
		req = req.WithContext(session.NewContext(context.Background(), sess))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadGateway))
		Expect(rec.Body.String()).To(ContainSubstring("Something went wrong"))
	})
})
