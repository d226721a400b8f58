package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/internal/transport"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Session Handler", func() {
	var (
		service *session.Service
		handler *session.Handler
		reached int
		next    http.Handler
	)

	BeforeEach(func() {
		service = session.NewService(session.NewMemoryRepository(), session.NewTokenInspector(""), time.Hour, logger.Discard())
		handler = session.NewHandler(
			transport.NewBaseHandler(logger.Discard()),
			service,
			session.NewGuard("/", "/login"),
			session.CookieConfig{Name: "sid"},
		)
		reached = 0
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached++
			Expect(session.FromContext(r.Context())).NotTo(BeNil())
			w.WriteHeader(http.StatusOK)
		})
	})

	open := func(role string) *http.Cookie {
		sess, err := service.Open(context.Background(), session.HandoffDTO{JWTToken: "tok", UserRole: role})
		Expect(err).NotTo(HaveOccurred())
		return &http.Cookie{Name: "sid", Value: sess.ID}
	}

	Describe("RequireAdmin", func() {
		It("should redirect a visitor without a cookie and never reach the page", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/?notice=You+need+to+log+in+first."))
			Expect(reached).To(BeZero())
		})

		It("should redirect a stale cookie and clear it", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			req.AddCookie(&http.Cookie{Name: "sid", Value: "gone"})
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Set-Cookie")).To(ContainSubstring("Max-Age=0"))
			Expect(reached).To(BeZero())
		})

		It("should send a non-admin to the login page", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			req.AddCookie(open("EMPLOYEE"))
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			loc, err := url.Parse(rec.Header().Get("Location"))
			Expect(err).NotTo(HaveOccurred())
			Expect(loc.Path).To(Equal("/login"))
			Expect(loc.Query().Get("notice")).To(Equal("You must be an admin to access this page."))
			Expect(reached).To(BeZero())
		})

		It("should pass an admin through with the session in context", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			req.AddCookie(open("ADMIN"))
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).To(Equal(1))
		})
	})

	It("should let a non-admin through RequireSession", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(open("EMPLOYEE"))
		rec := httptest.NewRecorder()

		handler.RequireSession(next).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(Equal(1))
	})

	Describe("Open", func() {
		It("should answer a JSON hand-off with the session and a cookie", func() {
			body := `{"jwtToken":"tok","userRole":"ADMIN","employeeId":"7"}`
			req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Open(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var resp session.SessionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Role).To(Equal(session.RoleAdmin))
			Expect(resp.Redirect).To(Equal("/employees"))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal("sid"))
			Expect(cookies[0].HttpOnly).To(BeTrue())
		})

		It("should redirect a form hand-off to the caller's home", func() {
			form := url.Values{"jwtToken": {"tok"}, "userRole": {"EMPLOYEE"}, "employeeId": {"3"}}
			req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.Open(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/me"))
		})

		It("should bounce a form hand-off without a token back to login", func() {
			req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader("userRole=ADMIN"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.Open(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(HavePrefix("/login?notice="))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})

		It("should reject a malformed JSON hand-off", func() {
			req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader("{"))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.Open(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("should close the session on DELETE", func() {
		cookie := open("ADMIN")
		req := httptest.NewRequest(http.MethodDelete, "/session", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()

		handler.Close(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		_, err := service.Resolve(context.Background(), cookie.Value)
		Expect(err).To(HaveOccurred())
	})
})
