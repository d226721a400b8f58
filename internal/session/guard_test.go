package session_test

import (
	"errors"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Guard", func() {
	var guard session.Guard

	BeforeEach(func() {
		guard = session.NewGuard("/", "/login")
	})

	It("should send a caller without a session to the index page", func() {
		d := guard.CheckAdmin(nil)

		Expect(d.Allowed).To(BeFalse())
		Expect(d.Notice).To(Equal("You need to log in first."))
		Expect(d.Redirect).To(Equal("/?notice=You+need+to+log+in+first."))
		Expect(errors.Is(d.Err, internal.ErrSessionMissing)).To(BeTrue())
	})

	It("should treat an empty token as no session", func() {
		d := guard.CheckAdmin(&session.Session{Role: session.RoleAdmin})
		Expect(d.Allowed).To(BeFalse())
		Expect(errors.Is(d.Err, internal.ErrSessionMissing)).To(BeTrue())
	})

	It("should send a non-admin to the login page", func() {
		d := guard.CheckAdmin(&session.Session{Token: "tok", Role: "EMPLOYEE"})

		Expect(d.Allowed).To(BeFalse())
		Expect(d.Notice).To(Equal("You must be an admin to access this page."))
		Expect(d.Redirect).To(HavePrefix("/login?notice="))
		Expect(errors.Is(d.Err, internal.ErrNotAdmin)).To(BeTrue())
	})

	It("should let an admin through", func() {
		d := guard.CheckAdmin(&session.Session{Token: "tok", Role: session.RoleAdmin})
		Expect(d.Allowed).To(BeTrue())
		Expect(d.Redirect).To(BeEmpty())
	})

	It("should let any role through the session-only check", func() {
		Expect(guard.CheckSession(&session.Session{Token: "tok", Role: "EMPLOYEE"}).Allowed).To(BeTrue())
		Expect(guard.CheckSession(nil).Allowed).To(BeFalse())
	})

	It("should keep existing query parameters on the redirect target", func() {
		Expect(session.WithNotice("/login?next=%2Femployees", "hi")).To(Equal("/login?next=%2Femployees&notice=hi"))
	})
})
