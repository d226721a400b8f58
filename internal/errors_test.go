package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/employee-admin/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should match sentinels through wrapping and copies", func() {
		cause := errors.New("token expired")
		err := fmt.Errorf("resolve: %w", internal.ErrSessionExpired.WithCause(cause))

		Expect(errors.Is(err, internal.ErrSessionExpired)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrSessionMissing)).To(BeFalse())
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(internal.ErrSessionExpired.Cause).To(BeNil())
	})

	It("should carry the guard notices verbatim", func() {
		Expect(internal.ErrSessionMissing.Message).To(Equal("You need to log in first."))
		Expect(internal.ErrNotAdmin.Message).To(Equal("You must be an admin to access this page."))
	})

	It("should report the first field error as its message", func() {
		err := internal.NewValidationFieldErrors([]internal.ValidationError{
			{Field: "firstName", Message: "firstName is required"},
			{Field: "email", Message: "email is required"},
		})

		Expect(err.Error()).To(Equal("firstName is required"))
		Expect(err.GetDetailedMessage()).To(Equal("firstName is required; email is required"))
		Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should serialize without the cause", func() {
		status, body := internal.ErrNotAdmin.WithCause(errors.New("secret detail")).ToHTTPResponse()
		Expect(status).To(Equal(http.StatusForbidden))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(MatchJSON(`{"error":{"type":"FORBIDDEN","code":"NOT_ADMIN","message":"You must be an admin to access this page."}}`))
	})

	It("should unwrap through IsAppError", func() {
		wrapped := fmt.Errorf("outer: %w", internal.ErrEmployeeNotFound)
		appErr, ok := internal.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeEmployeeNotFound))

		_, ok = internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})
})
