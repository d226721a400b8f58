package console_test

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/console"
	"github.com/frahmantamala/employee-admin/internal/core/events"
	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/employeeservice"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		fake       *fakeEmployees
		publisher  *fakePublisher
		states     *console.StateStore
		controller *console.Controller
		sess       *session.Session
		ctx        context.Context
	)

	BeforeEach(func() {
		fake = newFakeEmployees(10)
		publisher = &fakePublisher{}
		states = console.NewStateStore()
		controller = console.NewController(fake, states, publisher, logger.Discard())
		sess = &session.Session{ID: "s1", Token: "tok", Role: session.RoleAdmin}
		ctx = context.Background()
	})

	It("should load the first page on entry", func() {
		page := controller.Load(ctx, sess)

		Expect(fake.Loads()).To(Equal([]int{0}))
		Expect(page.Loaded).To(BeTrue())
		Expect(page.Rows).To(HaveLen(1))
		Expect(page.Pagination.Label).To(Equal("Page 1 of 10"))
		Expect(page.Pagination.PrevDisabled).To(BeTrue())
		Expect(page.ShowTrigger()).To(BeTrue())
		Expect(page.FormOpen).To(BeFalse())
	})

	It("should step forward one page per Next", func() {
		controller.Load(ctx, sess)
		fake.ResetLoads()

		labels := []string{}
		for i := 0; i < 3; i++ {
			labels = append(labels, controller.Next(ctx, sess).Pagination.Label)
		}

		Expect(fake.Loads()).To(Equal([]int{1, 2, 3}))
		Expect(labels).To(Equal([]string{"Page 2 of 10", "Page 3 of 10", "Page 4 of 10"}))
		Expect(states.Get(sess.ID).CurrentPage()).To(Equal(3))
	})

	It("should do nothing on Prev at the first page", func() {
		controller.Load(ctx, sess)
		fake.ResetLoads()

		page := controller.Prev(ctx, sess)

		Expect(fake.Loads()).To(BeEmpty())
		Expect(page.Pagination.Label).To(Equal("Page 1 of 10"))
		Expect(states.Get(sess.ID).CurrentPage()).To(Equal(0))
	})

	It("should step back after moving forward", func() {
		controller.Next(ctx, sess)
		controller.Next(ctx, sess)
		fake.ResetLoads()

		page := controller.Prev(ctx, sess)

		Expect(fake.Loads()).To(Equal([]int{1}))
		Expect(page.Pagination.Label).To(Equal("Page 2 of 10"))
	})

	It("should toggle the form and the trigger together", func() {
		shown := controller.Show(sess)
		Expect(shown.FormOpen).To(BeTrue())
		Expect(shown.ShowTrigger()).To(BeFalse())

		cancelled := controller.Cancel(sess)
		Expect(cancelled.FormOpen).To(BeFalse())
		Expect(cancelled.ShowTrigger()).To(BeTrue())
		Expect(fake.Loads()).To(BeEmpty())
	})

	Describe("Submit", func() {
		BeforeEach(func() {
			controller.Load(ctx, sess)
			controller.Next(ctx, sess)
			controller.Show(sess)
			fake.ResetLoads()
		})

		It("should close the form and reload once at the tracked page when created", func() {
			page := controller.Submit(ctx, sess, validDTO())

			Expect(fake.added).To(HaveLen(1))
			Expect(page.Alert).To(Equal(console.AlertEmployeeAdded))
			Expect(page.FormOpen).To(BeFalse())
			Expect(page.ShowTrigger()).To(BeTrue())
			Expect(fake.Loads()).To(Equal([]int{1}))
			Expect(page.Pagination.Label).To(Equal("Page 2 of 10"))
		})

		It("should keep the submitted values when the form reopens", func() {
			controller.Submit(ctx, sess, validDTO())

			page := controller.Show(sess)
			Expect(page.FormOpen).To(BeTrue())
			Expect(page.Form.FirstName).To(Equal("Ada"))
			Expect(page.Form.Email).To(Equal("ada@example.com"))

			page = controller.Cancel(sess)
			Expect(page.Form.FirstName).To(BeEmpty())
		})

		It("should publish an employee added event", func() {
			controller.Submit(ctx, sess, validDTO())

			published := publisher.Events()
			Expect(published).To(HaveLen(1))
			added, ok := published[0].(*events.EmployeeAddedEvent)
			Expect(ok).To(BeTrue())
			Expect(added.Email).To(Equal("ada@example.com"))
			Expect(added.AddedByRole).To(Equal("ADMIN"))
		})

		It("should show the alert only once", func() {
			controller.Submit(ctx, sess, validDTO())
			Expect(controller.Cancel(sess).Alert).To(BeEmpty())
		})

		It("should keep the form open and show the service message when rejected", func() {
			fake.addErr = &employeeservice.StatusError{StatusCode: 400, Body: "Email exists"}

			page := controller.Submit(ctx, sess, validDTO())

			Expect(page.Alert).To(Equal("Error: Email exists"))
			Expect(page.FormOpen).To(BeTrue())
			Expect(page.ShowTrigger()).To(BeFalse())
			Expect(page.Form.Email).To(Equal("ada@example.com"))
			Expect(fake.Loads()).To(BeEmpty())
			Expect(publisher.Events()).To(BeEmpty())
		})

		It("should attach field errors when validation fails", func() {
			fake.addErr = internal.NewValidationFieldErrors([]internal.ValidationError{
				{Field: "email", Message: "email is required", Code: "required"},
			})

			page := controller.Submit(ctx, sess, employee.CreateEmployeeDTO{FirstName: "Ada"})

			Expect(page.FormOpen).To(BeTrue())
			Expect(page.Form.Error("email")).To(Equal("email is required"))
			Expect(page.Form.FirstName).To(Equal("Ada"))
			Expect(page.Alert).To(BeEmpty())
		})

		It("should leave everything in place when the service is unreachable", func() {
			fake.addErr = fmt.Errorf("%w: dial tcp", employeeservice.ErrTransport)

			page := controller.Submit(ctx, sess, validDTO())

			Expect(page.Alert).To(BeEmpty())
			Expect(page.FormOpen).To(BeTrue())
			Expect(fake.Loads()).To(BeEmpty())
		})
	})

	It("should keep the previous rows when a load fails", func() {
		first := controller.Load(ctx, sess)
		fake.loadErr = employeeservice.ErrTransport

		page := controller.Next(ctx, sess)

		Expect(page.Rows).To(Equal(first.Rows))
		Expect(page.Pagination.Label).To(Equal("Page 1 of 10"))
	})

	It("should drop a response that arrives after a newer one", func() {
		controller.Load(ctx, sess)
		release := make(chan struct{})
		fake.block[1] = release

		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			defer close(done)
			controller.Next(ctx, sess)
		}()
		Eventually(fake.started).Should(Receive(Equal(1)))

		latest := controller.Next(ctx, sess)
		Expect(latest.Pagination.Label).To(Equal("Page 3 of 10"))

		close(release)
		Eventually(done).Should(BeClosed())

		page := controller.Cancel(sess)
		Expect(page.Pagination.Label).To(Equal("Page 3 of 10"))
		Expect(page.Rows[0].ID).To(Equal("e2"))
	})

	It("should render a single record for its detail page", func() {
		fake.record = &employee.Employee{ID: "7", FirstName: "Grace", LastName: "Hopper"}

		detail, err := controller.Detail(ctx, sess, "7")

		Expect(err).NotTo(HaveOccurred())
		Expect(detail.FullName).To(Equal("Grace Hopper"))
		Expect(detail.Employee.Email).To(Equal("N/A"))
		Expect(detail.BackURL).To(Equal("/employees"))
	})

	It("should show the caller's own record without touching the console state", func() {
		fake.record = &employee.Employee{ID: "3", FirstName: "Own"}

		page, err := controller.Self(ctx, &session.Session{ID: "s2", Token: "tok", EmployeeID: "3"})

		Expect(err).NotTo(HaveOccurred())
		Expect(page.Rows).To(HaveLen(1))
		Expect(fake.Loads()).To(BeEmpty())
	})
})

var _ = Describe("StateStore", func() {
	It("should keep one state per session", func() {
		store := console.NewStateStore()
		Expect(store.Get("a")).To(BeIdenticalTo(store.Get("a")))
		Expect(store.Get("a")).NotTo(BeIdenticalTo(store.Get("b")))
		Expect(store.Len()).To(Equal(2))
	})

	It("should drop a state when its session is removed", func() {
		store := console.NewStateStore()
		store.Get("a")

		Expect(store.HandleSessionRemoved(context.Background(), events.NewSessionRemovedEvent("a"))).To(Succeed())
		Expect(store.Len()).To(BeZero())
	})
})
