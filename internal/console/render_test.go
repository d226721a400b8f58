package console_test

import (
	"bytes"

	"github.com/frahmantamala/employee-admin/internal/console"
	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
	"github.com/frahmantamala/employee-admin/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RenderEmployees", func() {
	photoURL := func(p string) string { return "http://upstream.test/" + p }

	It("should render one row per employee in order", func() {
		rows := console.RenderEmployees([]employee.Employee{
			{ID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", JobTitle: "Engineer", BirthDate: "1815-12-10", StartDate: "2024-01-01"},
			{ID: "2", FirstName: "Alan"},
		}, photoURL)

		Expect(rows).To(HaveLen(2))
		Expect(rows[0].FirstName).To(Equal("Ada"))
		Expect(rows[0].DetailURL).To(Equal("/employees/1"))
		Expect(rows[1].FirstName).To(Equal("Alan"))
	})

	It("should show N/A for empty fields and No Photo without a photo", func() {
		rows := console.RenderEmployees([]employee.Employee{{ID: "9", FirstName: "Solo"}}, photoURL)

		row := rows[0]
		Expect(row.LastName).To(Equal("N/A"))
		Expect(row.Email).To(Equal("N/A"))
		Expect(row.JobTitle).To(Equal("N/A"))
		Expect(row.BirthDate).To(Equal("N/A"))
		Expect(row.StartDate).To(Equal("N/A"))
		Expect(row.HasPhoto).To(BeFalse())
	})

	It("should point the photo at the employee service", func() {
		rows := console.RenderEmployees([]employee.Employee{{ID: "1", PhotoPath: "photos/1.png"}}, photoURL)
		Expect(rows[0].HasPhoto).To(BeTrue())
		Expect(rows[0].PhotoURL).To(Equal("http://upstream.test/photos/1.png"))
	})

	It("should render nothing for an empty page", func() {
		rows := console.RenderEmployees(nil, photoURL)
		Expect(rows).NotTo(BeNil())
		Expect(rows).To(BeEmpty())
	})

	It("should give the same rows for the same page", func() {
		page := []employee.Employee{{ID: "1", FirstName: "Ada"}, {ID: "2", PhotoPath: "p.png"}}
		Expect(console.RenderEmployees(page, photoURL)).To(Equal(console.RenderEmployees(page, photoURL)))
	})

	It("should escape markup in employee fields", func() {
		tmpl, err := console.ParseTemplates()
		Expect(err).NotTo(HaveOccurred())

		rows := console.RenderEmployees([]employee.Employee{{ID: "1", FirstName: "<script>alert(1)</script>"}}, photoURL)

		var buf bytes.Buffer
		Expect(tmpl.ExecuteTemplate(&buf, "rows", rows)).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring("<script>"))
		Expect(buf.String()).To(ContainSubstring("&lt;script&gt;"))
		Expect(buf.String()).To(ContainSubstring("No Photo"))
	})
})

var _ = Describe("UpdatePagination", func() {
	DescribeTable("label and button states",
		func(current, total int, label string, prevDisabled, nextDisabled bool) {
			p := console.UpdatePagination(current, total)
			Expect(p).To(Equal(viewmodels.Pagination{
				Label:        label,
				CurrentPage:  current,
				TotalPages:   total,
				PrevDisabled: prevDisabled,
				NextDisabled: nextDisabled,
			}))
		},
		Entry("first of many", 0, 5, "Page 1 of 5", true, false),
		Entry("middle", 2, 5, "Page 3 of 5", false, false),
		Entry("last", 4, 5, "Page 5 of 5", false, true),
		Entry("only page", 0, 1, "Page 1 of 1", true, true),
		Entry("empty list", 0, 0, "Page 1 of 0", true, false),
	)
})
