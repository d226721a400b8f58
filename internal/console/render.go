package console

import (
	"fmt"
	"net/url"

	"github.com/frahmantamala/employee-admin/internal/console/viewmodels"
	"github.com/frahmantamala/employee-admin/internal/employee"
)

const missing = "N/A"

// RenderEmployees projects a page into table rows, replacing whatever was there.
// It is pure: the same page always yields the same rows.
func RenderEmployees(employees []employee.Employee, photoURL func(string) string) []viewmodels.EmployeeRow {
	rows := make([]viewmodels.EmployeeRow, 0, len(employees))
	for i := range employees {
		rows = append(rows, renderRow(&employees[i], photoURL))
	}
	return rows
}

func renderRow(e *employee.Employee, photoURL func(string) string) viewmodels.EmployeeRow {
	row := viewmodels.EmployeeRow{
		ID:        e.ID,
		FirstName: orMissing(e.FirstName),
		LastName:  orMissing(e.LastName),
		Email:     orMissing(e.Email),
		JobTitle:  orMissing(e.JobTitle),
		BirthDate: orMissing(e.BirthDate),
		StartDate: orMissing(e.StartDate),
		DetailURL: "/employees/" + url.PathEscape(e.ID),
	}
	if e.HasPhoto() && photoURL != nil {
		row.HasPhoto = true
		row.PhotoURL = photoURL(e.PhotoPath)
	}
	return row
}

// UpdatePagination derives the label and button states from a response.
func UpdatePagination(currentPage, totalPages int) viewmodels.Pagination {
	return viewmodels.Pagination{
		Label:        fmt.Sprintf("Page %d of %d", currentPage+1, totalPages),
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		PrevDisabled: currentPage == 0,
		NextDisabled: currentPage+1 == totalPages,
	}
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
