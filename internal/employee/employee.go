package employee

import (
	employeeDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/employee"
)

type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	JobTitle  string `json:"jobTitle"`
	BirthDate string `json:"birthDate"`
	StartDate string `json:"startDate"`
	PhotoPath string `json:"photoPath,omitempty"`
}

func (e *Employee) HasPhoto() bool {
	return e.PhotoPath != ""
}

func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Page is one slice of the employee list as the service reports it.
type Page struct {
	Employees   []Employee
	CurrentPage int
	TotalPages  int
}

// Consistent reports whether currentPage < totalPages holds for a non-empty list.
func (p *Page) Consistent() bool {
	if p.CurrentPage < 0 || p.TotalPages < 0 {
		return false
	}
	return p.TotalPages == 0 || p.CurrentPage < p.TotalPages
}

func FromDataModel(e *employeeDatamodel.Employee) Employee {
	out := Employee{
		ID:        string(e.ID),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		JobTitle:  e.JobTitle,
		BirthDate: e.BirthDate,
		StartDate: e.StartDate,
	}
	if e.PhotoPath != nil {
		out.PhotoPath = *e.PhotoPath
	}
	return out
}

func PageFromDataModel(p *employeeDatamodel.Page) *Page {
	out := &Page{
		Employees:   make([]Employee, 0, len(p.Content)),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
	for i := range p.Content {
		out.Employees = append(out.Employees, FromDataModel(&p.Content[i]))
	}
	return out
}
