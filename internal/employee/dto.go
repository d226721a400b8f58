package employee

import "net/url"

// CreateEmployeeDTO is the add-employee form. Every field except the photo is
// required, matching the form's own constraints.
type CreateEmployeeDTO struct {
	FirstName   string `form:"firstName" validate:"required"`
	LastName    string `form:"lastName" validate:"required"`
	Email       string `form:"email" validate:"required"`
	JobTitle    string `form:"jobTitle" validate:"required"`
	BirthDate   string `form:"birthDate" validate:"required"`
	StartDate   string `form:"startDate" validate:"required"`
	AddressType string `form:"addressTypeDropdown" validate:"required"`
	// PhotoName is the chosen file's name, empty when no file was chosen.
	PhotoName string `form:"-"`
}

// Query builds the creation request parameters. photo is sent only when a file
// was chosen.
func (d CreateEmployeeDTO) Query() url.Values {
	q := url.Values{}
	q.Set("firstName", d.FirstName)
	q.Set("lastName", d.LastName)
	q.Set("email", d.Email)
	q.Set("jobTitle", d.JobTitle)
	q.Set("birthDate", d.BirthDate)
	q.Set("startDate", d.StartDate)
	q.Set("addressType", d.AddressType)
	if d.PhotoName != "" {
		q.Set("photo", d.PhotoName)
	}
	return q
}
