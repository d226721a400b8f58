package viewmodels

// EmployeeRow is one rendered table row. Empty source fields already read "N/A".
type EmployeeRow struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	JobTitle  string
	BirthDate string
	StartDate string
	HasPhoto  bool
	PhotoURL  string
	DetailURL string
}

// Pagination contains pagination metadata for the employee table.
type Pagination struct {
	Label        string
	CurrentPage  int
	TotalPages   int
	PrevDisabled bool
	NextDisabled bool
}

// EmployeeForm holds the add-employee values retained between submissions.
type EmployeeForm struct {
	FirstName   string
	LastName    string
	Email       string
	JobTitle    string
	BirthDate   string
	StartDate   string
	AddressType string
	Errors      map[string]string
}

func (f EmployeeForm) Error(field string) string {
	return f.Errors[field]
}

type EmployeesPage struct {
	Rows       []EmployeeRow
	Pagination Pagination
	FormOpen   bool
	Form       EmployeeForm
	Alert      string
	Loaded     bool
}

// ShowTrigger is the inverse of FormOpen; the add button and the form are never
// visible together.
func (p EmployeesPage) ShowTrigger() bool {
	return !p.FormOpen
}

type EmployeeDetail struct {
	Employee EmployeeRow
	FullName string
	BackURL  string
}

type SelfPage struct {
	Rows []EmployeeRow
}

type IndexPage struct {
	Notice    string
	LoginPath string
}

// AddressTypes lists the address type options offered by the form.
var AddressTypes = []string{"HOME", "WORK", "OTHER"}

type ErrorPage struct {
	Status  int
	Message string
	BackURL string
}
