package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the remote record id. The employee service emits it as a number on some
// deployments and as a string on others.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type Employee struct {
	ID        ID      `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	JobTitle  string  `json:"jobTitle"`
	BirthDate string  `json:"birthDate"`
	StartDate string  `json:"startDate"`
	PhotoPath *string `json:"photoPath,omitempty"`
}

type Page struct {
	Content     []Employee `json:"content"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

// Lookup is the body of GET /employee/{id}. It is normally a bare employee, but some
// service versions answer with a page wrapper instead.
type Lookup struct {
	Employee *Employee
	Page     *Page
}

func (l *Lookup) UnmarshalJSON(data []byte) error {
	// null means the service has no such record
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.Employee, l.Page = nil, nil
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if _, ok := fields["content"]; ok {
		var p Page
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		l.Page = &p
		return nil
	}
	var e Employee
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	l.Employee = &e
	return nil
}

// AsPage adapts a single record to a one-row page.
func (l Lookup) AsPage() Page {
	if l.Page != nil {
		return *l.Page
	}
	if l.Employee == nil {
		return Page{Content: []Employee{}}
	}
	return Page{Content: []Employee{*l.Employee}, CurrentPage: 0, TotalPages: 1}
}
