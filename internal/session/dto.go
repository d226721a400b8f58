package session

// HandoffDTO is what the login flow posts once it holds a token.
type HandoffDTO struct {
	JWTToken   string `json:"jwtToken" form:"jwtToken" validate:"required"`
	UserRole   string `json:"userRole" form:"userRole"`
	EmployeeID string `json:"employeeId" form:"employeeId"`
}

type SessionResponse struct {
	Role       Role   `json:"role"`
	EmployeeID string `json:"employeeId,omitempty"`
	ExpiresAt  string `json:"expiresAt"`
	Redirect   string `json:"redirect"`
}
