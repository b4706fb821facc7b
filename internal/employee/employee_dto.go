package employee

type CreateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Role       string  `json:"role" binding:"omitempty,oneof=admin employee"`
}

type UpdateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Role       string  `json:"role"`
	QRCode     *string `json:"qr_code,omitempty"`
}

// EmployeeOption is the id/name pair the report filter dropdown consumes.
type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
