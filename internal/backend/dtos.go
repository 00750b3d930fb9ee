package backend

// loginRequest is the POST /api/Admin/login payload
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the POST /api/Admin/login success payload
type loginResponse struct {
	Token string `json:"token"`
}

// CreateCustomerRequest is the POST /api/customer payload.
// All three fields are required.
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateCustomerRequest is the PUT /api/customer/{id} payload.
// A nil field is omitted from the body, which the backend treats as
// "no change"; there is no way to clear a field through this request.
type UpdateCustomerRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateCustomerRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.PhoneNumber == nil
}
