package view

import (
	"strings"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

// FormState holds the pending form fields of the add and edit dialogs.
// Values round-trip unmodified so a failed submit redisplays exactly
// what the admin typed.
type FormState struct {
	Name        string
	Email       string
	PhoneNumber string
}

// CreateRequest builds a create payload. All three fields are required;
// missing ones produce a single validation error naming them.
func (f FormState) CreateRequest() (backend.CreateCustomerRequest, error) {
	var missing []string
	if f.Name == "" {
		missing = append(missing, "name")
	}
	if f.Email == "" {
		missing = append(missing, "email")
	}
	if f.PhoneNumber == "" {
		missing = append(missing, "phone number")
	}
	if len(missing) > 0 {
		return backend.CreateCustomerRequest{}, models.ErrInvalidInput(
			strings.Join(missing, ", ") + " required",
		)
	}

	return backend.CreateCustomerRequest{
		Name:        f.Name,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
	}, nil
}

// UpdateRequest builds a partial update payload: only non-empty fields
// are included, so a field left blank means "no change" rather than
// "clear this field".
func (f FormState) UpdateRequest() backend.UpdateCustomerRequest {
	req := backend.UpdateCustomerRequest{}
	if f.Name != "" {
		req.Name = &f.Name
	}
	if f.Email != "" {
		req.Email = &f.Email
	}
	if f.PhoneNumber != "" {
		req.PhoneNumber = &f.PhoneNumber
	}
	return req
}
