// Package view models the management screen's interaction state: the
// active dialog, its form fields and the paginated list of customers.
package view

import (
	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

// DialogMode identifies the active modal form on the management screen.
type DialogMode int

// Dialog modes. Exactly one is active at a time; add, edit and delete
// are only reachable from closed.
const (
	ModeClosed DialogMode = iota
	ModeAdd
	ModeEdit
	ModeDelete
)

func (m DialogMode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeDelete:
		return "delete"
	default:
		return "closed"
	}
}

// Dialog is the state of the modal form. Selected is non-nil exactly
// when Mode is ModeEdit or ModeDelete; the constructors below are the
// only way handlers build one, so an edit or delete dialog without a
// selected record cannot be represented.
type Dialog struct {
	Mode     DialogMode
	Selected *models.Customer
	Form     FormState
	Err      string
}

// Closed returns the closed dialog with empty form fields and no
// selected customer.
func Closed() Dialog {
	return Dialog{Mode: ModeClosed}
}

// OpenAdd opens the add dialog with cleared form fields.
func OpenAdd() Dialog {
	return Dialog{Mode: ModeAdd}
}

// OpenEdit opens the edit dialog prefilled from the selected record.
func OpenEdit(c *models.Customer) Dialog {
	return Dialog{
		Mode:     ModeEdit,
		Selected: c,
		Form: FormState{
			Name:        c.Name,
			Email:       c.Email,
			PhoneNumber: c.PhoneNumber,
		},
	}
}

// OpenDelete opens the delete confirmation dialog for the selected
// record. No form fields are involved.
func OpenDelete(c *models.Customer) Dialog {
	return Dialog{Mode: ModeDelete, Selected: c}
}

// RetryAdd reopens the add dialog after a failed create, preserving the
// entered values and showing the inline error.
func RetryAdd(form FormState, errMsg string) Dialog {
	return Dialog{Mode: ModeAdd, Form: form, Err: errMsg}
}

// RetryEdit reopens the edit dialog after a failed update, preserving
// the entered values and showing the inline error.
func RetryEdit(c *models.Customer, form FormState, errMsg string) Dialog {
	return Dialog{Mode: ModeEdit, Selected: c, Form: form, Err: errMsg}
}

// IsOpen reports whether any modal form is active.
func (d Dialog) IsOpen() bool {
	return d.Mode != ModeClosed
}
