package view

import (
	"strings"
	"testing"
)

func TestFormState_CreateRequest(t *testing.T) {
	tests := []struct {
		name        string
		form        FormState
		wantErr     bool
		wantMissing string
	}{
		{
			name: "all fields present",
			form: FormState{Name: "Alice", Email: "a@x.com", PhoneNumber: "111"},
		},
		{
			name:        "missing name",
			form:        FormState{Email: "a@x.com", PhoneNumber: "111"},
			wantErr:     true,
			wantMissing: "name",
		},
		{
			name:        "missing everything",
			form:        FormState{},
			wantErr:     true,
			wantMissing: "name, email, phone number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.form.CreateRequest()

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantMissing) {
					t.Errorf("error %q does not mention %q", err.Error(), tt.wantMissing)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Name != tt.form.Name || req.Email != tt.form.Email || req.PhoneNumber != tt.form.PhoneNumber {
				t.Errorf("request = %+v, want all form values", req)
			}
		})
	}
}

func TestFormState_UpdateRequest(t *testing.T) {
	tests := []struct {
		name      string
		form      FormState
		wantName  *string
		wantEmail *string
		wantPhone *string
	}{
		{
			name:     "only name set",
			form:     FormState{Name: "Bobby"},
			wantName: strPtr("Bobby"),
		},
		{
			name:      "all set",
			form:      FormState{Name: "A", Email: "a@x.com", PhoneNumber: "1"},
			wantName:  strPtr("A"),
			wantEmail: strPtr("a@x.com"),
			wantPhone: strPtr("1"),
		},
		{
			name: "all blank yields empty request",
			form: FormState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.form.UpdateRequest()

			checkPtr(t, "Name", req.Name, tt.wantName)
			checkPtr(t, "Email", req.Email, tt.wantEmail)
			checkPtr(t, "PhoneNumber", req.PhoneNumber, tt.wantPhone)

			wantEmpty := tt.wantName == nil && tt.wantEmail == nil && tt.wantPhone == nil
			if req.IsEmpty() != wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", req.IsEmpty(), wantEmpty)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func checkPtr(t *testing.T, field string, got, want *string) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s = %q, want omitted", field, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s omitted, want %q", field, *want)
		return
	}
	if *got != *want {
		t.Errorf("%s = %q, want %q", field, *got, *want)
	}
}
