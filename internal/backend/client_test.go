package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(srv *httptest.Server) Client {
	return New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, testLogger())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "success",
			status:    http.StatusOK,
			body:      `{"token":"abc123"}`,
			wantToken: "abc123",
		},
		{
			name:    "invalid credentials surface raw payload",
			status:  http.StatusUnauthorized,
			body:    "Invalid username or password",
			wantErr: true,
			wantMsg: "Invalid username or password",
		},
		{
			name:    "missing token treated as failure",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/Admin/login" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				var req map[string]string
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode login body: %v", err)
				}
				if req["username"] != "admin" || req["password"] != "secret" {
					t.Errorf("unexpected credentials %v", req)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			token, err := newTestClient(srv).Login(context.Background(), "admin", "secret")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantMsg != "" {
					if got := models.UserMessage(err, "fallback"); got != tt.wantMsg {
						t.Errorf("UserMessage = %q, want %q", got, tt.wantMsg)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestListCustomers_QueryParams(t *testing.T) {
	tests := []struct {
		name       string
		query      models.ListQuery
		wantPage   string
		wantSize   string
		wantSearch string
		searchSent bool
	}{
		{
			name:     "first page no search",
			query:    models.ListQuery{Page: 0, PageSize: 10},
			wantPage: "1",
			wantSize: "10",
		},
		{
			name:       "search translated with 1-based page",
			query:      models.ListQuery{Page: 2, PageSize: 25, Search: "alice"},
			wantPage:   "3",
			wantSize:   "25",
			wantSearch: "alice",
			searchSent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				params := r.URL.Query()
				if got := params.Get("page"); got != tt.wantPage {
					t.Errorf("page = %q, want %q", got, tt.wantPage)
				}
				if got := params.Get("pageSize"); got != tt.wantSize {
					t.Errorf("pageSize = %q, want %q", got, tt.wantSize)
				}
				if _, present := params["search"]; present != tt.searchSent {
					t.Errorf("search param present = %v, want %v", present, tt.searchSent)
				}
				if tt.searchSent {
					if got := params.Get("search"); got != tt.wantSearch {
						t.Errorf("search = %q, want %q", got, tt.wantSearch)
					}
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("Authorization = %q, want Bearer tok", got)
				}
				w.Write([]byte(`{"data":[{"id":1,"name":"Alice","email":"a@x.com","phoneNumber":"111"}],"total":1}`))
			}))
			defer srv.Close()

			page, err := newTestClient(srv).ListCustomers(context.Background(), "tok", tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Total != 1 || len(page.Customers) != 1 {
				t.Errorf("page = %+v, want 1 customer and total 1", page)
			}
			if page.Customers[0].Name != "Alice" {
				t.Errorf("customer = %+v, want Alice", page.Customers[0])
			}
		})
	}
}

func TestUpdateCustomer_PartialBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/customer/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(body) != 1 {
			t.Errorf("body has %d fields, want only name: %v", len(body), body)
		}
		if body["name"] != "Bobby" {
			t.Errorf("name = %v, want Bobby", body["name"])
		}
		w.Write([]byte(`{"id":7,"name":"Bobby","email":"b@x.com","phoneNumber":"555"}`))
	}))
	defer srv.Close()

	name := "Bobby"
	updated, err := newTestClient(srv).UpdateCustomer(context.Background(), "tok", 7, UpdateCustomerRequest{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Bobby" {
		t.Errorf("updated name = %q, want Bobby", updated.Name)
	}
}

func TestCreateCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/customer" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req CreateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if req.Name != "Alice" || req.Email != "a@x.com" || req.PhoneNumber != "111" {
			t.Errorf("unexpected payload %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"name":"Alice","email":"a@x.com","phoneNumber":"111"}`))
	}))
	defer srv.Close()

	created, err := newTestClient(srv).CreateCustomer(context.Background(), "tok", CreateCustomerRequest{
		Name:        "Alice",
		Email:       "a@x.com",
		PhoneNumber: "111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("created ID = %d, want 3", created.ID)
	}
}

func TestDeleteCustomer(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestClient(srv).DeleteCustomer(context.Background(), "tok", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/customer/42" {
		t.Errorf("request = %s %s, want DELETE /api/customer/42", gotMethod, gotPath)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: "token expired", sentinel: models.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, body: "", sentinel: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).ListCustomers(context.Background(), "tok", models.ListQuery{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not wrap %v", err, tt.sentinel)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv).ListCustomers(context.Background(), "tok", models.ListQuery{})
	if !errors.Is(err, models.ErrBackendUnavailable) {
		t.Errorf("error %v does not wrap ErrBackendUnavailable", err)
	}
}
