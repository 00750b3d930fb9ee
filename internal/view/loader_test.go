package view

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

// gatedClient blocks each ListCustomers call until the test releases it,
// so response ordering can be controlled.
type gatedClient struct {
	mu      sync.Mutex
	started chan string
	gates   map[string]chan listResult
}

type listResult struct {
	page *models.CustomerPage
	err  error
}

func newGatedClient() *gatedClient {
	return &gatedClient{
		started: make(chan string, 8),
		gates:   make(map[string]chan listResult),
	}
}

func (c *gatedClient) gate(search string) chan listResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.gates[search]; !ok {
		c.gates[search] = make(chan listResult, 1)
	}
	return c.gates[search]
}

func (c *gatedClient) ListCustomers(ctx context.Context, token string, q models.ListQuery) (*models.CustomerPage, error) {
	gate := c.gate(q.Search)
	c.started <- q.Search
	res := <-gate
	return res.page, res.err
}

func (c *gatedClient) Login(ctx context.Context, username, password string) (string, error) {
	return "", errors.New("not implemented")
}
func (c *gatedClient) CreateCustomer(ctx context.Context, token string, req backend.CreateCustomerRequest) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}
func (c *gatedClient) UpdateCustomer(ctx context.Context, token string, id int64, req backend.UpdateCustomerRequest) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}
func (c *gatedClient) DeleteCustomer(ctx context.Context, token string, id int64) error {
	return errors.New("not implemented")
}
func (c *gatedClient) Health(ctx context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoader_StaleResponseDiscarded(t *testing.T) {
	client := newGatedClient()
	loader := NewLoader(client, testLogger())

	oldPage := &models.CustomerPage{Customers: []models.Customer{{ID: 1, Name: "Old"}}, Total: 1}
	newPage := &models.CustomerPage{Customers: []models.Customer{{ID: 2, Name: "New"}}, Total: 1}

	// First fetch is issued and left in flight.
	type loadResult struct {
		page *models.CustomerPage
		err  error
	}
	firstDone := make(chan loadResult, 1)
	go func() {
		page, err := loader.Load(context.Background(), "tok", models.ListQuery{Search: "old"})
		firstDone <- loadResult{page, err}
	}()
	<-client.started

	// Second fetch is issued after the first and completes first.
	secondDone := make(chan loadResult, 1)
	go func() {
		page, err := loader.Load(context.Background(), "tok", models.ListQuery{Search: "new"})
		secondDone <- loadResult{page, err}
	}()
	<-client.started
	client.gate("new") <- listResult{page: newPage}

	second := <-secondDone
	if second.err != nil {
		t.Fatalf("unexpected error: %v", second.err)
	}
	if second.page.Customers[0].Name != "New" {
		t.Errorf("second fetch returned %+v, want New", second.page.Customers[0])
	}

	// The first fetch lands late; its stale result must not overwrite
	// the newer one.
	client.gate("old") <- listResult{page: oldPage}
	first := <-firstDone
	if first.err != nil {
		t.Fatalf("unexpected error: %v", first.err)
	}
	if first.page.Customers[0].Name != "New" {
		t.Errorf("stale fetch returned %+v, want the newer page", first.page.Customers[0])
	}

	if last := loader.Last(); last == nil || last.Customers[0].Name != "New" {
		t.Errorf("Last() = %+v, want the newer page", last)
	}
}

func TestLoader_ErrorKeepsLastPage(t *testing.T) {
	client := newGatedClient()
	loader := NewLoader(client, testLogger())

	page := &models.CustomerPage{Customers: []models.Customer{{ID: 1, Name: "Alice"}}, Total: 1}

	client.gate("ok") <- listResult{page: page}
	got, err := loader.Load(context.Background(), "tok", models.ListQuery{Search: "ok"})
	<-client.started
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Customers[0].Name != "Alice" {
		t.Fatalf("loaded %+v, want Alice", got.Customers[0])
	}

	client.gate("boom") <- listResult{err: errors.New("backend down")}
	got, err = loader.Load(context.Background(), "tok", models.ListQuery{Search: "boom"})
	<-client.started
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got == nil || got.Customers[0].Name != "Alice" {
		t.Errorf("failed load returned %+v, want previously displayed page", got)
	}
}

func TestLoader_SequentialLoadsApplyInOrder(t *testing.T) {
	client := newGatedClient()
	loader := NewLoader(client, testLogger())

	for i, name := range []string{"first", "second"} {
		page := &models.CustomerPage{Customers: []models.Customer{{ID: int64(i), Name: name}}, Total: 1}
		client.gate(name) <- listResult{page: page}
		got, err := loader.Load(context.Background(), "tok", models.ListQuery{Search: name})
		<-client.started
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Customers[0].Name != name {
			t.Errorf("load %d returned %+v, want %s", i, got.Customers[0], name)
		}
	}
}
