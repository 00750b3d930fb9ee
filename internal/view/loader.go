package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

// Loader fetches customer pages and keeps the last applied result.
// Every fetch carries a monotonically increasing sequence number; a
// response whose number is older than one already applied is discarded,
// so overlapping fetches cannot clobber a newer result with an older
// one. On a failed fetch the previously displayed page is kept.
type Loader struct {
	client backend.Client
	logger *slog.Logger

	mu         sync.Mutex
	issued     uint64
	appliedSeq uint64
	applied    *models.CustomerPage
}

// NewLoader creates a customer list loader.
func NewLoader(client backend.Client, logger *slog.Logger) *Loader {
	return &Loader{
		client: client,
		logger: logger,
	}
}

// Load fetches one page of customers. It returns the page to display:
// the fresh result when it is still the latest issued fetch, otherwise
// whatever newer result has already been applied. On error the last
// applied page is returned alongside the error so the screen does not
// lose its data.
func (l *Loader) Load(ctx context.Context, token string, q models.ListQuery) (*models.CustomerPage, error) {
	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	page, err := l.client.ListCustomers(ctx, token, q)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.logger.Error("failed to load customers",
			slog.Int("page", q.Page),
			slog.String("search", q.Search),
			slog.String("error", err.Error()),
		)
		return l.applied, err
	}

	if seq < l.appliedSeq {
		l.logger.Debug("discarding stale customer page",
			slog.Uint64("seq", seq),
			slog.Uint64("applied_seq", l.appliedSeq),
		)
		return l.applied, nil
	}

	l.appliedSeq = seq
	l.applied = page
	return page, nil
}

// Last returns the last applied page without fetching, or nil when
// nothing has loaded yet.
func (l *Loader) Last() *models.CustomerPage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applied
}
