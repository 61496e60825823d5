package roster

import (
	"context"

	"github.com/google/uuid"
)

// IPDShiftRepository persists inpatient shift headcounts.
type IPDShiftRepository interface {
	Upsert(ctx context.Context, s *IPDShift) error
	ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*IPDShift, error)
	ListByWardDate(ctx context.Context, wardID uuid.UUID, date string) ([]*IPDShift, error)
	ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*IPDShift, error)
	LatestDate(ctx context.Context) (string, error)
}

// OPDShiftRepository persists outpatient shift records.
type OPDShiftRepository interface {
	Upsert(ctx context.Context, s *OPDShift) error
	ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*OPDShift, error)
	ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*OPDShift, error)
	LatestDate(ctx context.Context) (string, error)
}

// SummaryRepository persists per-ward daily summaries.
type SummaryRepository interface {
	Upsert(ctx context.Context, s *DailySummary) error
	ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*DailySummary, error)
	ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*DailySummary, error)
	LatestDate(ctx context.Context) (string, error)
}

// TxRunner runs a function inside a single database transaction. Repository
// calls made with the context it passes join that transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
