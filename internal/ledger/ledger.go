// Package ledger keeps the in-memory record of approved advances. Records
// live for the process lifetime; persistence across restarts is out of scope.
package ledger

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger maps loan ids to immutable LoanRecords. Safe for concurrent use;
// an insert is atomic from a reader's perspective.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]LoanRecord
	cache   Cache
	logger  *zap.Logger
}

// New creates an empty Ledger. cache may be nil to disable read caching;
// a nil logger is replaced with a no-op.
func New(logger *zap.Logger, cache Cache) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		records: make(map[string]LoanRecord),
		cache:   cache,
		logger:  logger,
	}
}

// Record assigns a fresh id to the record, stores it, and returns the id.
func (l *Ledger) Record(ctx context.Context, record LoanRecord) string {
	record.LoanID = uuid.NewString()

	l.mu.Lock()
	l.records[record.LoanID] = record
	l.mu.Unlock()

	l.cacheSet(ctx, record)

	l.logger.Info("loan recorded",
		zap.String("op", "ledger.Record"),
		zap.String("loan_id", record.LoanID),
		zap.Float64("advance_amount", record.AdvanceAmount),
	)
	return record.LoanID
}

// Get returns the record for the given id, or a NotFoundError if absent.
func (l *Ledger) Get(ctx context.Context, loanID string) (LoanRecord, error) {
	if record, ok := l.cacheGet(ctx, loanID); ok {
		return record, nil
	}

	l.mu.RLock()
	record, ok := l.records[loanID]
	l.mu.RUnlock()

	if !ok {
		return LoanRecord{}, &NotFoundError{LoanID: loanID}
	}

	l.cacheSet(ctx, record)
	return record, nil
}

// Len reports the number of recorded loans.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func (l *Ledger) cacheGet(ctx context.Context, loanID string) (LoanRecord, bool) {
	if l.cache == nil {
		return LoanRecord{}, false
	}
	raw, ok := l.cache.Get(ctx, cacheKey(loanID))
	if !ok {
		return LoanRecord{}, false
	}
	var record LoanRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		l.logger.Warn("discarding undecodable cached loan record",
			zap.String("op", "ledger.Get"),
			zap.String("loan_id", loanID),
			zap.Error(err),
		)
		return LoanRecord{}, false
	}
	return record, true
}

func (l *Ledger) cacheSet(ctx context.Context, record LoanRecord) {
	if l.cache == nil {
		return
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, cacheKey(record.LoanID), string(raw)); err != nil {
		// Cache failures are non-fatal; the in-memory map is authoritative.
		l.logger.Warn("failed to cache loan record",
			zap.String("op", "ledger.Record"),
			zap.String("loan_id", record.LoanID),
			zap.Error(err),
		)
	}
}

func cacheKey(loanID string) string {
	return "loan:" + loanID
}
