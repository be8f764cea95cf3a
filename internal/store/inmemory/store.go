package inmemory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kbyiringiro/momoverify/internal/domain"
	"github.com/kbyiringiro/momoverify/internal/store"
)

// Store is an in-memory implementation of MessageRepository.
// It keeps records in insertion order and is safe for concurrent use.
// Data is lost on service restart - for persistence, use the BigQuery store.
type Store struct {
	mu      sync.RWMutex
	records []*domain.PaymentRecord
}

// NewStore creates a new in-memory message store.
func NewStore() *Store {
	return &Store{}
}

// InsertMessage implements the MessageRepository interface.
func (s *Store) InsertMessage(ctx context.Context, rec *domain.PaymentRecord) error {
	if rec.TxID == "" {
		return fmt.Errorf("inmemory: txid is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external modifications.
	recCopy := *rec
	s.records = append(s.records, &recCopy)

	return nil
}

// FindByTxID implements the MessageRepository interface. The scan runs
// newest-first so duplicate txids resolve to the most recent insertion,
// matching the ordering the BigQuery store applies.
func (s *Store) FindByTxID(ctx context.Context, txid string) (*domain.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		if strings.EqualFold(s.records[i].TxID, txid) {
			recCopy := *s.records[i]
			return &recCopy, nil
		}
	}

	return nil, nil
}

// Ensure Store implements MessageRepository interface.
var _ store.MessageRepository = (*Store)(nil)
