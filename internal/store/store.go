package store

import (
	"context"

	"github.com/kbyiringiro/momoverify/internal/domain"
)

// MessageRepository provides an interface for payment-message persistence.
// The core needs only an append-only write and a lookup by transaction id.
type MessageRepository interface {
	// InsertMessage appends a single PaymentRecord. Records with an empty
	// TxID are rejected; no upsert semantics.
	InsertMessage(ctx context.Context, rec *domain.PaymentRecord) error

	// FindByTxID retrieves one record whose txid matches case-insensitively.
	// When several records share a txid the most recently received one is
	// returned. Returns (nil, nil) when no record matches.
	FindByTxID(ctx context.Context, txid string) (*domain.PaymentRecord, error)
}
