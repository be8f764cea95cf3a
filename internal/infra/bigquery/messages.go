package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/kbyiringiro/momoverify/internal/domain"
	"github.com/kbyiringiro/momoverify/internal/store"
)

// MessageRow represents a payment message record in BigQuery.
type MessageRow struct {
	RawText         string    `bigquery:"raw_text"`          // REQUIRED
	TxID            string    `bigquery:"txid"`              // REQUIRED
	AmountRWF       int64     `bigquery:"amount_rwf"`        // REQUIRED
	PayerName       string    `bigquery:"payer_name"`        // NULLABLE (empty string)
	PhoneLastDigits string    `bigquery:"phone_last_digits"` // NULLABLE (empty string)
	ReceivedAt      time.Time `bigquery:"received_at"`       // REQUIRED TIMESTAMP
}

// rowFromRecord maps a domain PaymentRecord into the messages table schema.
func rowFromRecord(rec *domain.PaymentRecord) *MessageRow {
	return &MessageRow{
		RawText:         rec.RawText,
		TxID:            rec.TxID,
		AmountRWF:       rec.AmountRWF,
		PayerName:       rec.PayerName,
		PhoneLastDigits: rec.PhoneLastDigits,
		ReceivedAt:      rec.ReceivedAt,
	}
}

// recordFromRow maps a messages table row back into the domain struct.
func recordFromRow(row *MessageRow) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		RawText:         row.RawText,
		TxID:            row.TxID,
		AmountRWF:       row.AmountRWF,
		PayerName:       row.PayerName,
		PhoneLastDigits: row.PhoneLastDigits,
		ReceivedAt:      row.ReceivedAt,
	}
}

// BigQueryMessageRepository is the concrete implementation of
// store.MessageRepository that interacts with BigQuery. It holds a shared
// BigQuery client to avoid creating a new connection for each operation.
type BigQueryMessageRepository struct {
	client  *bigquery.Client
	project string
	dataset string
	table   string
}

// NewBigQueryMessageRepository creates a new instance of
// BigQueryMessageRepository with a shared BigQuery client.
func NewBigQueryMessageRepository(ctx context.Context, project, dataset, table string) (*BigQueryMessageRepository, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryMessageRepository: creating client: %w", err)
	}
	return &BigQueryMessageRepository{
		client:  client,
		project: project,
		dataset: dataset,
		table:   table,
	}, nil
}

// Close closes the BigQuery client connection. This should be called when
// the repository is no longer needed to release resources.
func (r *BigQueryMessageRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// InsertMessage delegates to InsertMessageWithClient with the shared client.
func (r *BigQueryMessageRepository) InsertMessage(ctx context.Context, rec *domain.PaymentRecord) error {
	return InsertMessageWithClient(ctx, r.client, r.project, r.dataset, r.table, rec)
}

// FindByTxID delegates to FindByTxIDWithClient with the shared client.
func (r *BigQueryMessageRepository) FindByTxID(ctx context.Context, txid string) (*domain.PaymentRecord, error) {
	return FindByTxIDWithClient(ctx, r.client, r.project, r.dataset, r.table, txid)
}

// Ensure BigQueryMessageRepository implements the repository interface.
var _ store.MessageRepository = (*BigQueryMessageRepository)(nil)
