package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/kbyiringiro/momoverify/internal/domain"
)

// InsertMessageWithClient appends a single payment message row using the
// provided BigQuery client. Writes are append-only; there is no upsert.
func InsertMessageWithClient(ctx context.Context, client *bigquery.Client, project, dataset, table string, rec *domain.PaymentRecord) error {
	if rec.TxID == "" {
		return fmt.Errorf("InsertMessageWithClient: txid is required")
	}

	// Use fully qualified table name to avoid project ID issues
	inserter := client.DatasetInProject(project, dataset).Table(table).Inserter()
	if err := inserter.Put(ctx, rowFromRecord(rec)); err != nil {
		return fmt.Errorf("InsertMessageWithClient: inserting row: %w", err)
	}

	return nil
}

// FindByTxIDWithClient retrieves one message by transaction id using the
// provided BigQuery client. Matching is case-insensitive; when several rows
// share a txid the most recently received one wins, keeping the lookup
// deterministic. Returns nil if no message with the given txid exists.
func FindByTxIDWithClient(ctx context.Context, client *bigquery.Client, project, dataset, table string, txid string) (*domain.PaymentRecord, error) {
	query := fmt.Sprintf(`
		SELECT
			raw_text,
			txid,
			amount_rwf,
			payer_name,
			phone_last_digits,
			received_at
		FROM `+"`%s.%s.%s`"+`
		WHERE LOWER(txid) = LOWER(@txid)
		ORDER BY received_at DESC
		LIMIT 1
	`, project, dataset, table)

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "txid", Value: txid},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindByTxIDWithClient: reading query: %w", err)
	}

	var row MessageRow
	err = it.Next(&row)
	if err == iterator.Done {
		// No message found with this txid
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByTxIDWithClient: reading row: %w", err)
	}

	return recordFromRow(&row), nil
}
