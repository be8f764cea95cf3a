package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/kbyiringiro/momoverify/internal/domain"
)

func TestInsertMessage_RequiresTxID(t *testing.T) {
	s := NewStore()

	err := s.InsertMessage(context.Background(), &domain.PaymentRecord{RawText: "no id here"})
	if err == nil {
		t.Fatal("Expected error inserting record without txid, got nil")
	}
}

func TestFindByTxID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec := &domain.PaymentRecord{
		RawText:    "TxId:ABC123 5,000 RWF",
		TxID:       "ABC123",
		AmountRWF:  5000,
		PayerName:  "Jane Smith",
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.InsertMessage(ctx, rec); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}

	got, err := s.FindByTxID(ctx, "ABC123")
	if err != nil {
		t.Fatalf("FindByTxID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record, got nil")
	}
	if got.TxID != "ABC123" || got.AmountRWF != 5000 {
		t.Errorf("Got record %+v, want txid=ABC123 amount=5000", got)
	}
}

func TestFindByTxID_CaseInsensitive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.InsertMessage(ctx, &domain.PaymentRecord{TxID: "AbC123"}); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}

	got, err := s.FindByTxID(ctx, "abc123")
	if err != nil {
		t.Fatalf("FindByTxID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected case-insensitive match, got nil")
	}
}

func TestFindByTxID_NotFound(t *testing.T) {
	s := NewStore()

	got, err := s.FindByTxID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("FindByTxID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown txid, got %+v", got)
	}
}

func TestFindByTxID_DuplicateReturnsMostRecent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	first := &domain.PaymentRecord{TxID: "DUP1", AmountRWF: 100}
	second := &domain.PaymentRecord{TxID: "DUP1", AmountRWF: 200}

	if err := s.InsertMessage(ctx, first); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}
	if err := s.InsertMessage(ctx, second); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}

	got, err := s.FindByTxID(ctx, "DUP1")
	if err != nil {
		t.Fatalf("FindByTxID failed: %v", err)
	}
	if got == nil || got.AmountRWF != 200 {
		t.Errorf("Expected the most recent record (amount 200), got %+v", got)
	}
}

func TestFindByTxID_ReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.InsertMessage(ctx, &domain.PaymentRecord{TxID: "T1", PayerName: "Jane"}); err != nil {
		t.Fatalf("InsertMessage failed: %v", err)
	}

	got, _ := s.FindByTxID(ctx, "T1")
	got.PayerName = "mutated"

	again, _ := s.FindByTxID(ctx, "T1")
	if again.PayerName != "Jane" {
		t.Errorf("Stored record was mutated through a returned copy: %+v", again)
	}
}
