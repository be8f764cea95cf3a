package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kbyiringiro/momoverify/internal/domain"
)

// ErrNoTxID is returned by Extract when no transaction id can be located in
// the message. It is the only hard failure; every other field degrades to
// its zero value instead of failing.
var ErrNoTxID = errors.New("extract: no transaction id found in message")

// The vendor template is loose: extra spaces, masked digits and alternate
// field order all occur in the wild, so each field is matched independently
// against the full text.
var (
	txidRe          = regexp.MustCompile(`(?i)TxId[:\s]*([A-Za-z0-9.\-]+)`)
	txidStructured  = regexp.MustCompile(`(?i)\*\d+\*TxId:([A-Za-z0-9.\-]+)\*`)
	amountNumFirst  = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*|\d+)\s*RWF`)
	amountCodeFirst = regexp.MustCompile(`(?i)RWF\s*(\d{1,3}(?:,\d{3})*|\d+)`)
	payerNameRe     = regexp.MustCompile(`(?i)from\s+([A-Za-z][A-Za-z ]+?)\s*\(`)
	phoneSuffixRe   = regexp.MustCompile(`\((?:[*\d]*?)(\d{2,3})\)`)
)

// Extract parses a raw SMS message into a PaymentRecord. The record is
// stamped with the ingestion time, not any timestamp embedded in the text.
func Extract(raw string) (*domain.PaymentRecord, error) {
	txid := TxID(raw)
	if txid == "" {
		return nil, ErrNoTxID
	}

	return &domain.PaymentRecord{
		RawText:         raw,
		TxID:            txid,
		AmountRWF:       AmountRWF(raw),
		PayerName:       PayerName(raw),
		PhoneLastDigits: PhoneLastDigits(raw),
		ReceivedAt:      time.Now().UTC(),
	}, nil
}

// TxID returns the transaction id embedded in the text, or "" when absent.
// A plain "TxId:<token>" marker is tried first, then the structured
// "*<code>*TxId:<token>*" form used by some vendor variants.
func TxID(text string) string {
	m := txidRe.FindStringSubmatch(text)
	if m == nil {
		m = txidStructured.FindStringSubmatch(text)
	}
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// AmountRWF returns the amount in Rwandan Francs as an integer, or 0 when
// no parseable amount is present. Thousands separators are stripped.
func AmountRWF(text string) int64 {
	m := amountNumFirst.FindStringSubmatch(text)
	if m == nil {
		m = amountCodeFirst.FindStringSubmatch(text)
	}
	if m == nil {
		return 0
	}

	value, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// PayerName returns the sender name preceding the masked phone number,
// e.g. "from Jane Smith (07****321)" yields "Jane Smith". Empty when the
// pattern does not occur.
func PayerName(text string) string {
	m := payerNameRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// PhoneLastDigits returns the 2-3 trailing digits of a parenthesized masked
// phone number, e.g. "(07****321)" yields "321". Empty when absent.
func PhoneLastDigits(text string) string {
	m := phoneSuffixRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
