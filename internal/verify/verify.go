package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbyiringiro/momoverify/internal/store"
)

// Status is the terminal outcome of a verification. There are no
// intermediate states; verification is a pure function over store state.
type Status string

const (
	StatusApproved    Status = "approved"
	StatusNotApproved Status = "not_approved"
)

// Result carries the verification outcome. AmountRWF and TxID are populated
// only on approval.
type Result struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	AmountRWF int64  `json:"amount_rwf,omitempty"`
	TxID      string `json:"txid,omitempty"`
}

// Verifier decides whether a claimed payment matches a stored record.
type Verifier struct {
	repo store.MessageRepository
}

// New creates a Verifier backed by the given message repository.
func New(repo store.MessageRepository) *Verifier {
	return &Verifier{repo: repo}
}

// Verify looks up the claimed transaction id and checks the claimed name and
// phone number against the stored record. A non-match is a Result, not an
// error; only store failures are returned as errors.
//
// Name matching is a case-insensitive substring test and the phone check
// accepts the last 2 or 3 digits of the claimed number: the SMS text
// truncates names and masks phone numbers, so exact equality would reject
// legitimate payments.
func (v *Verifier) Verify(ctx context.Context, txid, name, phone string) (Result, error) {
	txid = strings.TrimSpace(txid)
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if txid == "" || name == "" || phone == "" {
		return notApproved("name, phone_number, and txid are required."), nil
	}

	rec, err := v.repo.FindByTxID(ctx, txid)
	if err != nil {
		return Result{}, fmt.Errorf("verify: lookup txid %q: %w", txid, err)
	}
	if rec == nil {
		return notApproved("TxId not found."), nil
	}

	// Name check: claimed name must appear within the stored payer name.
	// A record without a payer name fails closed.
	recName := strings.TrimSpace(rec.PayerName)
	if recName == "" || !strings.Contains(strings.ToLower(recName), strings.ToLower(name)) {
		return notApproved("Name does not match."), nil
	}

	// Phone check: a missing stored suffix does not block approval.
	recLast := strings.TrimSpace(rec.PhoneLastDigits)
	if recLast != "" && recLast != lastN(phone, 2) && recLast != lastN(phone, 3) {
		return notApproved("Phone digits do not match."), nil
	}

	return Result{
		Status:    StatusApproved,
		Message:   "Payment verified.",
		AmountRWF: rec.AmountRWF,
		TxID:      rec.TxID,
	}, nil
}

func notApproved(msg string) Result {
	return Result{Status: StatusNotApproved, Message: msg}
}

// lastN returns the last n characters of s, or s itself when shorter.
func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
