package domain

import (
	"time"
)

// PaymentRecord represents one mobile-money payment notification extracted
// from a raw SMS message. This is a domain struct, not a storage row; the
// store adapter maps it into the messages table schema.
// A record is created once by the extractor and is read-only afterward.
type PaymentRecord struct {
	RawText         string    `json:"raw_text"`          // original message, unmodified
	TxID            string    `json:"txid"`              // mandatory lookup key
	AmountRWF       int64     `json:"amount_rwf"`        // 0 when unparseable, never negative
	PayerName       string    `json:"payer_name"`        // possibly empty
	PhoneLastDigits string    `json:"phone_last_digits"` // 2-3 digit suffix, possibly empty
	ReceivedAt      time.Time `json:"received_at"`       // ingestion time, UTC
}
