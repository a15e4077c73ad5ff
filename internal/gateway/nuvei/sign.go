package nuvei

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// timestampLayout is the gateway's day-month-year:hour:minute:second
// prefix; milliseconds are appended with a colon separator, which Go's
// layout syntax cannot express.
const timestampLayout = "02-01-2006:15:04:05"

// Timestamp formats t as DD-MM-YYYY:HH:MM:SS:mmm, the only timestamp
// shape the gateway accepts in DATETIME and in the signature input.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s:%03d", t.Format(timestampLayout), t.Nanosecond()/int(time.Millisecond))
}

// ParseTimestamp reads a gateway DATETIME back into a time.Time.
func ParseTimestamp(s string) (time.Time, error) {
	base := s
	ms := 0
	if len(s) == len(timestampLayout)+4 && s[len(timestampLayout)] == ':' {
		m, err := strconv.Atoi(s[len(timestampLayout)+1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		base = s[:len(timestampLayout)]
		ms = m
	}
	t, err := time.Parse(timestampLayout, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.Add(time.Duration(ms) * time.Millisecond), nil
}

// Sign computes the request digest the processor verifies: the MD5 hex of
// terminal id, order id, amount, timestamp and shared secret concatenated
// in that exact order with no separators. The digest covers the
// merchant+order+time tuple, not the card data. MD5 is what the remote
// processor expects; substituting a stronger hash breaks the protocol.
func Sign(terminalID, orderID, amount, timestamp, sharedSecret string) string {
	sum := md5.Sum([]byte(terminalID + orderID + amount + timestamp + sharedSecret))
	return hex.EncodeToString(sum[:])
}
