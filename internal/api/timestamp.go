package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tempmail/client-go/internal/apierrors"
)

// TimestampLayout is the service's date format. It carries no zone offset.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses s in TimestampLayout. The wall-clock fields are kept
// exactly as sent; the returned time is placed in UTC only as a carrier and
// no zone conversion is applied.
func ParseTimestamp(s string) (time.Time, error) {
	// time.Parse accepts a one-digit hour, repeated spaces and trailing
	// fractional seconds for this layout. Only input that formats back to
	// itself is accepted.
	t, err := time.Parse(TimestampLayout, s)
	if err != nil || t.Format(TimestampLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", apierrors.ErrMalformedTimestamp, s)
	}
	return t, nil
}

// Timestamp is a time.Time that decodes from and encodes to TimestampLayout.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", apierrors.ErrMalformedTimestamp, data)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}
