package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tempmail/client-go/internal/apierrors"
)

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2023-05-01 12:00:00")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if got.Year() != 2023 || got.Month() != 5 || got.Day() != 1 {
		t.Errorf("date = %v, want 2023-05-01", got)
	}
	if got.Hour() != 12 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("time = %v, want 12:00:00", got)
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	inputs := []string{
		"2023/05/01 12:00:00",
		"2023-05-01T12:00:00",
		"2023-05-01 12:00:00Z",
		"2023-05-01 12:00:00.123",
		"2023-05-01 1:00:00",
		"2023-05-01  1:00:00",
		"2023-05-01 12:00:00 ",
		" 2023-05-01 12:00:00",
		"2023-13-01 12:00:00",
		"2023-02-30 12:00:00",
		"2023-05-01 24:00:00",
		"2023-05-01 12:60:00",
		"2023-05-01",
		"",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimestamp(in)
			if !errors.Is(err, apierrors.ErrMalformedTimestamp) {
				t.Errorf("ParseTimestamp(%q) error = %v, want ErrMalformedTimestamp", in, err)
			}
		})
	}
}

func TestTimestamp_JSON(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2018-06-08 14:33:55"`), &ts); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if ts.Format(TimestampLayout) != "2018-06-08 14:33:55" {
		t.Errorf("decoded = %v", ts.Time)
	}

	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"2018-06-08 14:33:55"` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestTimestamp_JSONNotString(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`1528468435`), &ts)
	if !errors.Is(err, apierrors.ErrMalformedTimestamp) {
		t.Errorf("Unmarshal() error = %v, want ErrMalformedTimestamp", err)
	}
}
