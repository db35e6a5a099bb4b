// Package timex holds small time helpers shared across the project: the
// epoch-millisecond clock every persisted record uses, and a Duration type
// that unmarshals from both JSON strings ("3s") and integer nanoseconds.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// NowMillis returns the current UTC time as epoch milliseconds, the timestamp
// unit used by every persisted record and wire format in the store.
func NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

// Duration wraps time.Duration for JSON config files.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return errors.New("invalid duration")
	}
}
