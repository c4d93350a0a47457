// Package models defines server-side data models persisted in the database
// and exchanged as JSON.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
)

// Date is a calendar date without a time zone. On the wire and in SQL
// parameters it is "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(common.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, common.Validationf("invalid date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(common.DateLayout)
}

func (d Date) Equal(o Date) bool {
	return d.String() == o.String()
}

// Days returns the number of days since the Unix epoch.
func (d Date) Days() float64 {
	return float64(d.Unix()) / 86400
}

func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return common.Validationf("invalid date %s", string(b))
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Date())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(common.DateLayout) {
		s = s[:len(common.DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Number is a nullable float. When decoding JSON it accepts numbers and
// numeric strings; anything else decodes as null instead of failing.
// NaN and infinities are never valid.
type Number struct {
	Float64 float64
	Valid   bool
}

func NumberOf(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Float64: v, Valid: true}
}

func NumberPtr(v *float64) Number {
	if v == nil {
		return Number{}
	}
	return NumberOf(*v)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch value := v.(type) {
	case float64:
		*n = NumberOf(value)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			*n = NumberOf(f)
		}
	}
	return nil
}

func (n Number) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

// Ptr returns nil for null.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func (n *Number) Scan(src any) error {
	*n = Number{}
	switch v := src.(type) {
	case nil:
		return nil
	case float64:
		*n = NumberOf(v)
	case float32:
		*n = NumberOf(float64(v))
	case int64:
		*n = NumberOf(float64(v))
	case []byte:
		return n.scanString(string(v))
	case string:
		return n.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Number", src)
	}
	return nil
}

func (n *Number) scanString(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = NumberOf(f)
	return nil
}

// RawJSON carries an opaque JSON document (bounding boxes and polygons).
type RawJSON []byte

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawJSON) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = nil
		return nil
	}
	*r = append((*r)[:0], b...)
	return nil
}

func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return string(r), nil
}

func (r *RawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append(RawJSON(nil), v...)
	case string:
		*r = RawJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into RawJSON", src)
	}
	return nil
}
