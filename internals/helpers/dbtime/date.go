// file: internals/helpers/dbtime/date.go
package dbtime

import (
	"strings"
	"time"
)

// Kolom DATE disimpan sebagai UTC midnight; "hari ini" dihitung di zona bisnis.
const DateLayout = "2006-01-02"

// ParseDate: "YYYY-MM-DD" → UTC midnight. String kosong → nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate kebalikan ParseDate (nil tetap nil).
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// Today: tanggal kalender di loc. loc nil → UTC.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

// LoadLocation dengan fallback UTC bila nama kosong / tidak dikenal.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
