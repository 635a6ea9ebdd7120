package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	letters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits   = "0123456789"
	base36Up = digits + letters
)

// GenerateBookingCode: 4 huruf + 3 angka, mis. "QWER123".
func GenerateBookingCode() string {
	var b strings.Builder
	b.Grow(7)
	for i := 0; i < 4; i++ {
		b.WriteByte(letters[rand.IntN(len(letters))])
	}
	for i := 0; i < 3; i++ {
		b.WriteByte(digits[rand.IntN(len(digits))])
	}
	return b.String()
}

// GenerateOrderID: PREFIX-<unix ms>-<6 char base36 uppercase>.
func GenerateOrderID(prefix string, now time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "TOUR"
	}
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36Up[rand.IntN(len(base36Up))]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}
