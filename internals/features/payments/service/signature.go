package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Signature: SHA512(order_id + status_code + gross_amount + server_key), hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

// VerifySignature membandingkan signature_key dari gateway byte-per-byte (constant time).
func VerifySignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	if signature == "" || serverKey == "" {
		return false
	}
	want := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(signature)) == 1
}
