package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature reports whether signature is the hex HMAC-SHA256 of
// "orderID|paymentID" under secret. The presented signature is hex-decoded
// first; a non-hex or wrong-length value always fails. Comparison is
// constant time on equal-length buffers.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	presented, err := hex.DecodeString(signature)
	if err != nil || len(presented) != len(expected) {
		return false
	}
	return hmac.Equal(presented, expected)
}
