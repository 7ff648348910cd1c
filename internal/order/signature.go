package order

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifySignature checks a webhook signature: HMAC-SHA256 over the exact
// raw body bytes, base64-encoded, compared in constant time. It must only
// ever see the unparsed body; reserializing the payload would let an
// attacker exploit formatting differences.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
