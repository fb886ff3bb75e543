package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// SecretBytes is the size of generated signing secrets (256 bits)
const SecretBytes = 32

/* Signatures are computed over the exact byte serialization of the payload.
 * Retries re-send the stored bytes verbatim, so the signature reproduces
 * identically for the same delivery across attempts.
 */

// GenerateSecret creates a new cryptographically secure signing secret,
// base64url-encoded without padding
func GenerateSecret() (string, error) {
	bytes := make([]byte, SecretBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// Sign computes the hex-encoded HMAC-SHA256 of the payload using the secret
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the HMAC for the payload and compares it against the
// provided signature using a constant-time comparison to prevent timing
// attacks. Malformed signatures are treated as a mismatch, never an error,
// so callers cannot distinguish "wrong secret" from "malformed input".
func Verify(payload []byte, sig, secret string) bool {
	provided, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	return subtle.ConstantTimeCompare(provided, expected) == 1
}
