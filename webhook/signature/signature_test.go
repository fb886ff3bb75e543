package signature_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/marcelsud/webhook-dispatch/webhook/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Run("produces 256 bits of randomness", func(t *testing.T) {
		secret, err := signature.GenerateSecret()
		require.NoError(t, err)
		require.NotEmpty(t, secret)

		raw, err := base64.RawURLEncoding.DecodeString(secret)
		require.NoError(t, err)
		assert.Len(t, raw, signature.SecretBytes)
	})

	t.Run("never repeats", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			secret, err := signature.GenerateSecret()
			require.NoError(t, err)
			assert.False(t, seen[secret], "secret collision")
			seen[secret] = true
		}
	})
}

func TestSign(t *testing.T) {
	payload := []byte(`{"event":"payment.success","platform":"acme"}`)

	t.Run("deterministic for same payload and secret", func(t *testing.T) {
		first := signature.Sign(payload, "secret-1")
		second := signature.Sign(payload, "secret-1")
		assert.Equal(t, first, second)
	})

	t.Run("hex encoded sha256 output", func(t *testing.T) {
		sig := signature.Sign(payload, "secret-1")
		raw, err := hex.DecodeString(sig)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("changes with payload", func(t *testing.T) {
		sig := signature.Sign(payload, "secret-1")
		other := signature.Sign([]byte(`{"event":"payment.failed"}`), "secret-1")
		assert.NotEqual(t, sig, other)
	})

	t.Run("changes with secret", func(t *testing.T) {
		sig := signature.Sign(payload, "secret-1")
		other := signature.Sign(payload, "secret-2")
		assert.NotEqual(t, sig, other)
	})
}

func TestVerify(t *testing.T) {
	payload := []byte(`{"event":"payment.success"}`)

	t.Run("valid signature", func(t *testing.T) {
		sig := signature.Sign(payload, "my-secret")
		assert.True(t, signature.Verify(payload, sig, "my-secret"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		sig := signature.Sign(payload, "my-secret")
		assert.False(t, signature.Verify(payload, sig, "other-secret"))
	})

	t.Run("tampered payload", func(t *testing.T) {
		sig := signature.Sign(payload, "my-secret")
		assert.False(t, signature.Verify([]byte(`{"event":"payment.failed"}`), sig, "my-secret"))
	})

	t.Run("malformed signature is a mismatch, not an error", func(t *testing.T) {
		assert.False(t, signature.Verify(payload, "not-hex!!", "my-secret"))
		assert.False(t, signature.Verify(payload, "", "my-secret"))
	})
}
