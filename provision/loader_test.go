package provision_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcelsud/webhook-dispatch/provision"
	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/marcelsud/webhook-dispatch/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, `
endpoints:
  - id: internal-billing
    platform: acme
    url: https://billing.internal.example.com/hooks
    events:
      - payment.success
      - payment.refunded
    secret: preshared-secret
  - id: internal-audit
    platform: acme
    url: https://audit.internal.example.com/hooks
    events:
      - merchant.suspended
    secret: another-secret
    active: false
`)

		loader := provision.NewLoader()
		require.NoError(t, loader.Load(path))

		endpoints := loader.List()
		require.Len(t, endpoints, 2)

		assert.Equal(t, "internal-billing", endpoints[0].ID)
		assert.True(t, endpoints[0].IsActive)
		assert.Equal(t, []webhook.EventType{webhook.PaymentSuccess, webhook.PaymentRefunded}, endpoints[0].Events)

		assert.False(t, endpoints[1].IsActive)
	})

	t.Run("unknown event rejected", func(t *testing.T) {
		path := writeFile(t, `
endpoints:
  - id: bad
    platform: acme
    url: https://example.com/hooks
    events: [bogus.event]
    secret: s
`)

		loader := provision.NewLoader()
		err := loader.Load(path)
		require.ErrorIs(t, err, webhook.ErrInvalidEventType)
	})

	t.Run("bad url rejected", func(t *testing.T) {
		path := writeFile(t, `
endpoints:
  - id: bad
    platform: acme
    url: ftp://example.com
    events: [payment.success]
    secret: s
`)

		loader := provision.NewLoader()
		err := loader.Load(path)
		require.ErrorIs(t, err, webhook.ErrInvalidEndpointURL)
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		path := writeFile(t, `
endpoints:
  - id: bad
    platform: acme
    url: https://example.com/hooks
    events: [payment.success]
`)

		loader := provision.NewLoader()
		require.Error(t, loader.Load(path))
	})

	t.Run("missing file", func(t *testing.T) {
		loader := provision.NewLoader()
		require.Error(t, loader.Load("does-not-exist.yaml"))
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, `
endpoints:
  - id: internal-billing
    platform: acme
    url: https://billing.internal.example.com/hooks
    events: [payment.success]
    secret: preshared-secret
`)

	loader := provision.NewLoader()
	require.NoError(t, loader.Load(path))

	repo := mocks.NewRepository(t)
	repo.On("CreateEndpoint", ctx, webhook.MatchEndpoint(func(ep webhook.Endpoint) bool {
		return ep.ID == "internal-billing" && ep.Secret == "preshared-secret" && ep.IsActive
	})).Return("internal-billing", nil)

	require.NoError(t, loader.Apply(ctx, repo))
}
