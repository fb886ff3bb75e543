//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoint(platform string) webhook.Endpoint {
	return webhook.Endpoint{
		ID:        uuid.New().String(),
		Platform:  platform,
		URL:       "https://example.com/hooks",
		Events:    []webhook.EventType{webhook.PaymentSuccess, webhook.PaymentRefunded},
		Secret:    "test-secret",
		IsActive:  true,
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func testDelivery(endpointID string, status webhook.Status, nextRetry *time.Time) webhook.Delivery {
	now := time.Now().Truncate(time.Second)
	return webhook.Delivery{
		ID:         uuid.New().String(),
		EndpointID: endpointID,
		Event:      webhook.PaymentSuccess,
		Payload:    []byte(`{"event":"payment.success","timestamp":"2026-03-14T09:00:00Z","platform":"acme","data":{}}`),
		Status:     status,
		Attempts:   0,
		NextRetry:  nextRetry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestEndpointLifecycle(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	t.Run("create and get", func(t *testing.T) {
		ep := testEndpoint("acme")

		id, err := repo.CreateEndpoint(ctx, ep)
		require.NoError(t, err)
		assert.Equal(t, ep.ID, id)

		got, err := repo.GetEndpoint(ctx, ep.ID)
		require.NoError(t, err)
		assert.Equal(t, ep.Platform, got.Platform)
		assert.Equal(t, ep.URL, got.URL)
		assert.Equal(t, ep.Events, got.Events)
		assert.Equal(t, ep.Secret, got.Secret)
		assert.True(t, got.IsActive)
	})

	t.Run("get missing endpoint", func(t *testing.T) {
		_, err := repo.GetEndpoint(ctx, "does-not-exist")
		require.ErrorIs(t, err, webhook.ErrEndpointNotFound)
	})

	t.Run("list by platform", func(t *testing.T) {
		first := testEndpoint("globex")
		second := testEndpoint("globex")
		other := testEndpoint("initech")

		for _, ep := range []webhook.Endpoint{first, second, other} {
			_, err := repo.CreateEndpoint(ctx, ep)
			require.NoError(t, err)
		}

		endpoints, err := repo.ListEndpointsByPlatform(ctx, "globex")
		require.NoError(t, err)
		assert.Len(t, endpoints, 2)
	})

	t.Run("deactivate", func(t *testing.T) {
		ep := testEndpoint("acme")
		_, err := repo.CreateEndpoint(ctx, ep)
		require.NoError(t, err)

		require.NoError(t, repo.DeactivateEndpoint(ctx, ep.ID))

		got, err := repo.GetEndpoint(ctx, ep.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("deactivate missing endpoint", func(t *testing.T) {
		err := repo.DeactivateEndpoint(ctx, "does-not-exist")
		require.ErrorIs(t, err, webhook.ErrEndpointNotFound)
	})
}

func TestDeliveryLifecycle(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	t.Run("create and get", func(t *testing.T) {
		d := testDelivery("ep-1", webhook.Pending, nil)

		id, err := repo.CreateDelivery(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, d.ID, id)

		got, err := repo.GetDelivery(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.EndpointID, got.EndpointID)
		assert.Equal(t, webhook.Pending, got.Status)
		assert.Equal(t, d.Payload, got.Payload)
		assert.Nil(t, got.NextRetry)
	})

	t.Run("update with retry schedule", func(t *testing.T) {
		d := testDelivery("ep-1", webhook.Pending, nil)
		_, err := repo.CreateDelivery(ctx, d)
		require.NoError(t, err)

		next := time.Now().Add(time.Minute).Truncate(time.Second)
		d.Attempts = 1
		d.NextRetry = &next
		d.ResponseStatus = 500
		d.ResponseBody = "boom"
		require.NoError(t, repo.UpdateDelivery(ctx, d))

		got, err := repo.GetDelivery(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Attempts)
		require.NotNil(t, got.NextRetry)
		assert.Equal(t, next.Unix(), got.NextRetry.Unix())
		assert.Equal(t, 500, got.ResponseStatus)
		assert.Equal(t, "boom", got.ResponseBody)
	})

	t.Run("update missing delivery", func(t *testing.T) {
		d := testDelivery("ep-1", webhook.Pending, nil)
		err := repo.UpdateDelivery(ctx, d)
		require.ErrorIs(t, err, webhook.ErrDeliveryNotFound)
	})
}

func TestListDueDeliveries(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	now := time.Now().Truncate(time.Second)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	dueDelivery := testDelivery("ep-1", webhook.Pending, &past)
	futureDelivery := testDelivery("ep-1", webhook.Pending, &future)
	unscheduled := testDelivery("ep-1", webhook.Pending, nil)

	for _, d := range []webhook.Delivery{dueDelivery, futureDelivery, unscheduled} {
		_, err := repo.CreateDelivery(ctx, d)
		require.NoError(t, err)
	}

	due, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, dueDelivery.ID, due[0].ID)

	// The claim removed it from the due set; a second sweep sees nothing
	again, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, again)

	// Rescheduling re-enters the due set
	next := now.Add(-time.Second)
	claimed := due[0]
	claimed.Attempts = 2
	claimed.NextRetry = &next
	require.NoError(t, repo.UpdateDelivery(ctx, claimed))

	rescheduled, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	require.Len(t, rescheduled, 1)
	assert.Equal(t, claimed.ID, rescheduled[0].ID)
}

func TestReconcileDueSchedule(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	now := time.Now().Truncate(time.Second)
	past := now.Add(-time.Minute)

	stranded := testDelivery("ep-1", webhook.Pending, &past)
	terminal := testDelivery("ep-1", webhook.Failed, nil)

	for _, d := range []webhook.Delivery{stranded, terminal} {
		_, err := repo.CreateDelivery(ctx, d)
		require.NoError(t, err)
	}

	// Claim removes the delivery from the due set; simulate a sweeper that
	// died before rescheduling by never updating the record
	due, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)

	orphanCheck, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	require.Empty(t, orphanCheck)

	restored, err := repo.ReconcileDueSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	// Idempotent: the record is back in the set, the terminal record stays out
	restored, err = repo.ReconcileDueSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, restored)

	recovered, err := repo.ListDueDeliveries(ctx, now)
	require.NoError(t, err)
	require.Len(t, recovered, 1)
	assert.Equal(t, stranded.ID, recovered[0].ID)
}

func TestStatusCounters(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	d := testDelivery("ep-1", webhook.Pending, nil)
	_, err := repo.CreateDelivery(ctx, d)
	require.NoError(t, err)

	counts, err := repo.CountDeliveriesByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["pending"])
	assert.Equal(t, int64(0), counts["success"])

	d.Status = webhook.Success
	d.Attempts = 1
	require.NoError(t, repo.UpdateDelivery(ctx, d))

	counts, err = repo.CountDeliveriesByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts["pending"])
	assert.Equal(t, int64(1), counts["success"])
}

func TestWorkerHeartbeat(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()
	repo := SetupRepository(t, ctx, rc.Addr)

	require.NoError(t, repo.SetWorkerHeartbeat(ctx, "worker-1", "sweeping"))
	require.NoError(t, repo.SetWorkerHeartbeat(ctx, "worker-2", "idle"))

	workers, err := repo.GetActiveWorkers(ctx)
	require.NoError(t, err)
	assert.Len(t, workers, 2)
}
