package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of webhook.Repository
 * Uses Redis Hashes for endpoint and delivery records, a Set per platform as
 * the fan-out index, and a Sorted Set scored by nextRetry as the due-retry
 * schedule. Removing a member from the due set is atomic, so it doubles as a
 * claim step: two concurrent sweeps can never both pick up the same delivery.
 */

const (
	endpointPrefix = "endpoint"           // Hash naming: endpoint:{endpoint_id}
	platformPrefix = "endpoints:platform" // Set naming: endpoints:platform:{platform}
	deliveryPrefix = "delivery"           // Hash naming: delivery:{delivery_id}
	dueKey         = "deliveries:due"     // Sorted set of delivery ids scored by nextRetry
	countPrefix    = "deliveries:count"   // Counter naming: deliveries:count:{status}
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// CreateEndpoint stores an endpoint hash and indexes it by platform
func (r *Repository) CreateEndpoint(ctx context.Context, ep webhook.Endpoint) (string, error) {
	eventsJSON, err := json.Marshal(ep.Events)
	if err != nil {
		return "", fmt.Errorf("marshaling events: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, endpointKey(ep.ID), map[string]interface{}{
		"id":         ep.ID,
		"platform":   ep.Platform,
		"url":        ep.URL,
		"events":     string(eventsJSON),
		"secret":     ep.Secret,
		"is_active":  strconv.FormatBool(ep.IsActive),
		"created_at": ep.CreatedAt.Unix(),
	})
	pipe.SAdd(ctx, platformKey(ep.Platform), ep.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("storing endpoint: %w", err)
	}

	return ep.ID, nil
}

// GetEndpoint retrieves an endpoint by ID
func (r *Repository) GetEndpoint(ctx context.Context, id string) (webhook.Endpoint, error) {
	data, err := r.client.HGetAll(ctx, endpointKey(id)).Result()
	if err != nil {
		return webhook.Endpoint{}, fmt.Errorf("getting endpoint: %w", err)
	}
	if len(data) == 0 {
		return webhook.Endpoint{}, fmt.Errorf("%w: %s", webhook.ErrEndpointNotFound, id)
	}

	return parseEndpoint(data)
}

// ListEndpointsByPlatform retrieves every endpoint registered for a platform
func (r *Repository) ListEndpointsByPlatform(ctx context.Context, platform string) ([]webhook.Endpoint, error) {
	ids, err := r.client.SMembers(ctx, platformKey(platform)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing endpoint ids: %w", err)
	}

	endpoints := make([]webhook.Endpoint, 0, len(ids))
	for _, id := range ids {
		ep, err := r.GetEndpoint(ctx, id)
		if err != nil {
			// Index entry without a hash; skip rather than failing fan-out
			continue
		}
		endpoints = append(endpoints, ep)
	}

	return endpoints, nil
}

// DeactivateEndpoint flips the endpoint's is_active flag off
func (r *Repository) DeactivateEndpoint(ctx context.Context, id string) error {
	exists, err := r.client.Exists(ctx, endpointKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking endpoint: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", webhook.ErrEndpointNotFound, id)
	}

	if err := r.client.HSet(ctx, endpointKey(id), "is_active", "false").Err(); err != nil {
		return fmt.Errorf("deactivating endpoint: %w", err)
	}

	return nil
}

// CreateDelivery stores a new delivery record and bumps the status counter
func (r *Repository) CreateDelivery(ctx context.Context, d webhook.Delivery) (string, error) {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, deliveryKey(d.ID), deliveryFields(d))
	pipe.Incr(ctx, countKey(d.Status))
	if d.NextRetry != nil {
		pipe.ZAdd(ctx, dueKey, redis.Z{Score: float64(d.NextRetry.Unix()), Member: d.ID})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("storing delivery: %w", err)
	}

	return d.ID, nil
}

// GetDelivery retrieves a delivery record by ID
func (r *Repository) GetDelivery(ctx context.Context, id string) (webhook.Delivery, error) {
	data, err := r.client.HGetAll(ctx, deliveryKey(id)).Result()
	if err != nil {
		return webhook.Delivery{}, fmt.Errorf("getting delivery: %w", err)
	}
	if len(data) == 0 {
		return webhook.Delivery{}, fmt.Errorf("%w: %s", webhook.ErrDeliveryNotFound, id)
	}

	return parseDelivery(data), nil
}

/* UpdateDelivery overwrites the mutable fields and keeps the due schedule and
 * status counters in sync. The record is owned by one logical attempt at a
 * time, so a read-then-pipeline is safe here.
 */
func (r *Repository) UpdateDelivery(ctx context.Context, d webhook.Delivery) error {
	prev, err := r.client.HGet(ctx, deliveryKey(d.ID), "status").Result()
	if err == redis.Nil {
		return fmt.Errorf("%w: %s", webhook.ErrDeliveryNotFound, d.ID)
	}
	if err != nil {
		return fmt.Errorf("reading delivery status: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, deliveryKey(d.ID), deliveryFields(d))

	if prev != d.Status.String() {
		pipe.Decr(ctx, countKey(webhook.NewStatus(prev)))
		pipe.Incr(ctx, countKey(d.Status))
	}

	if d.NextRetry != nil {
		pipe.ZAdd(ctx, dueKey, redis.Z{Score: float64(d.NextRetry.Unix()), Member: d.ID})
	} else {
		pipe.ZRem(ctx, dueKey, d.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("updating delivery: %w", err)
	}

	return nil
}

/* ListDueDeliveries returns pending deliveries whose nextRetry has elapsed
 * Each candidate is claimed by removing it from the due set first; ZRem
 * returns 0 when another sweeper got there before us, in which case the
 * delivery is skipped. A claimed delivery re-enters the set when the next
 * retry is scheduled via UpdateDelivery.
 */
func (r *Repository) ListDueDeliveries(ctx context.Context, before time.Time) ([]webhook.Delivery, error) {
	ids, err := r.client.ZRangeByScore(ctx, dueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(before.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("reading due set: %w", err)
	}

	var due []webhook.Delivery
	for _, id := range ids {
		removed, err := r.client.ZRem(ctx, dueKey, id).Result()
		if err != nil {
			return nil, fmt.Errorf("claiming delivery %s: %w", id, err)
		}
		if removed == 0 {
			// Claimed by a concurrent sweep
			continue
		}

		d, err := r.GetDelivery(ctx, id)
		if err != nil {
			continue
		}
		due = append(due, d)
	}

	return due, nil
}

/* ReconcileDueSchedule re-enters stranded deliveries into the due set
 * A delivery claimed by a sweep that died before rescheduling is left
 * pending with a next_retry but absent from the due set, invisible to every
 * future sweep. Run at startup; ZAddNX never disturbs an entry a live sweep
 * is currently managing.
 */
func (r *Repository) ReconcileDueSchedule(ctx context.Context) (int, error) {
	restored := 0

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, deliveryPrefix+":*", 100).Result()
		if err != nil {
			return restored, fmt.Errorf("scanning delivery keys: %w", err)
		}

		for _, key := range keys {
			fields, err := r.client.HMGet(ctx, key, "id", "status", "next_retry").Result()
			if err != nil {
				return restored, fmt.Errorf("reading delivery %s: %w", key, err)
			}

			id, ok := fields[0].(string)
			if !ok || id == "" {
				continue
			}
			status, _ := fields[1].(string)
			nextRetry, _ := fields[2].(string)

			score := parseInt64(nextRetry)
			if status != webhook.Pending.String() || score <= 0 {
				continue
			}

			added, err := r.client.ZAddNX(ctx, dueKey, redis.Z{Score: float64(score), Member: id}).Result()
			if err != nil {
				return restored, fmt.Errorf("restoring delivery %s to due set: %w", id, err)
			}
			restored += int(added)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return restored, nil
}

// CountDeliveriesByStatus returns the counter value for each delivery status
func (r *Repository) CountDeliveriesByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, status := range []webhook.Status{webhook.Pending, webhook.Success, webhook.Failed} {
		value, err := r.client.Get(ctx, countKey(status)).Result()
		if err == redis.Nil {
			counts[status.String()] = 0
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s counter: %w", status, err)
		}
		counts[status.String()] = parseInt64(value)
	}
	return counts, nil
}

// CountDueDeliveries returns the number of deliveries scheduled at or before now
func (r *Repository) CountDueDeliveries(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.client.ZCount(ctx, dueKey, "-inf", strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("counting due deliveries: %w", err)
	}
	return count, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// Helper functions

func endpointKey(id string) string {
	return fmt.Sprintf("%s:%s", endpointPrefix, id)
}

func platformKey(platform string) string {
	return fmt.Sprintf("%s:%s", platformPrefix, platform)
}

func deliveryKey(id string) string {
	return fmt.Sprintf("%s:%s", deliveryPrefix, id)
}

func countKey(status webhook.Status) string {
	return fmt.Sprintf("%s:%s", countPrefix, status.String())
}

func deliveryFields(d webhook.Delivery) map[string]interface{} {
	nextRetry := int64(0)
	if d.NextRetry != nil {
		nextRetry = d.NextRetry.Unix()
	}

	return map[string]interface{}{
		"id":              d.ID,
		"endpoint_id":     d.EndpointID,
		"event":           d.Event.String(),
		"payload":         d.Payload,
		"status":          d.Status.String(),
		"attempts":        d.Attempts,
		"next_retry":      nextRetry,
		"response_status": d.ResponseStatus,
		"response_body":   d.ResponseBody,
		"error_message":   d.ErrorMessage,
		"created_at":      d.CreatedAt.Unix(),
		"updated_at":      d.UpdatedAt.Unix(),
	}
}

func parseEndpoint(data map[string]string) (webhook.Endpoint, error) {
	var events []webhook.EventType
	if eventsStr, ok := data["events"]; ok && eventsStr != "" {
		if err := json.Unmarshal([]byte(eventsStr), &events); err != nil {
			return webhook.Endpoint{}, fmt.Errorf("unmarshaling events: %w", err)
		}
	}

	isActive, _ := strconv.ParseBool(data["is_active"])

	return webhook.Endpoint{
		ID:        data["id"],
		Platform:  data["platform"],
		URL:       data["url"],
		Events:    events,
		Secret:    data["secret"],
		IsActive:  isActive,
		CreatedAt: time.Unix(parseInt64(data["created_at"]), 0),
	}, nil
}

func parseDelivery(data map[string]string) webhook.Delivery {
	var nextRetry *time.Time
	if ts := parseInt64(data["next_retry"]); ts > 0 {
		t := time.Unix(ts, 0)
		nextRetry = &t
	}

	return webhook.Delivery{
		ID:             data["id"],
		EndpointID:     data["endpoint_id"],
		Event:          webhook.EventType(data["event"]),
		Payload:        []byte(data["payload"]),
		Status:         webhook.NewStatus(data["status"]),
		Attempts:       int(parseInt64(data["attempts"])),
		NextRetry:      nextRetry,
		ResponseStatus: int(parseInt64(data["response_status"])),
		ResponseBody:   data["response_body"],
		ErrorMessage:   data["error_message"],
		CreatedAt:      time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:      time.Unix(parseInt64(data["updated_at"]), 0),
	}
}

func parseInt64(s string) int64 {
	result, _ := strconv.ParseInt(s, 10, 64)
	return result
}
