package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-dispatch/webhook"
)

/* HTTP layer DTOs for the webhook dispatch API
 * Separate from domain entities to avoid leaking internal structure
 */

// registerRequest represents an endpoint registration call
type registerRequest struct {
	Platform string   `json:"platform"`
	URL      string   `json:"url"`
	Events   []string `json:"events"`
}

// registerResponse carries the stored endpoint plus the plaintext secret,
// returned only on this call
type registerResponse struct {
	endpointResponse
	Secret string `json:"secret"`
}

// endpointResponse represents an endpoint in the API; the secret is redacted
type endpointResponse struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// eventRequest represents an event emission call
type eventRequest struct {
	Event    string          `json:"event"`
	Platform string          `json:"platform"`
	Data     json.RawMessage `json:"data"`
}

func toEndpointResponse(ep webhook.Endpoint) endpointResponse {
	events := make([]string, 0, len(ep.Events))
	for _, e := range ep.Events {
		events = append(events, e.String())
	}
	return endpointResponse{
		ID:        ep.ID,
		Platform:  ep.Platform,
		URL:       ep.URL,
		Events:    events,
		IsActive:  ep.IsActive,
		CreatedAt: ep.CreatedAt,
	}
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, webhook.ErrInvalidEndpointURL),
		errors.Is(err, webhook.ErrInvalidEventType),
		errors.Is(err, webhook.ErrNoEventsSpecified):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, webhook.ErrEndpointNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// postEndpoint handles POST /v1/endpoints
func postEndpoint(registrar webhook.Registrar) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		events := make([]webhook.EventType, 0, len(req.Events))
		for _, e := range req.Events {
			events = append(events, webhook.EventType(e))
		}

		endpoint, secret, err := registrar.Register(r.Context(), req.Platform, req.URL, events)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			endpointResponse: toEndpointResponse(endpoint),
			Secret:           secret,
		})
	})
}

// getEndpoint handles GET /v1/endpoints/{endpoint_id}
func getEndpoint(registrar webhook.Registrar) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "endpoint_id")
		if id == "" {
			http.Error(w, "endpoint_id is required", http.StatusBadRequest)
			return
		}

		endpoint, err := registrar.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEndpointResponse(endpoint))
	})
}

// deleteEndpoint handles DELETE /v1/endpoints/{endpoint_id}
// Deactivation is the only endpoint state transition; records are never erased
func deleteEndpoint(registrar webhook.Registrar) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "endpoint_id")
		if id == "" {
			http.Error(w, "endpoint_id is required", http.StatusBadRequest)
			return
		}

		if err := registrar.Deactivate(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// postTestDelivery handles POST /v1/endpoints/{endpoint_id}/test
func postTestDelivery(dispatcher webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "endpoint_id")
		if id == "" {
			http.Error(w, "endpoint_id is required", http.StatusBadRequest)
			return
		}

		result, err := dispatcher.TestDelivery(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

// postEvent handles POST /v1/events
// Returns 202 immediately; deliveries are asynchronous and fire-and-forget
func postEvent(dispatcher webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if req.Platform == "" {
			http.Error(w, "platform is required", http.StatusBadRequest)
			return
		}

		event := webhook.EventType(req.Event)
		if err := event.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data := req.Data
		if len(data) == 0 {
			data = json.RawMessage(`{}`)
		}

		if err := dispatcher.SendEvent(r.Context(), event, req.Platform, data); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"event":    event.String(),
			"platform": req.Platform,
			"status":   "accepted",
		})
	})
}
