package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/marcelsud/webhook-dispatch/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

/*
* Estes testes usam mocks para simular o comportamento dos serviços de webhook.
* Uma alternativa válida é criarmos testes de integração, onde o repositório real é usado. Para isso uma ferramenta
* bem útil é o TestContainers: https://mfbmina.dev/posts/testcontainers/
 */

func sampleEndpoint() webhook.Endpoint {
	return webhook.Endpoint{
		ID:        "ep-1",
		Platform:  "acme",
		URL:       "https://merchant.example.com/hooks",
		Events:    []webhook.EventType{webhook.PaymentSuccess, webhook.PaymentFailed},
		Secret:    "super-secret",
		IsActive:  true,
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestPostEndpoint(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	ep := sampleEndpoint()
	registrar.On("Register",
		mock.Anything,
		"acme",
		"https://merchant.example.com/hooks",
		[]webhook.EventType{webhook.PaymentSuccess, webhook.PaymentFailed},
	).Return(ep, "plaintext-secret", nil)

	h := Handlers(ctx, registrar, dispatcher, nil)
	body := `{"platform":"acme","url":"https://merchant.example.com/hooks","events":["payment.success","payment.failed"]}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/endpoints", bytes.NewBufferString(body))
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var result registerResponse
	err = json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "ep-1", result.ID)
	assert.Equal(t, "plaintext-secret", result.Secret)
	assert.Equal(t, []string{"payment.success", "payment.failed"}, result.Events)
}

func TestPostEndpointInvalidURL(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	registrar.On("Register", mock.Anything, "acme", "ftp://example.com", mock.Anything).
		Return(webhook.Endpoint{}, "", webhook.ErrInvalidEndpointURL)

	h := Handlers(ctx, registrar, dispatcher, nil)
	body := `{"platform":"acme","url":"ftp://example.com","events":["payment.success"]}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/endpoints", bytes.NewBufferString(body))
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEndpoint(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	registrar.On("Get", mock.Anything, "ep-1").Return(sampleEndpoint(), nil)

	h := Handlers(ctx, registrar, dispatcher, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/v1/endpoints/ep-1", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result endpointResponse
	err = json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "ep-1", result.ID)

	// The stored secret must never leave the service after registration
	assert.NotContains(t, w.Body.String(), "super-secret")
}

func TestGetEndpointNotFound(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	registrar.On("Get", mock.Anything, "missing").
		Return(webhook.Endpoint{}, webhook.ErrEndpointNotFound)

	h := Handlers(ctx, registrar, dispatcher, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/v1/endpoints/missing", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	registrar.On("Deactivate", mock.Anything, "ep-1").Return(nil)

	h := Handlers(ctx, registrar, dispatcher, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/v1/endpoints/ep-1", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPostTestDelivery(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	dispatcher.On("TestDelivery", mock.Anything, "ep-1").Return(webhook.TestResult{
		Success: true,
		Status:  200,
		Message: "test webhook delivered successfully",
	}, nil)

	h := Handlers(ctx, registrar, dispatcher, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/endpoints/ep-1/test", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result webhook.TestResult
	err = json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 200, result.Status)
}

func TestPostEvent(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	dispatcher.On("SendEvent", mock.Anything, webhook.PaymentSuccess, "acme", mock.Anything).
		Return(nil)

	h := Handlers(ctx, registrar, dispatcher, nil)
	body := `{"event":"payment.success","platform":"acme","data":{"transaction_id":"tx-1"}}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/events", bytes.NewBufferString(body))
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestPostEventUnknownType(t *testing.T) {
	ctx := context.Background()
	registrar := mocks.NewRegistrar(t)
	dispatcher := mocks.NewUseCase(t)

	h := Handlers(ctx, registrar, dispatcher, nil)
	body := `{"event":"payment.unknown","platform":"acme","data":{}}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/events", bytes.NewBufferString(body))
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
