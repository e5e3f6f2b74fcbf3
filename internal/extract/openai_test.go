package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoxd/internal/config"
	"invoxd/internal/extract"
)

// completionServer returns an httptest server that answers every chat
// completion request with the given message content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(0), req["temperature"])
		assert.Len(t, req["messages"], 3)

		resp := map[string]any{
			"choices": []any{
				map[string]any{
					"message":       map[string]any{"content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestExtractor(endpoint string) *extract.OpenAIExtractor {
	cfg := &config.ExtractorConfig{APIKey: "test-key", Model: "gpt-4o-mini", TimeoutSecs: 5}
	return extract.NewOpenAIExtractorWithEndpoint(cfg, endpoint, discardLogger())
}

func TestExtract_HappyPath(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, func(m map[string]any) {
		m["due_date"] = "2024-02-15"
		m["currency"] = "INR"
		m["email"] = "billing@globex.example"
	})))
	defer srv.Close()

	fields, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.NoError(t, err)

	assert.Equal(t, "INV-2024-001", fields.InvoiceNumber)
	assert.Equal(t, "2024-01-15", fields.OrderDate)
	require.NotNil(t, fields.DueDate)
	assert.Equal(t, "2024-02-15", *fields.DueDate)
	require.NotNil(t, fields.Currency)
	assert.Equal(t, "INR", *fields.Currency)
	assert.Equal(t, 118.0, fields.TotalAmount)
	require.Len(t, fields.LineItems, 1)
	assert.Equal(t, "Consulting", fields.LineItems[0].Service)
	assert.Equal(t, 2, fields.LineItems[0].Quantity)
}

func TestExtract_AbsentOptionalsStayNil(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, nil)))
	defer srv.Close()

	fields, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.NoError(t, err)

	assert.Nil(t, fields.DueDate)
	assert.Nil(t, fields.Currency)
	assert.Nil(t, fields.Email)
	assert.Nil(t, fields.Phone)
	assert.Nil(t, fields.GSTNumber)
}

func TestExtract_MissingQuantityDefaultsToOne(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, func(m map[string]any) {
		item := m["line_items"].([]any)[0].(map[string]any)
		delete(item, "quantity")
	})))
	defer srv.Close()

	fields, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.NoError(t, err)
	assert.Equal(t, 1, fields.LineItems[0].Quantity)
}

func TestExtract_MissingRequiredFieldIsValidationError(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, func(m map[string]any) {
		delete(m, "invoice_number")
	})))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.Error(t, err)

	var vErr *extract.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotEmpty(t, vErr.Raw)
}

func TestExtract_BadEmailIsValidationError(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, func(m map[string]any) {
		m["email"] = "not-an-email"
	})))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")

	var vErr *extract.ValidationError
	require.True(t, errors.As(err, &vErr))
}

func TestExtract_NonJSONContentIsValidationError(t *testing.T) {
	srv := completionServer(t, "I could not find any invoice in the document.")
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")

	var vErr *extract.ValidationError
	require.True(t, errors.As(err, &vErr))
}

func TestExtract_RateLimitIsServiceErrorWithRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.Error(t, err)

	var sErr *extract.ServiceError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusTooManyRequests, sErr.StatusCode)
	assert.Equal(t, 7*time.Second, sErr.RetryAfter)
}

func TestExtract_ServerErrorIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")

	var sErr *extract.ServiceError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
}

func TestExtract_TruncatedOutputIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []any{
				map[string]any{
					"message":       map[string]any{"content": `{"invoice_num`},
					"finish_reason": "length",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")

	var sErr *extract.ServiceError
	require.True(t, errors.As(err, &sErr))
}

func TestExtract_ValidatedRecordRoundTripsCleanly(t *testing.T) {
	srv := completionServer(t, string(validInvoiceJSON(t, nil)))
	defer srv.Close()

	fields, err := newTestExtractor(srv.URL).Extract(context.Background(), "invoice text")
	require.NoError(t, err)

	again, mErr := json.Marshal(fields)
	require.NoError(t, mErr)
	assert.NoError(t, extract.ValidateJSONAgainstSchema(extract.BuildInvoiceJSONSchema(), again))
}
