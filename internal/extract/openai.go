package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"invoxd/internal/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAIExtractor implements FieldExtractor using the OpenAI Chat
// Completions API. One request per document; no retry, no session state.
type OpenAIExtractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

// NewOpenAIExtractor creates an extractor from the extractor config section.
func NewOpenAIExtractor(cfg *config.ExtractorConfig, logger *slog.Logger) *OpenAIExtractor {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return newExtractor(cfg, strings.TrimRight(base, "/")+"/chat/completions", logger)
}

// NewOpenAIExtractorWithEndpoint creates an extractor pointing at a custom
// API endpoint (for testing).
func NewOpenAIExtractorWithEndpoint(cfg *config.ExtractorConfig, endpoint string, logger *slog.Logger) *OpenAIExtractor {
	return newExtractor(cfg, endpoint, logger)
}

func newExtractor(cfg *config.ExtractorConfig, endpoint string, logger *slog.Logger) *OpenAIExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIExtractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      logger,
	}
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Extract sends the text blob to the model and parses the structured
// response into a validated InvoiceFields. Failures split into two kinds:
// *ServiceError when the call itself fails and *ValidationError when the
// model's output does not satisfy the invoice schema.
func (e *OpenAIExtractor) Extract(ctx context.Context, text string) (*InvoiceFields, error) {
	start := time.Now()
	schema := BuildInvoiceJSONSchema()
	sys := BuildSystemPrompt()

	e.log.Info("extract.start", "model", e.model, "text_len", len(text))

	reqBody := map[string]any{
		"model":           e.model,
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
			{"role": "user", "content": BuildUserPrompt(text)},
		},
	}

	raw, err := e.post(ctx, reqBody)
	if err != nil {
		e.log.Error("extract.service_error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("decode API response: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &ServiceError{Err: fmt.Errorf("empty response from API: no choices")}
	}
	if resp.Choices[0].FinishReason == "length" {
		return nil, &ServiceError{Err: fmt.Errorf("output truncated (finish_reason: length)")}
	}
	content := []byte(strings.TrimSpace(resp.Choices[0].Message.Content))

	normalized, applied, err := NormalizeFields(content, e.log)
	if err != nil {
		return nil, &ValidationError{Err: err, Raw: content}
	}
	if len(applied) > 0 {
		e.log.Warn("extract.defaults_applied", "fields", applied)
	}

	if err := ValidateJSONAgainstSchema(schema, normalized); err != nil {
		e.log.Error("extract.schema_validation_failed", "error", err, "content", truncate(string(content), 2048))
		return nil, &ValidationError{Err: err, Raw: content}
	}

	var fields InvoiceFields
	if err := json.Unmarshal(normalized, &fields); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("unmarshal fields: %w", err), Raw: content}
	}

	e.log.Info("extract.ok",
		"invoice_number", fields.InvoiceNumber,
		"order_date", fields.OrderDate,
		"total_amount", fields.TotalAmount,
		"line_items", len(fields.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &fields, nil
}

func (e *OpenAIExtractor) post(ctx context.Context, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("marshal request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("calling completion API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		svcErr := &ServiceError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API error: %s", truncate(string(raw), 1024)),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			secs := parseRetryAfterHeader(resp.Header.Get("Retry-After"))
			if secs <= 0 {
				secs = 60
			}
			svcErr.RetryAfter = time.Duration(secs) * time.Second
		}
		return nil, svcErr
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
