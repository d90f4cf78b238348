package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bizdetails/backend/internal/infrastructure/config"
)

// Input identifies one company to enrich
type Input struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Output carries the enriched field values for one input
type Output struct {
	Domain string            `json:"domain"`
	Fields map[string]string `json:"fields"`
}

// Client resolves company details through an external model endpoint
type Client interface {
	EnrichBatch(ctx context.Context, inputs []Input) ([]Output, error)
}

// HTTPClient calls an OpenAI-compatible chat completions endpoint and asks
// the model to fill in company fields as JSON.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	model       string
	batchSize   int
	maxAttempts int
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewHTTPClient creates an enrichment client from configuration
func NewHTTPClient(cfg config.EnrichConfig, logger *zap.Logger) *HTTPClient {
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		batchSize:   batchSize,
		maxAttempts: cfg.MaxAttempts,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger.Named("enrich"),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are a company data assistant. For each company in the ` +
	`user message, return a JSON array of objects with keys "domain" and "fields". ` +
	`"fields" may contain: name, countries, hq, industry, subindustry, ` +
	`keywords_cntxt, size, linkedin_url. Omit fields you do not know. ` +
	`Return only JSON, no prose.`

// EnrichBatch resolves inputs in fixed-size batches. A batch that keeps
// failing after all attempts fails the whole call.
func (c *HTTPClient) EnrichBatch(ctx context.Context, inputs []Input) ([]Output, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	outputs := make([]Output, 0, len(inputs))
	for start := 0; start < len(inputs); start += c.batchSize {
		end := start + c.batchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		batch, err := c.enrichOnce(ctx, inputs[start:end])
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, batch...)
	}
	return outputs, nil
}

func (c *HTTPClient) enrichOnce(ctx context.Context, batch []Input) ([]Output, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enrichment batch: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			// 0.5s, 1s, 2s between attempts
			backoff := 500 * time.Millisecond << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		outputs, err := c.call(ctx, payload)
		if err == nil {
			return outputs, nil
		}

		lastErr = err
		c.logger.Warn("enrichment attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
	}
	return nil, fmt.Errorf("enrichment failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *HTTPClient) call(ctx context.Context, payload []byte) ([]Output, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment endpoint returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("enrichment response has no choices")
	}

	var outputs []Output
	content := extractJSON(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &outputs); err != nil {
		return nil, fmt.Errorf("failed to decode enrichment payload: %w", err)
	}
	return outputs, nil
}

// extractJSON tolerates models that wrap their JSON in a markdown code fence
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

var _ Client = (*HTTPClient)(nil)
