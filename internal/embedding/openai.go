package embedding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// OpenAIClient is an OpenAI-compatible embeddings client. It sends the whole
// batch as a single /embeddings request, which keeps the per-call overhead
// off the similarity measurements.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	dimension  int
	client     *http.Client
	maxRetries int
}

// OpenAIConfig configures the OpenAI-compatible embeddings client.
type OpenAIConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewOpenAIClient creates a new embeddings client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &OpenAIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		timeout:    t,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *OpenAIClient) Name() string { return "openai" }

// Prepare is not required for remote embedding. Dimension is set lazily on
// the first successful batch.
func (c *OpenAIClient) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *OpenAIClient) Dimension() int { return c.dimension }

// EmbedBatch returns one embedding vector per input text, in input order.
func (c *OpenAIClient) EmbedBatch(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	type reqBody struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}
	url := fmt.Sprintf("%s/embeddings", c.baseURL)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body := reqBody{Input: texts, Model: c.model}
		data, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			// Respect Retry-After if provided
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					_ = resp.Body.Close()
					time.Sleep(time.Duration(secs) * time.Second)
				} else {
					_ = resp.Body.Close()
					time.Sleep(retryDelay(attempt))
				}
			} else {
				_ = resp.Body.Close()
				time.Sleep(retryDelay(attempt))
			}
			if attempt < c.maxRetries {
				continue
			}
			return nil, fmt.Errorf("openai embeddings failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("openai embeddings failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}
		vecs, err := decodeBatch(payload, len(texts))
		if err == nil {
			if c.dimension == 0 && len(vecs) > 0 {
				c.dimension = len(vecs[0])
			}
			return vecs, nil
		}
		if attempt < c.maxRetries {
			time.Sleep(retryDelay(attempt))
			continue
		}
		return nil, err
	}
	return nil, errors.New("no embedding returned")
}

// decodeBatch accepts the OpenAI-compatible data-array shape first, then the
// Ollama-native single-embedding shape for servers that ignore list input.
func decodeBatch(payload []byte, want int) ([][]float64, error) {
	var openaiOut struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &openaiOut); err == nil && len(openaiOut.Data) == want {
		vecs := make([][]float64, want)
		for _, d := range openaiOut.Data {
			if d.Index < 0 || d.Index >= want || len(d.Embedding) == 0 {
				return nil, errors.New("malformed embedding batch response")
			}
			vecs[d.Index] = d.Embedding
		}
		for _, v := range vecs {
			if v == nil {
				return nil, errors.New("incomplete embedding batch response")
			}
		}
		return vecs, nil
	}
	var ollamaOut struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &ollamaOut); err == nil && want == 1 && len(ollamaOut.Embedding) > 0 {
		return [][]float64{ollamaOut.Embedding}, nil
	}
	return nil, errors.New("no embedding returned")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
