package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	groqChatURL       = "https://api.groq.com/openai/v1/chat/completions"
	openRouterChatURL = "https://openrouter.ai/api/v1/chat/completions"

	defaultOpenRouterModel = "deepseek/deepseek-chat-v3.1:free"
)

var ErrNotConfigured = errors.New("no text generation provider configured")

type TextGenConfig struct {
	Provider         string
	GroqAPIKey       string
	GroqModel        string
	OpenRouterAPIKey string
	OpenRouterModel  string
	Timeout          time.Duration

	// Overridable endpoints, empty means the real provider URLs.
	GroqURL       string
	OpenRouterURL string
}

type TextGenRepository struct {
	cfg    TextGenConfig
	client *http.Client
}

func NewTextGenRepository(cfg TextGenConfig) *TextGenRepository {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.GroqURL == "" {
		cfg.GroqURL = groqChatURL
	}
	if cfg.OpenRouterURL == "" {
		cfg.OpenRouterURL = openRouterChatURL
	}

	return &TextGenRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type bundleCopy struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GenerateBundleCopy asks the configured provider for an improved bundle name
// and description. Provider order is Groq then OpenRouter unless AI_PROVIDER
// says otherwise; the first usable answer wins. Every call is bounded by the
// configured timeout.
func (r *TextGenRepository) GenerateBundleCopy(ctx context.Context, nameHint string, productNames []string, stock int) (string, string, error) {
	order := []string{"groq", "openrouter"}
	if strings.EqualFold(strings.TrimSpace(r.cfg.Provider), "openrouter") {
		order = []string{"openrouter", "groq"}
	}

	lastErr := ErrNotConfigured
	for _, provider := range order {
		var (
			name string
			desc string
			err  error
		)

		switch provider {
		case "groq":
			if r.cfg.GroqAPIKey == "" || r.cfg.GroqModel == "" {
				continue
			}
			name, desc, err = r.chatCompletion(ctx, r.cfg.GroqURL, r.cfg.GroqAPIKey, r.cfg.GroqModel, false, nameHint, productNames, stock)
		case "openrouter":
			if r.cfg.OpenRouterAPIKey == "" {
				continue
			}
			model := r.cfg.OpenRouterModel
			if model == "" {
				model = defaultOpenRouterModel
			}
			name, desc, err = r.chatCompletion(ctx, r.cfg.OpenRouterURL, r.cfg.OpenRouterAPIKey, model, true, nameHint, productNames, stock)
		}

		if err == nil {
			return name, desc, nil
		}
		lastErr = err
	}

	return "", "", lastErr
}

func (r *TextGenRepository) chatCompletion(ctx context.Context, url, apiKey, model string, openRouter bool, nameHint string, productNames []string, stock int) (string, string, error) {
	system := "You name and describe retail product bundles succinctly. " +
		"Return a compact JSON object with keys 'name' and 'description'."
	user := fmt.Sprintf(
		"Propose an improved, catchy yet honest bundle name and a single-sentence description.\n"+
			"Current name: %s\n"+
			"Products: %s\n"+
			"Stock (min across items): %d\n"+
			"Respond ONLY with JSON: {\"name\": string, \"description\": string}.",
		nameHint, strings.Join(productNames, ", "), stock,
	)

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return "", "", err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+apiKey)
	if openRouter {
		req.Header.Add("HTTP-Referer", "http://localhost")
		req.Header.Add("X-Title", "Huggle Bundler")
	}

	res, err := r.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", "", fmt.Errorf("text generation provider returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", "", err
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", "", errors.New("provider response has no choices")
	}

	copyObj, ok := extractJSONObject(chat.Choices[0].Message.Content)
	if !ok {
		return "", "", errors.New("no JSON object in provider response")
	}

	name := strings.TrimSpace(copyObj.Name)
	description := strings.TrimSpace(copyObj.Description)
	if name == "" || description == "" {
		return "", "", errors.New("provider returned empty name or description")
	}

	return name, description, nil
}

// extractJSONObject parses {"name","description"} out of model output,
// tolerating code fences and surrounding prose.
func extractJSONObject(text string) (bundleCopy, bool) {
	var out bundleCopy

	// Fast path
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, true
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &out); err == nil {
			return out, true
		}
	}

	// Fallback: first {...} block
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out, true
		}
	}

	return bundleCopy{}, false
}
