package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/alicebot/internal/core"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the generateContent API. Each Complete call is a fresh
// single-turn session; conversation history travels inside the prompt text.
type Gemini struct {
	baseProvider
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(geminiBaseURL, apiKey, model),
	}
}

// NewGeminiWithBaseURL exists for tests pointed at a local server.
func NewGeminiWithBaseURL(baseURL, apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

func newGeminiRequest(parts ...geminiPart) geminiRequest {
	var req geminiRequest
	req.Contents = append(req.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})
	req.GenerationConfig = &geminiGenerationConfig{
		Temperature:     0.3,
		TopP:            0.95,
		TopK:            30,
		MaxOutputTokens: 8192,
	}
	return req
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := g.generate(ctx, newGeminiRequest(geminiPart{Text: prompt}))
	if err != nil {
		return "", &core.ProviderError{Provider: "gemini", Err: err}
	}
	return text, nil
}

func (g *Gemini) Analyze(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	req := newGeminiRequest(
		geminiPart{Text: prompt},
		geminiPart{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		}},
	)

	text, err := g.generate(ctx, req)
	if err != nil {
		return "", &core.ProviderError{Provider: "gemini-vision", Err: err}
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, payload geminiRequest) (string, error) {
	path := fmt.Sprintf("/models/%s:generateContent?key=%s", g.model, g.apiKey)

	resp, err := g.doRequest(ctx, http.MethodPost, path, payload, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseGeminiResponse(resp)
}

func parseGeminiResponse(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates: %s", string(data))
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
