// challenge-reward-system/services/verifier_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// VerifierClient calls the external AI attestation gateway that judges
// whether a submitted photo was taken in a gym. Classification itself is
// fully owned by the gateway — this client's only contract is the verdict
// shape it returns.
type VerifierClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// Verdict is the validated attestation result for one photo.
type Verdict struct {
	Approved   bool   `json:"approved"`
	Confidence int    `json:"confidence"` // 0-100
	Reason     string `json:"reason"`
}

func NewVerifierClient(baseURL, apiKey string) *VerifierClient {
	return &VerifierClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   "google/gemini-3-flash-preview",
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

const verifierSystemPrompt = `You are a gym attendance verifier. Analyze the photo and decide whether the person is inside a gym/fitness facility.

Validation criteria:
- Visible gym equipment (dumbbells, machines, racks, mats, bars)
- Typical gym environment (mirrors, rubber flooring, etc.)
- The photo must not be a screen capture, a stock image, or obviously staged

Respond ONLY with JSON in this exact format:
{"approved": true/false, "confidence": 0-100, "reason": "short explanation"}`

var verdictJSONPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// VerifyPhoto sends the photo to the gateway and returns its validated
// verdict. Any malformed or partial response is rejected with an error —
// a session is only recorded when a well-formed verdict came back.
func (v *VerifierClient) VerifyPhoto(ctx context.Context, imageURL string) (*Verdict, error) {
	reqBody := map[string]interface{}{
		"model": v.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": verifierSystemPrompt,
			},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": "Analyze this photo. Is this person in a gym?",
					},
					{
						"type":      "image_url",
						"image_url": map[string]string{"url": imageURL},
					},
				},
			},
		},
	}
	jsonData, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1/chat/completions", strings.TrimRight(v.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.APIKey)

	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attestation gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("attestation gateway rate limited")
	case http.StatusPaymentRequired:
		return nil, fmt.Errorf("attestation gateway credits exhausted")
	default:
		log.Printf("Attestation gateway returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("attestation gateway error: %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("gateway response has no choices")
	}

	return parseVerdict(out.Choices[0].Message.Content)
}

// parseVerdict extracts the JSON verdict from the model's content and
// enforces the record shape the engine boundary requires.
func parseVerdict(content string) (*Verdict, error) {
	match := verdictJSONPattern.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("no JSON verdict in gateway content")
	}

	var raw struct {
		Approved   *bool   `json:"approved"`
		Confidence *int    `json:"confidence"`
		Reason     *string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("malformed verdict JSON: %w", err)
	}

	// Every field must be present; partial verdicts are rejected rather than
	// defaulted, so a half-formed answer can never count as a session.
	if raw.Approved == nil || raw.Confidence == nil || raw.Reason == nil {
		return nil, fmt.Errorf("verdict missing required fields")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return nil, fmt.Errorf("verdict confidence %d out of range 0-100", *raw.Confidence)
	}

	return &Verdict{
		Approved:   *raw.Approved,
		Confidence: *raw.Confidence,
		Reason:     *raw.Reason,
	}, nil
}
