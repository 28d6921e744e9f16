package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHuggingFaceEndpoint serves the t5-small summarization model
const DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models/t5-small"

// HuggingFace calls a hosted summarization pipeline
type HuggingFace struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewHuggingFace creates the inference API backend
func NewHuggingFace(endpoint, token string, timeout time.Duration) *HuggingFace {
	if endpoint == "" {
		endpoint = DefaultHuggingFaceEndpoint
	}
	return &HuggingFace{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

type hfParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

type hfRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters hfParameters    `json:"parameters"`
	Options    map[string]bool `json:"options,omitempty"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// SummarizeText posts the text with sampling disabled
func (h *HuggingFace) SummarizeText(ctx context.Context, text string, minLen, maxLen int) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MinLength: minLen,
			MaxLength: maxLen,
			DoSample:  false,
		},
		Options: map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("inference API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("inference API returned %d", resp.StatusCode)
	}

	var out []hfSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("malformed inference response: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", fmt.Errorf("malformed inference response: no summary_text")
	}

	return out[0].SummaryText, nil
}
