// Package gemini is the client for the remote vision model: model discovery
// against the catalog endpoint and one transcription request per image.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/safwanhafeez/Document-Scanner-OCR/internal/config"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrNoResponse is returned for every transcription failure mode: transport
// error, non-200 status, or a response without a usable candidate.
var ErrNoResponse = errors.New("no response from gemini")

const transcribePrompt = `You are an expert OCR and technical diagram transcription system.

TASK:
1. Transcribe all text from the image accurately.
2. If you see any diagrams, charts, graphs, or technical illustrations:
   - DO NOT describe them in text.
   - Instead, write a Python script using matplotlib to RECREATE that diagram exactly.
   - Place the Python code inside these specific tags: [[DIAGRAM_CODE_START]] ... [[DIAGRAM_CODE_END]]
   - The Python code MUST save the figure to a file named 'generated_diagram.png' and close the plot.
   - Example code structure:
     import matplotlib.pyplot as plt
     fig, ax = plt.subplots()
     plt.savefig('generated_diagram.png')
     plt.close()
   - Use ONLY matplotlib and numpy.

FORMATTING:
- Output the text normally.
- Insert the diagram code blocks in the natural flow where the diagrams appear in the document.`

type Client struct {
	cfg      config.GeminiConfig
	log      *logrus.Logger
	catalog  *http.Client
	generate *http.Client
}

func NewClient(cfg config.GeminiConfig, log *logrus.Logger) *Client {
	return &Client{
		cfg:      cfg,
		log:      log,
		catalog:  utils.NewHTTPClient(cfg.CatalogTimeout),
		generate: utils.NewHTTPClient(cfg.GenerateTimeout),
	}
}

type modelCatalog struct {
	Models []catalogEntry `json:"models"`
}

type catalogEntry struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

func (e catalogEntry) supportsGeneration() bool {
	for _, m := range e.SupportedGenerationMethods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

// ResolveModel picks the model for this request from the provider catalog.
// The first generation-capable entry containing "flash" wins immediately; a
// "pro" entry is remembered as a fallback but does not stop the scan. Any
// catalog failure falls back to the configured default.
func (c *Client) ResolveModel(ctx context.Context) string {
	name := c.cfg.DefaultModel

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsURL(), nil)
	if err != nil {
		return name
	}
	resp, err := c.catalog.Do(req)
	if err != nil {
		c.log.Errorf("model discovery failed: %v", err)
		return name
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("model discovery failed: status %d", resp.StatusCode)
		return name
	}

	var cat modelCatalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		c.log.Errorf("model discovery failed: %v", err)
		return name
	}
	for _, entry := range cat.Models {
		if !entry.supportsGeneration() {
			continue
		}
		modelName := strings.TrimPrefix(entry.Name, "models/")
		if strings.Contains(modelName, "flash") {
			c.log.Infof("using model: %s", modelName)
			return modelName
		}
		if strings.Contains(modelName, "pro") {
			name = modelName
		}
	}

	c.log.Infof("using fallback model: %s", name)
	return name
}

// Transcribe sends one image and returns the raw response text. It never
// panics past its boundary; all failures collapse into ErrNoResponse.
func (c *Client) Transcribe(ctx context.Context, image []byte) (string, error) {
	model := c.ResolveModel(ctx)

	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: transcribePrompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, model, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.generate.Do(req)
	if err != nil {
		c.log.Errorf("gemini request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Errorf("gemini api error: status %d: %s", resp.StatusCode, data)
		return "", fmt.Errorf("%w: status %d", ErrNoResponse, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		c.log.Error("no response candidates from gemini api")
		return "", fmt.Errorf("%w: no candidates", ErrNoResponse)
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		c.log.Error("empty response text from gemini api")
		return "", fmt.Errorf("%w: empty response text", ErrNoResponse)
	}
	return text, nil
}

// Ping probes the catalog endpoint; used by the health check.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsURL(), nil)
	if err != nil {
		return err
	}
	resp, err := c.catalog.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini api test failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) modelsURL() string {
	return c.cfg.BaseURL + "/models?key=" + url.QueryEscape(c.cfg.APIKey)
}
