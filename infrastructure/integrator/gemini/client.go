package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	providerName     = "gemini"
	generateEndpoint = "generate_content"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key not configured")
	ErrEmptyResponse = errors.New("gemini retornou resposta vazia")
)

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type GenerateContentResponse struct {
	Candidates     []Candidate `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type Client struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Gemini.Timeout,
		},
		config: cfg,
	}
}

// Generate chama o endpoint generateContent. A chave da requisição tem prioridade sobre a da configuração.
func (c *Client) Generate(ctx context.Context, prompt string, credentials domain.Credentials) (text string, err error) {
	defer func() {
		metrics.RecordProviderRequest(providerName, generateEndpoint, err)
	}()

	apiKey := credentials.GeminiAPIKey
	if apiKey == "" {
		apiKey = c.config.Gemini.APIKey
	}
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{
			Temperature:     c.config.Gemini.Temperature,
			MaxOutputTokens: c.config.Gemini.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar a requisição")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.Gemini.BaseURL,
		url.PathEscape(c.config.Gemini.Model),
		url.QueryEscape(apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// a URL carrega a chave, então o erro original não é repassado
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", errors.New("erro ao chamar a API do Gemini")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("requisição para o Gemini falhou com status: %s", resp.Status)
	}

	var response GenerateContentResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if response.PromptFeedback.BlockReason != "" {
		return "", errors.Errorf("prompt bloqueado pelo Gemini: %s", response.PromptFeedback.BlockReason)
	}

	if len(response.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var builder strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}

	if builder.Len() == 0 {
		return "", ErrEmptyResponse
	}

	logrus.WithFields(logrus.Fields{
		"provider":      providerName,
		"finish_reason": response.Candidates[0].FinishReason,
	}).Debug("Resposta recebida do Gemini")

	return builder.String(), nil
}
