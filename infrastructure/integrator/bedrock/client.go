package bedrock

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	providerName     = "bedrock"
	invokeEndpoint   = "invoke_model"
	anthropicVersion = "bedrock-2023-05-31"
	systemPrompt     = "You are a paid search strategist. Always answer with a single JSON object."
)

var ErrEmptyResponse = errors.New("bedrock retornou resposta vazia")

// ModelInvoker é o subconjunto do cliente bedrockruntime usado aqui
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type MessagesRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	System           string    `json:"system,omitempty"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature,omitempty"`
}

type MessagesResponse struct {
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type Client struct {
	invoker ModelInvoker
	config  *config.Config
}

// NewClient carrega as credenciais AWS pela cadeia padrão (env, profile, role) na região configurada
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Bedrock.Region))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar configuração AWS")
	}

	return NewClientWithInvoker(cfg, bedrockruntime.NewFromConfig(awsCfg)), nil
}

func NewClientWithInvoker(cfg *config.Config, invoker ModelInvoker) *Client {
	return &Client{
		invoker: invoker,
		config:  cfg,
	}
}

// Generate envia o prompt no formato messages da Anthropic. As credenciais do usuário não se aplicam ao Bedrock.
func (c *Client) Generate(ctx context.Context, prompt string, _ domain.Credentials) (text string, err error) {
	defer func() {
		metrics.RecordProviderRequest(providerName, invokeEndpoint, err)
	}()

	body, err := json.Marshal(MessagesRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.config.Bedrock.MaxTokens,
		System:           systemPrompt,
		Messages: []Message{
			{
				Role:    "user",
				Content: []ContentBlock{{Type: "text", Text: prompt}},
			},
		},
		Temperature: c.config.Bedrock.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar a requisição")
	}

	output, err := c.invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.config.Bedrock.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", errors.Wrap(err, "erro ao chamar o Bedrock")
	}

	var response MessagesResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar a resposta")
	}

	var builder strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	if builder.Len() == 0 {
		return "", ErrEmptyResponse
	}

	logrus.WithFields(logrus.Fields{
		"provider":      providerName,
		"input_tokens":  response.Usage.InputTokens,
		"output_tokens": response.Usage.OutputTokens,
		"stop_reason":   response.StopReason,
	}).Debug("Resposta recebida do Bedrock")

	return builder.String(), nil
}
