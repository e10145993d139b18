package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/dpavlovic/climate-watch/internal/entities"
)

// Digest is the structured output produced from a set of news articles.
type Digest struct {
	Headline string   `json:"headline" jsonschema_description:"A single headline capturing the overall news picture"`
	Summary  string   `json:"summary" jsonschema_description:"A short plain-text summary of the supplied articles"`
	Themes   []string `json:"themes" jsonschema_description:"Up to five recurring themes across the articles"`
}

// DigestService defines the interface for summarizing collected articles.
type DigestService interface {
	SummarizeArticles(ctx context.Context, articles []entities.NewsArticle) (*Digest, error)
}

// digestServiceImpl implements the DigestService interface.
type digestServiceImpl struct {
	client openai.Client
	schema interface{}
}

// GenerateSchema generates a JSON schema for a given type.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// NewDigestService creates and initializes a new DigestService.
func NewDigestService() (DigestService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	schema := GenerateSchema[Digest]()

	return &digestServiceImpl{
		client: client,
		schema: schema,
	}, nil
}

// SummarizeArticles asks the model for a structured digest of the supplied
// article headlines.
func (s *digestServiceImpl) SummarizeArticles(ctx context.Context, articles []entities.NewsArticle) (*Digest, error) {
	if len(articles) == 0 {
		return nil, errors.New("no articles to summarize")
	}

	var list strings.Builder
	for _, a := range articles {
		list.WriteString(fmt.Sprintf("- %s (%s)\n", a.Title, a.Link))
	}

	systemPrompt := `You are a climate news analyst. Summarize the supplied article headlines into a short digest for readers tracking climate risk.

Requirements:
- Stick to what the headlines say; do not invent events or numbers.
- Keep the summary under 100 words.
- List at most five recurring themes.

Output **strictly** in JSON.`

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "digest",
		Description: openai.String("Structured digest of climate news headlines"),
		Schema:      s.schema,
		Strict:      openai.Bool(true),
	}

	respFormat := openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(list.String()),
		},
		ResponseFormat: respFormat,
		Model:          openai.ChatModelGPT4o,
	})

	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	var digest Digest
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &digest)
	if err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, chat.Choices[0].Message.Content)
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}

	return &digest, nil
}
