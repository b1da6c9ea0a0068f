package generator

import (
	"context"
	"errors"
	"net/http"

	"github.com/kiruthikag2611/Planify/internal/timetable"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const DefaultModel = openai.GPT4oMini

// OpenAI talks to any OpenAI compatible chat completion endpoint.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAI(config Config) *OpenAI {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: config.Temperature,
	}
}

func (g *OpenAI) Generate(ctx context.Context, req Request) (timetable.Schedule, error) {
	prompt, err := RenderPrompt(req)
	if err != nil {
		return timetable.Schedule{}, err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "personalized_schedule",
				Description: "A weekly timetable and a short summary of why it suits the user.",
				Schema:      scheduleSchema(),
			},
		},
	})
	if err != nil {
		log.Errorf("schedule generation failed: %v", err)
		return timetable.Schedule{}, generationError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return timetable.Schedule{}, generationError(errors.New("failed to generate schedule from AI prompt"))
	}

	s, err := ParseResponse([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		return timetable.Schedule{}, generationError(err)
	}
	log.Debugf("generated %d events with %s", len(s.Schedule), g.model)
	return s, nil
}
