package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const chatbotSystemInstruction = `You are Meetzy's community safety assistant. Your job is to answer user questions clearly and concisely, while promoting safety and trust in the Meetzy community. Format every response as a valid JSON object like this:

{
  "response": "Your answer here (keep it under 2 sentences)",
  "safety_info": {
    "related_risks": [ "risk1", "risk2" ],
    "platform_protections": [ "protection1", "protection2" ],
    "user_tips": [ "tip1", "tip2" ]
  },
  "source": "Meetzy Community Guidelines"
}

Rules:
1. Include the "safety_info" section only when the user question involves safety, privacy, meetups, or behavior.
2. Keep the main "response" clear and no more than 2 sentences.
3. Never share personal contact details or confidential info.
4. Promote respectful communication, avoiding hate, harassment, or discrimination.
5. Always remind users not to share personal info, meet only in public places, and follow community manners.
6. If the issue involves illegal activity or danger, tell the user to contact the police.
7. Validate your JSON before sending the output.
8. Never answer questions outside the scope of Meetzy's community platform.`

// ChatbotService is a thin proxy in front of the Gemini API.
type ChatbotService struct {
	client *genai.Client
}

func NewChatbotService(ctx context.Context, apiKey string) (*ChatbotService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is missing")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &ChatbotService{client: client}, nil
}

// Chat sends one user message and returns the model's parsed JSON reply.
// Returns ErrModelOutput when the model response is not valid JSON.
func (s *ChatbotService) Chat(ctx context.Context, message string) (map[string]any, error) {
	model := s.client.GenerativeModel("gemini-1.5-pro-latest")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.5)
	model.SetTopP(1)
	model.SetMaxOutputTokens(500)
	model.SystemInstruction = &genai.Content{
		Role:  "system",
		Parts: []genai.Part{genai.Text(chatbotSystemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(strings.TrimSpace(message)))
	if err != nil {
		return nil, err
	}

	text := responseText(resp)
	cleaned := strings.TrimSpace(strings.NewReplacer("```json", "", "```", "").Replace(text))

	var out map[string]any
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelOutput, err)
	}
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}

// Close releases the underlying API client.
func (s *ChatbotService) Close() error {
	return s.client.Close()
}
