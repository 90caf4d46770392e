package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/domain"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const systemPrompt = "You are a helpful AI assistant for an educational platform. " +
	"Provide a clear, concise response to help the user. Be friendly but professional. " +
	"If an attached file is not relevant to the question, say so."

// fileOnlyInstruction stands in for the question when only a file was sent;
// Gemini rejects empty text parts.
const fileOnlyInstruction = "Please analyze the attached file and provide a clear and concise response."

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Answer(ctx context.Context, p chat.Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(p), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %v: %w", err, domain.ErrUpstream)
	}
	text := responseText(resp)
	log.Debug().Str("module", "llm").Str("model", g.model).Int("chars", len(text)).Msg("answer received")
	return text, nil
}

// BuildContents maps a prompt onto the conversation Gemini expects:
// prior turns first, then the question with its attachment.
func BuildContents(p chat.Prompt) []*genai.Content {
	contents := make([]*genai.Content, 0, len(p.History)+1)
	for _, m := range p.History {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := "user"
		if m.Role == chat.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Text}}})
	}

	question := strings.TrimSpace(p.Text)
	if question == "" {
		question = fileOnlyInstruction
	}
	var parts []*genai.Part
	if a := p.Attachment; a != nil {
		if a.IsText() {
			question += "\n\nAttached file:\n" + string(a.Data)
		} else {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: a.MIMEType, Data: a.Data}})
		}
	}
	for _, n := range p.Notes {
		question += "\n" + n
	}
	parts = append([]*genai.Part{{Text: question}}, parts...)
	return append(contents, &genai.Content{Role: "user", Parts: parts})
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
