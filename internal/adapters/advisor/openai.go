package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/simosh/storefront/internal/domain"
)

var langNames = map[domain.Language]string{
	domain.LangUZ: "Uzbek",
	domain.LangRU: "Russian",
	domain.LangEN: "English",
	domain.LangTR: "Turkish",
}

// OpenAI answers shopper questions with the active catalog as context.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}
}

func (a *OpenAI) Respond(ctx context.Context, prompt string, products []domain.AdvisorProduct, lang domain.Language) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("empty prompt")
	}

	var b strings.Builder
	b.WriteString("You are the product advisor of Simosh, a boutique natural soap brand. ")
	fmt.Fprintf(&b, "Answer in %s, briefly and warmly. ", langNames[lang])
	b.WriteString("Recommend only from this catalog (name — description — price in UZS):\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s — %s — %d\n", p.Name, p.Description, p.Price)
	}
	b.WriteString("If nothing fits, say so honestly.")

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := a.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: b.String()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   500,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
