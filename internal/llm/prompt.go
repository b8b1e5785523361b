package llm

import (
	openai "github.com/sashabaranov/go-openai"

	"sereno-backend/internal/model"
)

const systemPrimer = `You are a supportive mental health chatbot. Your responses should be:
- Empathetic and understanding
- Focused on mental health support and well-being
- Non-judgmental and encouraging
- Clear about not being a replacement for professional help
- Careful to avoid medical advice or diagnosis
Always recommend professional help for serious concerns.`

const primerAck = `I understand my role as a supportive mental health chatbot. I will provide empathetic, non-judgmental support while being mindful of my limitations and encouraging professional help when needed.`

// BuildContext converts prior turns into the provider's message format,
// always prefixed with the fixed two-turn primer. The caller decides how
// much history to pass; nothing is trimmed here, so context grows with
// conversation length until a provider token ceiling bites.
func BuildContext(turns []model.ContextTurn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+2)
	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrimer},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: primerAck},
	)

	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		if turn.Role == string(model.SenderBot) {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	return messages
}
