package llm

import (
	"context"
	"errors"
)

// Roles aceptados por las APIs de chat.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message es un mensaje de chat minimo para el gateway LLM.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client define la interfaz para generar respuestas con un LLM.
// GenerateStream entrega fragmentos en orden via onToken y devuelve el texto final completo.
type Client interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
	GenerateStream(ctx context.Context, messages []Message, onToken func(fragment string)) (string, error)
}

// Errores centinela para que el caller distinga fallas upstream sin
// inspeccionar tipos concretos del proveedor.
var (
	ErrAuth        = errors.New("llm: authentication failed")
	ErrRateLimited = errors.New("llm: rate limited")
	ErrTimeout     = errors.New("llm: request timed out")
	ErrUpstream    = errors.New("llm: upstream error")
	ErrEmptyReply  = errors.New("llm: empty response")
)

// LastUserContent devuelve el contenido del ultimo mensaje de usuario.
func LastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
