package llm

import (
	"context"
	"strings"
)

// EchoClient repite el ultimo mensaje de usuario. Sirve para trabajar
// offline y para tests deterministas.
type EchoClient struct{}

func NewEchoClient() *EchoClient { return &EchoClient{} }

func (*EchoClient) Name() string { return "echo" }

func (*EchoClient) Generate(_ context.Context, messages []Message) (string, error) {
	return "(echo) " + LastUserContent(messages), nil
}

// GenerateStream simula un stream de tokens separando la respuesta por palabras.
func (c *EchoClient) GenerateStream(ctx context.Context, messages []Message, onToken func(string)) (string, error) {
	full, err := c.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if onToken != nil {
		words := strings.Split(full, " ")
		for i, w := range words {
			if i < len(words)-1 {
				w += " "
			}
			onToken(w)
		}
	}
	return full, nil
}
