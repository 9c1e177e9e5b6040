package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	Chunks   []string
	Prompts  [][]Message
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Generate(_ context.Context, messages []Message) (string, error) {
	m.Prompts = append(m.Prompts, messages)
	return m.Response, m.Err
}

func (m *MockClient) GenerateStream(ctx context.Context, messages []Message, onToken func(string)) (string, error) {
	m.Prompts = append(m.Prompts, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Chunks) == 0 {
		if onToken != nil {
			onToken(m.Response)
		}
		return m.Response, nil
	}
	var full string
	for _, ch := range m.Chunks {
		full += ch
		if onToken != nil {
			onToken(ch)
		}
	}
	return full, nil
}
