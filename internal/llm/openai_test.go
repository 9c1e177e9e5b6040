package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "context deadline maps to timeout",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
			want: ErrTimeout,
		},
		{
			name: "401 maps to auth",
			err:  &openai.APIError{HTTPStatusCode: http.StatusUnauthorized},
			want: ErrAuth,
		},
		{
			name: "403 maps to auth",
			err:  &openai.APIError{HTTPStatusCode: http.StatusForbidden},
			want: ErrAuth,
		},
		{
			name: "429 maps to rate limited",
			err:  &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			want: ErrRateLimited,
		},
		{
			name: "500 maps to upstream",
			err:  &openai.APIError{HTTPStatusCode: http.StatusInternalServerError},
			want: ErrUpstream,
		},
		{
			name: "plain network error maps to upstream",
			err:  errors.New("connection refused"),
			want: ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("classifyError(%v) = %v; want %v", tt.err, got, tt.want)
			}
		})
	}
}
