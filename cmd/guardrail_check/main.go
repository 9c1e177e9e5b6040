package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"pt-sim/internal/domain"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

// Scenario describe un turno contra un paciente y lo que se espera de el.
type Scenario struct {
	Name         string
	PatientID    string
	State        domain.ConversationState
	UserInput    string
	WantTags     []string
	WantContains string
	WantLLMCall  bool
}

func main() {
	ctx := context.Background()

	logger := zap.NewNop()
	personas := repository.NewSeededPersonaRepository()

	scenarios := []Scenario{
		{
			Name:         "Interpreter gate blocks first contact",
			PatientID:    "P-0011",
			UserInput:    "Hi, can you tell me what happened?",
			WantTags:     []string{service.TagInterpreterNeeded},
			WantContains: "interpreter",
			WantLLMCall:  false,
		},
		{
			Name:         "Interpreter confirmation lifts the gate",
			PatientID:    "P-0011",
			UserInput:    "The interpreter is here with us now.",
			WantTags:     []string{service.TagInterpreterNeeded},
			WantContains: "ready to continue",
			WantLLMCall:  false,
		},
		{
			Name:         "Diagnosis ask is deflected",
			PatientID:    "P-0002",
			UserInput:    "What do you think your diagnosis is?",
			WantTags:     []string{service.TagGuardrailsInvoked},
			WantContains: "I'm not sure about that",
			WantLLMCall:  false,
		},
		{
			Name:        "Onset question reaches the backend and is tagged",
			PatientID:   "P-0002",
			UserInput:   "When did the pain start?",
			WantTags:    []string{service.TagOnset},
			WantLLMCall: true,
		},
		{
			Name:        "Mechanism question is tagged",
			PatientID:   "P-0007",
			UserInput:   "How did it happen?",
			WantTags:    []string{service.TagMechanism},
			WantLLMCall: true,
		},
		{
			Name:        "Small talk passes through untagged",
			PatientID:   "P-0002",
			UserInput:   "Thanks for coming in today.",
			WantTags:    nil,
			WantLLMCall: true,
		},
	}

	passed := 0
	total := len(scenarios)

	for _, sc := range scenarios {
		fmt.Printf("=== Running: %s ===\n", sc.Name)

		mock := &llm.MockClient{Response: "It started after practice."}
		svc := service.NewChatService(logger, personas, mock)

		result, err := svc.Chat(ctx, sc.PatientID, sc.UserInput, sc.State, nil)
		if err != nil {
			fmt.Printf("FAIL [%s] chat turn: %v\n\n", sc.Name, err)
			continue
		}

		ok := true
		for _, want := range sc.WantTags {
			if !containsTag(result.Tags, want) {
				fmt.Printf("FAIL [%s] missing tag %q in %v\n", sc.Name, want, result.Tags)
				ok = false
			}
		}
		if sc.WantTags == nil && len(result.Tags) != 0 {
			fmt.Printf("FAIL [%s] expected no tags, got %v\n", sc.Name, result.Tags)
			ok = false
		}
		if sc.WantContains != "" && !strings.Contains(strings.ToLower(result.Reply), strings.ToLower(sc.WantContains)) {
			fmt.Printf("FAIL [%s] reply %q does not contain %q\n", sc.Name, result.Reply, sc.WantContains)
			ok = false
		}
		called := len(mock.Prompts) > 0
		if called != sc.WantLLMCall {
			fmt.Printf("FAIL [%s] backend called=%t, expected %t\n", sc.Name, called, sc.WantLLMCall)
			ok = false
		}

		if ok {
			fmt.Printf("PASS [%s] reply=%q tags=%v\n\n", sc.Name, result.Reply, result.Tags)
			passed++
		} else {
			fmt.Println()
		}
	}

	fmt.Printf("Checks: %d/%d passed\n", passed, total)
	if passed != total {
		os.Exit(1)
	}
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
