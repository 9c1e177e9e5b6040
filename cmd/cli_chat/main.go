package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pt-sim/internal/config"
	"pt-sim/internal/domain"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
	"pt-sim/internal/service"
)

// Runner interactivo de practica: elegir paciente, conversar, /score
// para ver el rubric sin levantar el servidor HTTP.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	personaRepo, err := repository.NewFilePersonaRepository(cfg.PersonaDir)
	if err != nil {
		log.Fatal(err)
	}

	var llmClient llm.Client = llm.NewEchoClient()
	if cfg.LLMEnabled && cfg.LLMAPIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	}

	chatSvc := service.NewChatService(logger, personaRepo, llmClient)
	scorer := service.NewDefaultScorer()

	persona, err := pickPatient(reader, personaRepo)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nTalking to %s (%s). Backend: %s\n", persona.Name, persona.Condition, chatSvc.BackendName())
	fmt.Println("Commands: /score /behavior <stoic|normal|dramatic> /reset /quit")

	state := domain.ConversationState{}
	var history []domain.Turn
	var sessionTags []string

	for {
		fmt.Print("\nyou> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "/quit":
			return
		case line == "/reset":
			state = domain.ConversationState{}
			history = nil
			sessionTags = nil
			fmt.Println("session reset")
			continue
		case line == "/score":
			printScore(scorer.Score(sessionTags))
			continue
		case strings.HasPrefix(line, "/behavior"):
			applyBehavior(chatSvc, strings.TrimSpace(strings.TrimPrefix(line, "/behavior")))
			continue
		}

		result, err := chatSvc.Chat(ctx, persona.ID, line, state, history)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("%s> %s\n", persona.Name, result.Reply)
		if len(result.Tags) > 0 {
			fmt.Printf("   [tags: %s]\n", strings.Join(result.Tags, ", "))
		}

		state = result.State
		history = append(history,
			domain.Turn{Role: domain.RoleUser, Content: line},
			domain.Turn{Role: domain.RolePatient, Content: result.Reply},
		)
		sessionTags = append(sessionTags, result.Tags...)
	}
}

func pickPatient(reader *bufio.Reader, repo repository.PersonaRepository) (domain.PatientSummary, error) {
	patients := repo.List()
	fmt.Println("===== Patients =====")
	for i, p := range patients {
		interp := ""
		if p.InterpreterNeeded {
			interp = fmt.Sprintf(" [interpreter: %s]", p.Language)
		}
		fmt.Printf("%d. %s (%d) - %s%s\n", i+1, p.Name, p.Age, p.Condition, interp)
	}
	fmt.Print("Pick a patient number: ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return domain.PatientSummary{}, err
	}
	var idx int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d", &idx); err != nil || idx < 1 || idx > len(patients) {
		return domain.PatientSummary{}, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return patients[idx-1], nil
}

func applyBehavior(svc *service.ChatService, painExpression string) {
	b := svc.Behavior()
	if painExpression != "" {
		b.PainExpression = painExpression
	}
	if err := svc.SetBehavior(b); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("behavior: cooperation=%s pain_expression=%s talkativeness=%s\n",
		b.Cooperation, b.PainExpression, b.Talkativeness)
}

func printScore(res domain.ScoreResult) {
	fmt.Printf("score: %.1f/%.1f (%d%%)\n", res.Score, res.Max, res.Percent)
	for _, d := range res.Details {
		mark := "miss"
		if d.Hit {
			mark = "hit "
		}
		fmt.Printf("  [%s] %-40s %.1f/%.1f\n", mark, d.Label, d.Points, d.Max)
	}
}
