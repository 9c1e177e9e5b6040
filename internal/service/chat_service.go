package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"pt-sim/internal/domain"
	"pt-sim/internal/llm"
	"pt-sim/internal/repository"
)

// TurnResult es la salida de un turno de conversacion.
type TurnResult struct {
	Reply   string
	State   domain.ConversationState
	Tags    []string
	Patient domain.PatientSummary
}

// ChatService orquesta un turno: gate de interprete, guardrails,
// compilacion de prompt, llamada al gateway y tagging del enunciado.
// Cada turno es independiente; el estado viaja con el caller.
type ChatService struct {
	personas repository.PersonaRepository
	client   llm.Client
	builder  PatientPromptBuilder
	logger   *zap.Logger

	mu       sync.RWMutex
	behavior domain.BehaviorSettings
}

func NewChatService(
	logger *zap.Logger,
	personas repository.PersonaRepository,
	client llm.Client,
) *ChatService {
	return &ChatService{
		personas: personas,
		client:   client,
		logger:   logger,
		behavior: domain.DefaultBehavior(),
	}
}

// Behavior devuelve la combinacion de comportamiento activa.
func (s *ChatService) Behavior() domain.BehaviorSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.behavior
}

// SetBehavior actualiza la combinacion activa tras validarla.
func (s *ChatService) SetBehavior(b domain.BehaviorSettings) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.behavior = b
	s.mu.Unlock()
	s.logger.Info("behavior updated",
		zap.String("cooperation", b.Cooperation),
		zap.String("pain_expression", b.PainExpression),
		zap.String("talkativeness", b.Talkativeness),
	)
	return nil
}

// BackendName reporta que backend de generacion esta activo.
func (s *ChatService) BackendName() string {
	return s.client.Name()
}

// Chat procesa un turno y devuelve la respuesta completa.
func (s *ChatService) Chat(
	ctx context.Context,
	patientID, userText string,
	state domain.ConversationState,
	history []domain.Turn,
) (TurnResult, error) {
	return s.turn(ctx, patientID, userText, state, history, nil)
}

// ChatStream procesa el mismo turno entregando la respuesta en fragmentos
// ordenados via emit. La respuesta se genera y vet completa antes de
// emitir, asi el texto final del stream siempre coincide con el del
// camino sincrono.
func (s *ChatService) ChatStream(
	ctx context.Context,
	patientID, userText string,
	state domain.ConversationState,
	history []domain.Turn,
	emit func(fragment string),
) (TurnResult, error) {
	return s.turn(ctx, patientID, userText, state, history, emit)
}

func (s *ChatService) turn(
	ctx context.Context,
	patientID, userText string,
	state domain.ConversationState,
	history []domain.Turn,
	emit func(string),
) (TurnResult, error) {
	persona, err := s.personas.Get(patientID)
	if err != nil {
		return TurnResult{}, err
	}
	summary := persona.Summary()

	st := state.Clone()
	var tags []string

	// Gate de interprete: se resuelve antes de tocar el LLM para que la
	// persona nunca revele nada sin interprete confirmado.
	if persona.NeedsInterpreterGate() && !st.Bool(domain.StateInterpreterProvided) {
		tags = append(tags, TagInterpreterNeeded)
		lang := persona.Identity.Language
		var reply string
		if WantsInterpreter(userText) {
			st[domain.StateInterpreterProvided] = true
			reply = fmt.Sprintf("Thank you. With an interpreter for %s, I'm ready to continue. How can I help?", lang)
		} else {
			reply = fmt.Sprintf("Before we start, I need an interpreter for %s, please.", lang)
		}
		emitAll(emit, reply)
		return TurnResult{Reply: reply, State: st, Tags: tags, Patient: summary}, nil
	}

	// Guardrails sobre el enunciado entrante.
	if deflection, blocked := CheckDisallowedAsk(userText); blocked {
		tags = append(tags, TagGuardrailsInvoked)
		emitAll(emit, deflection)
		return TurnResult{Reply: deflection, State: st, Tags: tags, Patient: summary}, nil
	}

	messages := s.builder.BuildMessages(persona, s.Behavior(), st, history, userText)

	var fragments []string
	reply, err := s.client.GenerateStream(ctx, messages, func(frag string) {
		fragments = append(fragments, frag)
	})
	if err != nil {
		return TurnResult{}, fmt.Errorf("generate reply: %w", err)
	}

	vetted, redacted := VetReply(reply)
	if redacted {
		s.logger.Warn("reply redacted",
			zap.String("patient_id", patientID),
			zap.Int("reply_len", len(reply)),
		)
		tags = append(tags, TagGuardrailsInvoked)
		emitAll(emit, vetted)
	} else if emit != nil {
		for _, frag := range fragments {
			emit(frag)
		}
	}

	tags = append(tags, DetectTags(userText)...)
	if !st.Bool(domain.StateSharedChiefComplaint) {
		st[domain.StateSharedChiefComplaint] = true
	}

	return TurnResult{Reply: vetted, State: st, Tags: tags, Patient: summary}, nil
}

func emitAll(emit func(string), reply string) {
	if emit != nil {
		emit(reply)
	}
}
