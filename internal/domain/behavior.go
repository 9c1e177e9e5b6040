package domain

import "fmt"

// Ejes de comportamiento: cooperacion(2) x expresion de dolor(3) x locuacidad(2).
const (
	CooperationWilling   = "willing"
	CooperationResistant = "resistant"

	PainExpressionStoic    = "stoic"
	PainExpressionNormal   = "normal"
	PainExpressionDramatic = "dramatic"

	TalkativenessNormal  = "normal"
	TalkativenessVerbose = "verbose"
)

// BehaviorSettings es la combinacion de comportamiento activa del simulador.
// La expresion de dolor domina cuando los ejes entran en conflicto.
type BehaviorSettings struct {
	Cooperation        string `json:"cooperation"`
	PainExpression     string `json:"pain_expression"`
	Talkativeness      string `json:"talkativeness"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

// DefaultBehavior es la combinacion neutra con la que arranca el servicio.
func DefaultBehavior() BehaviorSettings {
	return BehaviorSettings{
		Cooperation:    CooperationWilling,
		PainExpression: PainExpressionNormal,
		Talkativeness:  TalkativenessNormal,
	}
}

// Validate rechaza valores fuera de la matriz 2x3x2.
func (b BehaviorSettings) Validate() error {
	switch b.Cooperation {
	case CooperationWilling, CooperationResistant:
	default:
		return fmt.Errorf("invalid cooperation %q", b.Cooperation)
	}
	switch b.PainExpression {
	case PainExpressionStoic, PainExpressionNormal, PainExpressionDramatic:
	default:
		return fmt.Errorf("invalid pain_expression %q", b.PainExpression)
	}
	switch b.Talkativeness {
	case TalkativenessNormal, TalkativenessVerbose:
	default:
		return fmt.Errorf("invalid talkativeness %q", b.Talkativeness)
	}
	return nil
}
