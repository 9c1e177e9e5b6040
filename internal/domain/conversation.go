package domain

// Claves de estado que el flujo de chat escribe turno a turno.
const (
	StateInterpreterProvided  = "interpreter_provided"
	StateSharedChiefComplaint = "shared_cc"
)

// ConversationState es el mapa de flags que el cliente rebota en cada turno.
// Vive solo dentro de una sesion; nunca se comparte ni se persiste.
type ConversationState map[string]any

// Clone copia el estado para que cada turno mute su propia version.
func (s ConversationState) Clone() ConversationState {
	out := make(ConversationState, len(s)+2)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Bool lee un flag booleano; claves ausentes o de otro tipo cuentan como false.
func (s ConversationState) Bool(key string) bool {
	v, ok := s[key].(bool)
	return ok && v
}

// Turn es un mensaje previo de la conversacion que el cliente reenvia.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser    = "user"
	RolePatient = "patient"
)
