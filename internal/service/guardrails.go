package service

import "regexp"

// Respuestas enlatadas cuando el guardrail intercepta el turno.
const (
	guardrailDeflection = "I'm not sure about that - I'm just here to tell you how it feels and what I notice day to day. " +
		"I don't know about diagnoses, imaging, or prescriptions."
	guardrailRedaction = "I'm not sure about the exact diagnosis or prescriptions - I'm mainly describing what I feel day to day."
)

// disallowedAsks: pedidos que el paciente simulado nunca responde
// (diagnostico, prescripcion, imagenes).
var disallowedAsks = mustPatterns(
	`\bwhat'?s my diagnosis\b`,
	`\bdiagnos(e|is)\b`,
	`\bcan you prescribe\b`,
	`\bwhat medication\b`,
	`\bimaging\b|\bx-?ray\b|\bmri\b|\bct\b`,
)

// replyLeakPatterns detecta respuestas del LLM que se salieron del rol.
var replyLeakPatterns = mustPatterns(
	`\bdiagnos`,
	`\bprescrib`,
)

var interpreterRequest = regexp.MustCompile(`(?i)\b(interpreter|translate|translator)\b`)

// CheckDisallowedAsk devuelve la deflexion enlatada cuando el enunciado
// pide diagnostico, prescripcion o imagenes.
func CheckDisallowedAsk(userText string) (string, bool) {
	for _, pat := range disallowedAsks {
		if pat.MatchString(userText) {
			return guardrailDeflection, true
		}
	}
	return "", false
}

// VetReply reemplaza la respuesta si el LLM filtro lenguaje de juicio
// clinico. Devuelve la respuesta final y si hubo redaccion.
func VetReply(reply string) (string, bool) {
	for _, pat := range replyLeakPatterns {
		if pat.MatchString(reply) {
			return guardrailRedaction, true
		}
	}
	return reply, false
}

// WantsInterpreter detecta que el estudiante ofrece o pide un interprete.
func WantsInterpreter(userText string) bool {
	return interpreterRequest.MatchString(userText)
}
