package service

import "regexp"

// Tags semanticos de la entrevista clinica.
const (
	TagOnset       = "onset"
	TagMechanism   = "mechanism"
	TagLocation    = "location"
	TagSeverity    = "severity"
	TagAggravators = "aggravators"
	TagEasers      = "easers"
	TagPattern     = "pattern"
	TagRedFlags    = "red_flags"
	TagGoals       = "goals"
	TagWork        = "work"
	TagTransport   = "transport"
	TagSummary     = "summary"
	TagExam        = "exam"

	// Emitidos por el flujo de chat, no por las reglas.
	TagInterpreterNeeded = "interpreter_needed"
	TagGuardrailsInvoked = "guardrails_invoked"
)

// TagRule asocia un tag con los patrones que lo disparan. La tabla es
// ordenada para que las reglas se puedan testear y extender sin tocar
// el flujo de deteccion.
type TagRule struct {
	Tag      string
	Patterns []*regexp.Regexp
}

func mustPatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

// defaultTagRules es la tabla fija de deteccion de preguntas del estudiante.
var defaultTagRules = []TagRule{
	{Tag: TagOnset, Patterns: mustPatterns(
		`\bonset\b`,
		`\bstart(ed)?\b`,
		`\bwhen did\b`,
		`\bsince\b`,
	)},
	{Tag: TagMechanism, Patterns: mustPatterns(
		`\bhow (did (it|this) )?happen(ed)?\b`,
		`\bmechanism\b`,
		`\bwhat were you doing\b`,
		`\binjur(ed|y)\b`,
	)},
	{Tag: TagLocation, Patterns: mustPatterns(
		`\bwhere\b`,
		`\blocation\b`,
		`\bexactly hurt(s)?\b`,
	)},
	{Tag: TagSeverity, Patterns: mustPatterns(
		`\bsever(ity|e)\b`,
		`\b([0-9]|10)\b.*\bpain\b`,
		`\bpain scale\b`,
		`\brate (your|the) pain\b`,
	)},
	{Tag: TagAggravators, Patterns: mustPatterns(
		`\bwhat makes.*worse\b`,
		`\bworse with\b`,
		`aggravat`,
	)},
	{Tag: TagEasers, Patterns: mustPatterns(
		`\bwhat helps\b`,
		`\bbetter with\b`,
		`reliev`,
	)},
	{Tag: TagPattern, Patterns: mustPatterns(
		`\b24.?hour\b`,
		`\bmorning\b`,
		`\bat night\b`,
		`\bpattern\b`,
	)},
	{Tag: TagRedFlags, Patterns: mustPatterns(
		`\bred flag`,
		`numb|tingl`,
		`\bsaddle\b`,
		`\bfever\b`,
		`\bunexplained\b`,
		`\bweight loss\b`,
	)},
	{Tag: TagGoals, Patterns: mustPatterns(
		`\bgoal`,
		`\bwhat do you want to get back to\b`,
		`\breturn to\b`,
	)},
	{Tag: TagWork, Patterns: mustPatterns(
		`\bwork\b`,
		`\bjob\b`,
		`\bduty\b`,
		`restriction`,
	)},
	{Tag: TagTransport, Patterns: mustPatterns(
		`\btransport\b`,
		`\bdrive\b`,
		`\bride(s)?\b`,
		`\bget here\b`,
	)},
	{Tag: TagSummary, Patterns: mustPatterns(
		`\bsummar(y|ize)\b`,
		`\brecap\b`,
		`\blet me make sure\b`,
	)},
	{Tag: TagExam, Patterns: mustPatterns(
		`\btest\b`,
		`\bexam\b`,
		`\bpalpate\b`,
		`\brange\b`,
		`\barom\b`,
		`\border\b`,
		`\bdo.*(drawer|tilt|hawkins|neer|patell)`,
	)},
}

// DetectTags recorre la tabla en orden y devuelve los tags cuyo primer
// patron calza con el texto. Texto sin coincidencias devuelve nil, no error.
// Cada tag se emite a lo sumo una vez por enunciado.
func DetectTags(userText string) []string {
	var hits []string
	for _, rule := range defaultTagRules {
		for _, pat := range rule.Patterns {
			if pat.MatchString(userText) {
				hits = append(hits, rule.Tag)
				break
			}
		}
	}
	return hits
}
