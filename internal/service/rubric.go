package service

import (
	"math"

	"pt-sim/internal/domain"
)

// DefaultRubric es el checklist fijo de la entrevista subjetiva.
func DefaultRubric() []domain.RubricItem {
	return []domain.RubricItem{
		{ID: "onset", Label: "Asked onset/timeline", Tags: []string{TagOnset}, Points: 1.0},
		{ID: "mechanism", Label: "Clarified mechanism/context", Tags: []string{TagMechanism}, Points: 1.0},
		{ID: "location", Label: "Clarified pain location", Tags: []string{TagLocation}, Points: 0.5},
		{ID: "severity", Label: "Quantified severity (NRS)", Tags: []string{TagSeverity}, Points: 0.5},
		{ID: "aggravators", Label: "Identified aggravating factors", Tags: []string{TagAggravators}, Points: 1.0},
		{ID: "easers", Label: "Identified easing factors", Tags: []string{TagEasers}, Points: 1.0},
		{ID: "pattern", Label: "Explored 24-hour pattern", Tags: []string{TagPattern}, Points: 0.5},
		{ID: "red_flags", Label: "Screened red flags", Tags: []string{TagRedFlags}, Points: 2.0},
		{ID: "work", Label: "Checked work/role demands", Tags: []string{TagWork}, Points: 0.5},
		{ID: "transport", Label: "Checked transport/access", Tags: []string{TagTransport}, Points: 0.5},
		{ID: "goals", Label: "Established patient goals", Tags: []string{TagGoals}, Points: 1.0},
		{ID: "exam", Label: "Discussed or referenced exam findings", Tags: []string{TagExam}, Points: 1.5},
	}
}

// Scorer evalua el set de tags acumulado contra el checklist.
// Determinista e idempotente; no muta sus entradas.
type Scorer struct {
	items []domain.RubricItem
}

func NewScorer(items []domain.RubricItem) *Scorer {
	return &Scorer{items: items}
}

func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultRubric())
}

// Items expone el checklist (copia superficial; los items son fijos).
func (s *Scorer) Items() []domain.RubricItem {
	return s.items
}

// Score marca cada item como hit si alguno de sus tags aparece en el set
// acumulado y calcula el porcentaje redondeado a entero. Un set vacio
// devuelve 0% con todos los items en miss; no es un error.
func (s *Scorer) Score(tags []string) domain.ScoreResult {
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[t] = struct{}{}
	}

	var earned, max float64
	details := make([]domain.ItemResult, 0, len(s.items))
	for _, item := range s.items {
		hit := false
		for _, t := range item.Tags {
			if _, ok := tagSet[t]; ok {
				hit = true
				break
			}
		}
		points := 0.0
		if hit {
			points = item.Points
		}
		earned += points
		max += item.Points
		details = append(details, domain.ItemResult{
			Item:   item.ID,
			Label:  item.Label,
			Hit:    hit,
			Points: points,
			Max:    item.Points,
		})
	}

	percent := 0
	if max > 0 {
		percent = int(math.Round(100 * earned / max))
	}
	return domain.ScoreResult{
		Score:   earned,
		Max:     max,
		Percent: percent,
		Details: details,
	}
}
