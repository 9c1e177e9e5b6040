package domain

// RubricItem es una entrada fija del checklist de entrevista clinica.
// Un item se cumple si cualquiera de sus tags aparece en la sesion.
type RubricItem struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Tags   []string `json:"tags"`
	Points float64  `json:"points"`
}

// ItemResult detalla el resultado de un item al momento de puntuar.
type ItemResult struct {
	Item   string  `json:"item"`
	Label  string  `json:"label"`
	Hit    bool    `json:"hit"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

// ScoreResult se calcula fresco desde el set de tags; nunca se persiste.
type ScoreResult struct {
	Score   float64      `json:"score"`
	Max     float64      `json:"max"`
	Percent int          `json:"percent"`
	Details []ItemResult `json:"details"`
}
