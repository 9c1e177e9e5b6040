package domain

// Persona describe a un paciente simulado. Inmutable una vez cargado:
// ninguna conversacion lo modifica.
type Persona struct {
	Meta           PersonaMeta          `json:"meta"`
	Identity       Identity             `json:"identity"`
	Condition      string               `json:"condition"`
	ChiefComplaint string               `json:"chief_complaint"`
	HPI            HPI                  `json:"hpi"`
	ExamScript     ExamScript           `json:"exam_script"`
	Communication  CommunicationProfile `json:"communication_profile"`
	Context        PatientContext       `json:"context"`
	SDOH           SDOH                 `json:"sdoh"`
	Goals          []string             `json:"goals,omitempty"`
}

type PersonaMeta struct {
	PatientID string `json:"patient_id"`
	Version   string `json:"version,omitempty"`
}

type Identity struct {
	PreferredName     string `json:"preferred_name"`
	Pronouns          string `json:"pronouns"`
	Age               int    `json:"age"`
	SexAtBirth        string `json:"sex_at_birth,omitempty"`
	GenderIdentity    string `json:"gender_identity,omitempty"`
	Language          string `json:"language,omitempty"`
	InterpreterNeeded bool   `json:"interpreter_needed"`
}

// HPI recoge la historia de la enfermedad actual tal como la relataria el paciente.
type HPI struct {
	Onset       string   `json:"onset,omitempty"`
	Mechanism   string   `json:"mechanism,omitempty"`
	Location    string   `json:"location,omitempty"`
	SeverityNRS int      `json:"severity_nrs,omitempty"`
	Aggravators []string `json:"aggravators,omitempty"`
	Easers      []string `json:"easers,omitempty"`
	Pattern24h  string   `json:"24h_pattern,omitempty"`
	RedFlags    []string `json:"red_flags,omitempty"`
}

// ExamScript son hallazgos que el paciente solo comparte si se los piden.
type ExamScript struct {
	Observation   string            `json:"observation,omitempty"`
	AROM          map[string]string `json:"arom,omitempty"`
	SpecialTests  map[string]string `json:"special_tests,omitempty"`
	Neurovascular string            `json:"neurovascular,omitempty"`
}

type CommunicationProfile struct {
	Tone           string `json:"tone,omitempty"`
	Talkativeness  string `json:"talkativeness,omitempty"`
	HealthLiteracy string `json:"health_literacy,omitempty"`
}

type PatientContext struct {
	City               string `json:"city,omitempty"`
	RuralUrban         string `json:"rural_urban,omitempty"`
	SportParticipation string `json:"sport_participation,omitempty"`
	WorkStatus         string `json:"work_status,omitempty"`
}

type SDOH struct {
	Transport string `json:"transport,omitempty"`
}

// ID devuelve el identificador unico del paciente.
func (p Persona) ID() string {
	return p.Meta.PatientID
}

// NeedsInterpreterGate indica si la conversacion debe bloquearse hasta
// confirmar que hay interprete presente.
func (p Persona) NeedsInterpreterGate() bool {
	return p.Identity.InterpreterNeeded && p.Identity.Language != ""
}

// PatientSummary es la vista reducida que expone el listado de pacientes.
type PatientSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Condition         string `json:"condition"`
	ChiefComplaint    string `json:"chief_complaint"`
	Language          string `json:"language,omitempty"`
	InterpreterNeeded bool   `json:"interpreter_needed"`
}

// Summary arma la vista de listado a partir del registro completo.
func (p Persona) Summary() PatientSummary {
	return PatientSummary{
		ID:                p.ID(),
		Name:              p.Identity.PreferredName,
		Age:               p.Identity.Age,
		Condition:         p.Condition,
		ChiefComplaint:    p.ChiefComplaint,
		Language:          p.Identity.Language,
		InterpreterNeeded: p.Identity.InterpreterNeeded,
	}
}
