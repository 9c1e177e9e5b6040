package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pt-sim/internal/domain"
)

// ErrPersonaNotFound distingue un patient_id desconocido de otras fallas.
var ErrPersonaNotFound = errors.New("persona not found")

// PersonaRepository expone el catalogo de pacientes simulados.
// Los registros son de solo lectura durante toda la vida del proceso.
type PersonaRepository interface {
	List() []domain.PatientSummary
	Get(id string) (domain.Persona, error)
}

// FilePersonaRepository carga archivos *.persona.json una sola vez al
// arrancar y los sirve desde memoria.
type FilePersonaRepository struct {
	byID  map[string]domain.Persona
	order []string
}

// NewFilePersonaRepository lee el directorio de personas. Si el directorio
// no existe o esta vacio usa el set semilla embebido.
func NewFilePersonaRepository(dir string) (*FilePersonaRepository, error) {
	personas, err := loadPersonaDir(dir)
	if err != nil {
		return nil, err
	}
	if len(personas) == 0 {
		personas = SeedPersonas()
	}
	return newFromPersonas(personas)
}

// NewSeededPersonaRepository construye el repositorio solo con las semillas.
func NewSeededPersonaRepository() *FilePersonaRepository {
	repo, err := newFromPersonas(SeedPersonas())
	if err != nil {
		// Las semillas son estaticas; un duplicado aqui es un bug de compilacion de datos.
		panic(err)
	}
	return repo
}

func newFromPersonas(personas []domain.Persona) (*FilePersonaRepository, error) {
	byID := make(map[string]domain.Persona, len(personas))
	order := make([]string, 0, len(personas))
	for _, p := range personas {
		id := strings.TrimSpace(p.ID())
		if id == "" {
			return nil, fmt.Errorf("persona without meta.patient_id")
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate persona id %q", id)
		}
		byID[id] = p
		order = append(order, id)
	}
	sort.Strings(order)
	return &FilePersonaRepository{byID: byID, order: order}, nil
}

func loadPersonaDir(dir string) ([]domain.Persona, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := filepath.Glob(filepath.Join(dir, "*.persona.json"))
	if err != nil {
		return nil, fmt.Errorf("scan persona dir: %w", err)
	}
	sort.Strings(entries)

	var personas []domain.Persona
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read persona %s: %w", filepath.Base(path), err)
		}
		var p domain.Persona
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse persona %s: %w", filepath.Base(path), err)
		}
		if p.Meta.PatientID == "" {
			// Nombre de archivo P-XXXX.persona.json como fallback de id.
			base := filepath.Base(path)
			p.Meta.PatientID = strings.TrimSuffix(base, ".persona.json")
		}
		personas = append(personas, p)
	}
	return personas, nil
}

// List devuelve un resumen por paciente en orden estable por id.
func (r *FilePersonaRepository) List() []domain.PatientSummary {
	out := make([]domain.PatientSummary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Summary())
	}
	return out
}

// Get devuelve el registro completo o ErrPersonaNotFound.
func (r *FilePersonaRepository) Get(id string) (domain.Persona, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Persona{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, id)
	}
	return p, nil
}

// Len devuelve cuantas personas hay cargadas.
func (r *FilePersonaRepository) Len() int {
	return len(r.order)
}
