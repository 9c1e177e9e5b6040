package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pt-sim/internal/domain"
)

// TranscriptEntry es una linea del log de practica. El flujo de chat solo
// escribe; la lectura es para revision de instructores, nunca vuelve a
// alimentar una sesion.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	PatientID string    `json:"patient_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptRepository persiste turnos de chat para revision posterior
// de los instructores. Opcional: el handler lo ignora cuando es nil.
type TranscriptRepository interface {
	Append(ctx context.Context, entry TranscriptEntry) error
	ListBySessionID(ctx context.Context, sessionID string) ([]TranscriptEntry, error)
}

type PgTranscriptRepository struct {
	pool *pgxpool.Pool
}

func NewPgTranscriptRepository(pool *pgxpool.Pool) *PgTranscriptRepository {
	return &PgTranscriptRepository{pool: pool}
}

func (r *PgTranscriptRepository) Append(ctx context.Context, entry TranscriptEntry) error {
	const query = `
		INSERT INTO chat_log (id, session_id, patient_id, role, content, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.PatientID,
		entry.Role,
		entry.Content,
		entry.Tags,
		entry.CreatedAt,
	)
	return err
}

func (r *PgTranscriptRepository) ListBySessionID(ctx context.Context, sessionID string) ([]TranscriptEntry, error) {
	const query = `
		SELECT id, session_id, patient_id, role, content, tags, created_at
		FROM chat_log
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TranscriptEntry
	for rows.Next() {
		var e TranscriptEntry
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.PatientID,
			&e.Role,
			&e.Content,
			&e.Tags,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Roles del log de transcripcion.
const (
	TranscriptRoleUser    = domain.RoleUser
	TranscriptRolePatient = domain.RolePatient
)
