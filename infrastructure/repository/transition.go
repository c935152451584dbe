package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
)

const transitionsTable = "status_transitions"

// TransitionRepository é a trilha de auditoria de mudanças de status.
// Registros são apenas inseridos; não existe update nem delete.
type TransitionRepository interface {
	Append(transition *domain.StatusTransition) error
	ListByAdID(adID string) ([]*domain.StatusTransition, error)
}

type transitionRepository struct {
	conn *postgres.Connection
}

func NewTransitionRepository(conn *postgres.Connection) TransitionRepository {
	return &transitionRepository{
		conn: conn,
	}
}

func (r *transitionRepository) Append(transition *domain.StatusTransition) error {
	if transition.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da transição: %w", err)
		}
		transition.ID = id
	}

	if transition.CreatedAt.IsZero() {
		transition.CreatedAt = time.Now()
	}

	var metadata interface{}
	if len(transition.Metadata) > 0 {
		metadata = []byte(transition.Metadata)
	}

	sqlQuery, args, err := squirrel.
		Insert(transitionsTable).
		Columns("id", "ad_id", "from_status", "to_status", "triggered_by", "notes", "metadata", "created_at").
		Values(
			transition.ID,
			transition.AdID,
			transition.FromStatus,
			transition.ToStatus,
			transition.TriggeredBy,
			transition.Notes,
			metadata,
			transition.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *transitionRepository) ListByAdID(adID string) ([]*domain.StatusTransition, error) {
	transitionsSQL, transitionsArgs, err := squirrel.
		Select("id, ad_id, from_status, to_status, triggered_by, notes, metadata, created_at").
		From(transitionsTable).
		Where(squirrel.Eq{"ad_id": adID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(transitionsSQL, transitionsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	transitions := make([]*domain.StatusTransition, 0)

	for rows.Next() {
		transition := &domain.StatusTransition{}
		var metadata []byte

		if err := rows.Scan(
			&transition.ID,
			&transition.AdID,
			&transition.FromStatus,
			&transition.ToStatus,
			&transition.TriggeredBy,
			&transition.Notes,
			&metadata,
			&transition.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a transição: %w", err)
		}

		transition.Metadata = metadata
		transitions = append(transitions, transition)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return transitions, nil
}
