package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const connectionsTable = "platform_connections"

// ConnectionRepository lê os registros de conexão com a plataforma produzidos
// pelo fluxo de OAuth (externo a este serviço)
type ConnectionRepository interface {
	GetActiveConnectionByCampaignID(campaignID string) (*domain.PlatformConnection, error)
}

type connectionRepository struct {
	conn *postgres.Connection
}

func NewConnectionRepository(conn *postgres.Connection) ConnectionRepository {
	return &connectionRepository{
		conn: conn,
	}
}

func (r *connectionRepository) GetActiveConnectionByCampaignID(campaignID string) (*domain.PlatformConnection, error) {
	connectionSQL, connectionArgs, err := squirrel.
		Select("id, campaign_id, access_token, selected_account_id, status, token_expires_at, created_at").
		From(connectionsTable).
		Where(squirrel.Eq{
			"campaign_id": campaignID,
			"status":      domain.ConnectionStatusActive,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(connectionSQL, connectionArgs...)

	connection := &domain.PlatformConnection{}
	if err := row.Scan(
		&connection.ID,
		&connection.CampaignID,
		&connection.AccessToken,
		&connection.SelectedAccountID,
		&connection.Status,
		&connection.TokenExpiresAt,
		&connection.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return connection, nil
}
