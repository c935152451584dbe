package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const campaignsTable = "campaigns"

// CampaignRepository é somente leitura: campanhas são criadas e editadas pelo
// fluxo de gerenciamento de campanhas, fora deste serviço
type CampaignRepository interface {
	GetCampaignByID(campaignID string) (*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetCampaignByID(campaignID string) (*domain.Campaign, error) {
	campaignSQL, campaignArgs, err := squirrel.
		Select("id, owner_user_id, name, goal, daily_budget_cents, targeting_locations, created_at").
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(campaignSQL, campaignArgs...)

	campaign := &domain.Campaign{}
	var locations pq.StringArray

	if err := row.Scan(
		&campaign.ID,
		&campaign.OwnerUserID,
		&campaign.Name,
		&campaign.Goal,
		&campaign.DailyBudgetCents,
		&locations,
		&campaign.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	campaign.TargetingLocations = locations

	return campaign, nil
}
