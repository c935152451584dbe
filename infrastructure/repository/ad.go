package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const adsTable = "ads"

const adColumns = `id, campaign_id, status, remote_ad_id, headline, primary_text,
	creative_assets, selected_variant, destination_type, destination_form_id,
	destination_url, destination_phone, published_at, approved_at, rejected_at,
	created_at, updated_at`

type AdRepository interface {
	GetAdByID(adID string) (*domain.Ad, error)
	GetAdByRemoteID(remoteAdID string) (*domain.Ad, error)
	UpdateAd(ad *domain.Ad) error
	ListPublishedAds() ([]*domain.Ad, error)
	ListPublishedAdsByCampaign(campaignID string) ([]*domain.Ad, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) GetAdByID(adID string) (*domain.Ad, error) {
	return r.getAd(squirrel.Eq{"id": adID})
}

func (r *adRepository) GetAdByRemoteID(remoteAdID string) (*domain.Ad, error) {
	return r.getAd(squirrel.Eq{"remote_ad_id": remoteAdID})
}

func (r *adRepository) getAd(whereClause map[string]interface{}) (*domain.Ad, error) {
	adSQL, adArgs, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(adSQL, adArgs...)

	ad, err := deserializeAd(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return ad, nil
}

// UpdateAd grava a linha inteira dos campos mutáveis do anúncio. O conteúdo do
// criativo/copy/destino pertence ao fluxo de edição externo; aqui apenas o
// resultado da publicação e reconciliação é persistido.
func (r *adRepository) UpdateAd(ad *domain.Ad) error {
	if ad.ID == "" {
		return errors.New("ID is required")
	}

	queryBuilder := squirrel.
		Update(adsTable).
		Set("status", ad.Status).
		Set("remote_ad_id", ad.RemoteAdID).
		Set("published_at", ad.PublishedAt).
		Set("approved_at", ad.ApprovedAt).
		Set("rejected_at", ad.RejectedAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": ad.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("ad not found")
	}

	return nil
}

// ListPublishedAds lista todos os anúncios com identificador remoto, ou seja,
// os elegíveis para reconciliação de status
func (r *adRepository) ListPublishedAds() ([]*domain.Ad, error) {
	return r.listAds(squirrel.And{
		squirrel.NotEq{"remote_ad_id": nil},
		squirrel.NotEq{"status": domain.AdStatusArchived},
	})
}

func (r *adRepository) ListPublishedAdsByCampaign(campaignID string) ([]*domain.Ad, error) {
	return r.listAds(squirrel.And{
		squirrel.Eq{"campaign_id": campaignID},
		squirrel.NotEq{"remote_ad_id": nil},
		squirrel.NotEq{"status": domain.AdStatusArchived},
	})
}

func (r *adRepository) listAds(whereClause squirrel.Sqlizer) ([]*domain.Ad, error) {
	adsSQL, adsArgs, err := squirrel.
		Select(adColumns).
		From(adsTable).
		Where(whereClause).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(adsSQL, adsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ads := make([]*domain.Ad, 0)

	for rows.Next() {
		ad, err := deserializeAdRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar o anúncio: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return ads, nil
}

type adScanner interface {
	Scan(dest ...interface{}) error
}

func deserializeAd(row *sql.Row) (*domain.Ad, error) {
	return scanAd(row)
}

func deserializeAdRow(rows *sql.Rows) (*domain.Ad, error) {
	return scanAd(rows)
}

func scanAd(s adScanner) (*domain.Ad, error) {
	ad := &domain.Ad{}

	var assets pq.StringArray
	var destinationType *string

	if err := s.Scan(
		&ad.ID,
		&ad.CampaignID,
		&ad.Status,
		&ad.RemoteAdID,
		&ad.Headline,
		&ad.PrimaryText,
		&assets,
		&ad.SelectedVariant,
		&destinationType,
		&ad.DestinationFormID,
		&ad.DestinationURL,
		&ad.DestinationPhone,
		&ad.PublishedAt,
		&ad.ApprovedAt,
		&ad.RejectedAt,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ad.CreativeAssets = assets
	if destinationType != nil {
		dt := domain.DestinationType(*destinationType)
		ad.DestinationType = &dt
	}

	return ad, nil
}
