package credentials

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// Erros de resolução de credencial
var (
	ErrNoCredential      = errors.New("nenhuma credencial ativa para a campanha")
	ErrTokenExpired      = errors.New("token da conexão expirado, é necessário reautorizar a plataforma")
	ErrNoAccountSelected = errors.New("nenhuma conta de anúncios selecionada na conexão")
)

// Margem de segurança antes da expiração do token. Tokens a menos de uma hora
// de expirar são tratados como expirados para não iniciar uma publicação que
// falharia no meio.
const tokenExpiryMargin = 1 * time.Hour

// Provider resolve a credencial e a conta de anúncios selecionada de uma
// campanha. A aquisição da credencial (OAuth) é externa a este serviço; aqui
// apenas consumimos o registro de conexão produzido por ela.
type Provider interface {
	GetCredential(campaignID string) (*domain.PlatformCredential, error)
}

type provider struct {
	connectionRepo repository.ConnectionRepository
}

func NewProvider(connectionRepo repository.ConnectionRepository) Provider {
	return &provider{
		connectionRepo: connectionRepo,
	}
}

func (p *provider) GetCredential(campaignID string) (*domain.PlatformCredential, error) {
	conn, err := p.connectionRepo.GetActiveConnectionByCampaignID(campaignID)
	if err != nil {
		return nil, err
	}

	if conn == nil || conn.Status != domain.ConnectionStatusActive || conn.AccessToken == "" {
		return nil, ErrNoCredential
	}

	if conn.TokenExpiresAt != nil && time.Until(*conn.TokenExpiresAt) < tokenExpiryMargin {
		logrus.WithFields(logrus.Fields{
			"campaign_id":      campaignID,
			"token_expires_at": conn.TokenExpiresAt.Format(time.RFC3339),
		}).Warn("Token está muito próximo da expiração ou já expirou - é necessária reautorização")
		return nil, ErrTokenExpired
	}

	if conn.SelectedAccountID == nil || *conn.SelectedAccountID == "" {
		return nil, ErrNoAccountSelected
	}

	return &domain.PlatformCredential{
		Token:             conn.AccessToken,
		SelectedAccountID: *conn.SelectedAccountID,
	}, nil
}
