package domain

import "time"

// Campaign é a entidade dona dos anúncios. Este serviço apenas lê campanhas;
// criação e edição pertencem ao fluxo de gerenciamento de campanhas.
type Campaign struct {
	ID                 string    `json:"id"`
	OwnerUserID        int       `json:"owner_user_id"`
	Name               string    `json:"name"`
	Goal               *string   `json:"goal"`
	DailyBudgetCents   *int64    `json:"daily_budget_cents"`
	TargetingLocations []string  `json:"targeting_locations"`
	CreatedAt          time.Time `json:"created_at"`
}

// ConnectionStatus representa o estado da conexão da campanha com a plataforma
type ConnectionStatus string

const (
	ConnectionStatusActive  ConnectionStatus = "active"
	ConnectionStatusRevoked ConnectionStatus = "revoked"
)

// PlatformConnection é o registro de consentimento/credencial da campanha com a
// plataforma externa, produzido pelo fluxo de OAuth (externo a este serviço)
type PlatformConnection struct {
	ID                string           `json:"id"`
	CampaignID        string           `json:"campaign_id"`
	AccessToken       string           `json:"-"`
	SelectedAccountID *string          `json:"selected_account_id"`
	Status            ConnectionStatus `json:"status"`
	TokenExpiresAt    *time.Time       `json:"token_expires_at"`
	CreatedAt         time.Time        `json:"created_at"`
}

// PlatformCredential é a credencial resolvida usada para chamar a plataforma
type PlatformCredential struct {
	Token             string
	SelectedAccountID string
}
