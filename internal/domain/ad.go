package domain

import "time"

// AdStatus representa o estado interno de um anúncio no ciclo de publicação
type AdStatus string

const (
	AdStatusDraft         AdStatus = "draft"
	AdStatusPendingReview AdStatus = "pending_review"
	AdStatusActive        AdStatus = "active"
	AdStatusPaused        AdStatus = "paused"
	AdStatusRejected      AdStatus = "rejected"
	AdStatusFailed        AdStatus = "failed"
	AdStatusArchived      AdStatus = "archived"
)

// IsValid verifica se o status pertence ao vocabulário interno
func (s AdStatus) IsValid() bool {
	switch s {
	case AdStatusDraft, AdStatusPendingReview, AdStatusActive,
		AdStatusPaused, AdStatusRejected, AdStatusFailed, AdStatusArchived:
		return true
	}
	return false
}

// DestinationType define o tipo de destino configurado no anúncio
type DestinationType string

const (
	DestinationLeadForm  DestinationType = "lead_form"
	DestinationWebsite   DestinationType = "website"
	DestinationPhoneCall DestinationType = "phone_call"
)

// Ad é a unidade publicada na plataforma externa.
// RemoteAdID é preenchido exatamente uma vez, na primeira criação remota
// bem-sucedida, e nunca é limpo; a presença dele é o marcador de idempotência.
type Ad struct {
	ID                string           `json:"id"`
	CampaignID        string           `json:"campaign_id"`
	Status            AdStatus         `json:"status"`
	RemoteAdID        *string          `json:"remote_ad_id"`
	Headline          *string          `json:"headline"`
	PrimaryText       *string          `json:"primary_text"`
	CreativeAssets    []string         `json:"creative_assets"`
	SelectedVariant   *int             `json:"selected_variant"`
	DestinationType   *DestinationType `json:"destination_type"`
	DestinationFormID *string          `json:"destination_form_id"`
	DestinationURL    *string          `json:"destination_url"`
	DestinationPhone  *string          `json:"destination_phone"`
	PublishedAt       *time.Time       `json:"published_at"`
	ApprovedAt        *time.Time       `json:"approved_at"`
	RejectedAt        *time.Time       `json:"rejected_at"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// HasRemoteID informa se o anúncio já foi criado na plataforma externa
func (a *Ad) HasRemoteID() bool {
	return a.RemoteAdID != nil && *a.RemoteAdID != ""
}

// ResolvedCreative resolve o criativo efetivo do anúncio: o índice da variante
// selecionada dentro da lista de assets, ou o asset único base quando não há
// variante selecionada
func (a *Ad) ResolvedCreative() (string, bool) {
	if a.SelectedVariant != nil {
		idx := *a.SelectedVariant
		if idx < 0 || idx >= len(a.CreativeAssets) {
			return "", false
		}
		return a.CreativeAssets[idx], true
	}

	if len(a.CreativeAssets) == 1 {
		return a.CreativeAssets[0], true
	}

	return "", false
}
