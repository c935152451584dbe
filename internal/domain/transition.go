package domain

import (
	"encoding/json"
	"time"
)

// TransitionTrigger identifica a origem de uma mudança de status
type TransitionTrigger string

const (
	TriggerUserPublish     TransitionTrigger = "user_publish"
	TriggerPlatformSync    TransitionTrigger = "platform_sync"
	TriggerPlatformWebhook TransitionTrigger = "platform_webhook"
)

// StatusTransition é o registro imutável de auditoria de uma mudança de status.
// Registros são apenas inseridos, nunca atualizados ou removidos; a ordenação
// por CreatedAt reconstrói o histórico completo do anúncio.
type StatusTransition struct {
	ID          string            `json:"id"`
	AdID        string            `json:"ad_id"`
	FromStatus  AdStatus          `json:"from_status"`
	ToStatus    AdStatus          `json:"to_status"`
	TriggeredBy TransitionTrigger `json:"triggered_by"`
	Notes       *string           `json:"notes"`
	Metadata    json.RawMessage   `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
}
