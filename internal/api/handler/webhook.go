package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

// MetaWebhookPayload é a notificação de mudança de status empurrada pela plataforma
type MetaWebhookPayload struct {
	RemoteAdID      string               `json:"remote_ad_id"`
	Status          string               `json:"status"`
	EffectiveStatus string               `json:"effective_status"`
	Issues          []metadomain.AdIssue `json:"issues_info"`
}

// MetaWebhook recebe notificações de mudança de status da plataforma e aplica o
// mesmo caminho da reconciliação, sem a consulta de ida. Notificações para
// anúncios desconhecidos são confirmadas com 200 para a plataforma não reenviar.
func MetaWebhook(service reconciling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MetaWebhook")

		var payload MetaWebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de notificação inválido", nil)
			return
		}

		if payload.RemoteAdID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador remoto do anúncio é obrigatório", nil)
			return
		}

		remoteStatus := &metadomain.RemoteAdStatus{
			Status:          payload.Status,
			EffectiveStatus: payload.EffectiveStatus,
			Issues:          payload.Issues,
		}

		result, err := service.ApplyWebhook(r.Context(), payload.RemoteAdID, remoteStatus)
		if err != nil {
			if errors.Is(err, reconciling.ErrAdNotFound) {
				logrus.WithField("remote_ad_id", payload.RemoteAdID).
					Warn("webhook: notification for unknown remote ad, acknowledging")

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{"ignored": true})
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao aplicar a notificação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}
