package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"github.com/vfg2006/ad-publisher-api/pkg/middleware"
)

// PublishAd publica um anúncio de uma campanha na plataforma externa
func PublishAd(service publishing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - PublishAd")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		adID := params.ByName("ad_id")

		if campaignID == "" || adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificadores de campanha e anúncio são obrigatórios", nil)
			return
		}

		result, err := service.Publish(r.Context(), userClaims.UserID, campaignID, adID)
		if err != nil {
			handlePublishError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

// GetPublishStatus retorna o estado de publicação de um anúncio
func GetPublishStatus(service publishing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetPublishStatus")

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do anúncio é obrigatório", nil)
			return
		}

		status, err := service.GetPublishStatus(adID)
		if err != nil {
			if errors.Is(err, publishing.ErrAdNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Anúncio não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar o estado de publicação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.Error(err)
		}
	}
}

// GetAdTransitions retorna o histórico de mudanças de status de um anúncio
func GetAdTransitions(service publishing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetAdTransitions")

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do anúncio é obrigatório", nil)
			return
		}

		transitions, err := service.GetTransitions(adID)
		if err != nil {
			if errors.Is(err, publishing.ErrAdNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Anúncio não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar o histórico do anúncio", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"ad_id":       adID,
			"transitions": transitions,
		}); err != nil {
			logrus.Error(err)
		}
	}
}

// handlePublishError converte o erro classificado do pipeline na resposta HTTP
func handlePublishError(w http.ResponseWriter, err error) {
	var publishErr *publishing.PublishError
	if !errors.As(err, &publishErr) {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao publicar o anúncio", nil)
		return
	}

	switch publishErr.Code {
	case publishing.CodeValidationFailed:
		apiErrors.WriteError(w, apiErrors.ErrPublishValidation, "Anúncio reprovado na validação pré-publicação", map[string]any{
			"validation_errors": publishErr.ValidationErrors,
		})

	case publishing.CodeAlreadyPublished:
		apiErrors.WriteError(w, apiErrors.ErrAlreadyPublished, "Anúncio já publicado na plataforma", map[string]any{
			"remote_ad_id": publishErr.RemoteAdID,
		})

	case publishing.CodePublishFailed:
		apiErrors.WriteError(w, apiErrors.ErrPublishFailed, "A plataforma não aceitou a criação do anúncio", map[string]any{
			"reason": publishErr.Error(),
		})

	default:
		logrus.Error(publishErr)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao publicar o anúncio", nil)
	}
}
