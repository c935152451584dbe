package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

// ReconcileAd força a reconciliação do status de um anúncio com a plataforma
func ReconcileAd(service reconciling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReconcileAd")

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if adID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do anúncio é obrigatório", nil)
			return
		}

		result, err := service.Reconcile(r.Context(), adID)
		if err != nil {
			handleReconcileError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

// ReconcileCampaign reconcilia todos os anúncios publicados de uma campanha
func ReconcileCampaign(service reconciling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReconcileCampaign")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador da campanha é obrigatório", nil)
			return
		}

		results, err := service.ReconcileAll(r.Context(), campaignID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao reconciliar os anúncios da campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"campaign_id": campaignID,
			"results":     results,
		}); err != nil {
			logrus.Error(err)
		}
	}
}

func handleReconcileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconciling.ErrAdNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Anúncio não encontrado", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar a plataforma de anúncios", nil)
	}
}
