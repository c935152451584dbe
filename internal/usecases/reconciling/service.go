package reconciling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

var ErrAdNotFound = errors.New("anúncio não encontrado")

// Result é o desfecho da reconciliação de um anúncio
type Result struct {
	AdID       string          `json:"ad_id"`
	RemoteAdID string          `json:"remote_ad_id"`
	FromStatus domain.AdStatus `json:"from_status"`
	Status     domain.AdStatus `json:"status"`
	Learning   bool            `json:"learning"`
	Changed    bool            `json:"changed"`
	Error      string          `json:"error,omitempty"`
}

// Service alinha o status local dos anúncios publicados com o estado remoto.
// A plataforma é a fonte de verdade para anúncios já publicados: o fluxo é
// sempre comparar e só então gravar, nunca gravar às cegas.
type Service interface {
	Reconcile(ctx context.Context, adID string) (*Result, error)
	ReconcileAll(ctx context.Context, campaignID string) ([]*Result, error)
	ApplyWebhook(ctx context.Context, remoteAdID string, remoteStatus *metadomain.RemoteAdStatus) (*Result, error)
}

type service struct {
	adRepo         repository.AdRepository
	transitionRepo repository.TransitionRepository
	credProvider   credentialProvider
	integrator     meta.Integrator
}

// credentialProvider é o subconjunto do provedor de credenciais usado aqui
type credentialProvider interface {
	GetCredential(campaignID string) (*domain.PlatformCredential, error)
}

func NewService(
	adRepo repository.AdRepository,
	transitionRepo repository.TransitionRepository,
	credProvider credentialProvider,
	integrator meta.Integrator,
) Service {
	return &service{
		adRepo:         adRepo,
		transitionRepo: transitionRepo,
		credProvider:   credProvider,
		integrator:     integrator,
	}
}

// Reconcile consulta o estado remoto de um anúncio e aplica a diferença
func (s *service) Reconcile(ctx context.Context, adID string) (*Result, error) {
	ad, err := s.adRepo.GetAdByID(adID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o anúncio: %w", err)
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return s.reconcileAd(ctx, ad)
}

// ReconcileAll reconcilia todos os anúncios publicados. Com campaignID vazio o
// catálogo inteiro é percorrido; falhas individuais são registradas no resultado
// do anúncio e não interrompem o lote.
func (s *service) ReconcileAll(ctx context.Context, campaignID string) ([]*Result, error) {
	var ads []*domain.Ad
	var err error

	if campaignID == "" {
		ads, err = s.adRepo.ListPublishedAds()
	} else {
		ads, err = s.adRepo.ListPublishedAdsByCampaign(campaignID)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao listar anúncios publicados: %w", err)
	}

	results := make([]*Result, 0, len(ads))

	for _, ad := range ads {
		result, err := s.reconcileAd(ctx, ad)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_id": ad.ID,
				"error": err.Error(),
			}).Error("sync: failed to reconcile ad, continuing batch")

			results = append(results, &Result{
				AdID:  ad.ID,
				Error: err.Error(),
			})
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

// ApplyWebhook aplica uma notificação de mudança de status empurrada pela
// plataforma. O payload já traz o estado remoto, então a consulta de ida é
// dispensada; o restante do caminho é o mesmo da reconciliação por consulta.
func (s *service) ApplyWebhook(ctx context.Context, remoteAdID string, remoteStatus *metadomain.RemoteAdStatus) (*Result, error) {
	ad, err := s.adRepo.GetAdByRemoteID(remoteAdID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o anúncio pelo identificador remoto: %w", err)
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return s.apply(ad, remoteStatus, domain.TriggerPlatformWebhook)
}

func (s *service) reconcileAd(ctx context.Context, ad *domain.Ad) (*Result, error) {
	// Anúncio sem identificador remoto é um estado normal de rascunho: não há
	// nada a comparar e a reconciliação termina sem erro e sem escrita
	if !ad.HasRemoteID() {
		logrus.WithFields(logrus.Fields{
			"ad_id":  ad.ID,
			"status": ad.Status,
		}).Debug("sync: ad has no remote id, nothing to reconcile")

		return &Result{
			AdID:       ad.ID,
			FromStatus: ad.Status,
			Status:     ad.Status,
		}, nil
	}

	cred, err := s.credProvider.GetCredential(ad.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver a credencial da campanha: %w", err)
	}

	remoteStatus, err := s.integrator.GetAdStatus(ctx, cred, *ad.RemoteAdID)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar o status remoto: %w", err)
	}

	return s.apply(ad, remoteStatus, domain.TriggerPlatformSync)
}

// apply compara o status remoto traduzido com o local e só escreve quando há
// diferença. Reconciliar duas vezes seguidas sem mudança remota não gera
// nenhuma escrita nem transição.
func (s *service) apply(ad *domain.Ad, remoteStatus *metadomain.RemoteAdStatus, trigger domain.TransitionTrigger) (*Result, error) {
	translation := meta.TranslateRemoteStatus(remoteStatus.Status, remoteStatus.EffectiveStatus)

	result := &Result{
		AdID:       ad.ID,
		RemoteAdID: *ad.RemoteAdID,
		FromStatus: ad.Status,
		Status:     translation.Status,
		Learning:   translation.Learning,
	}

	if translation.Status == ad.Status {
		return result, nil
	}

	fromStatus := ad.Status
	now := time.Now()

	ad.Status = translation.Status
	if translation.Status == domain.AdStatusActive && ad.ApprovedAt == nil {
		ad.ApprovedAt = &now
	}
	if translation.Status == domain.AdStatusRejected && ad.RejectedAt == nil {
		ad.RejectedAt = &now
	}

	if err := s.adRepo.UpdateAd(ad); err != nil {
		return nil, fmt.Errorf("erro ao gravar o status reconciliado: %w", err)
	}

	s.appendTransition(ad.ID, fromStatus, translation.Status, trigger, remoteStatus)

	logrus.WithFields(logrus.Fields{
		"ad_id":       ad.ID,
		"from_status": fromStatus,
		"to_status":   translation.Status,
		"trigger":     trigger,
	}).Info("sync: ad status reconciled")

	result.Changed = true

	return result, nil
}

func (s *service) appendTransition(
	adID string,
	fromStatus, toStatus domain.AdStatus,
	trigger domain.TransitionTrigger,
	remoteStatus *metadomain.RemoteAdStatus,
) {
	transition := &domain.StatusTransition{
		AdID:        adID,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
		TriggeredBy: trigger,
	}

	if summary := remoteStatus.FirstIssueSummary(); summary != "" {
		transition.Notes = &summary
	}

	if len(remoteStatus.Issues) > 0 {
		if metadata, err := json.Marshal(remoteStatus.Issues); err == nil {
			transition.Metadata = metadata
		}
	}

	if err := s.transitionRepo.Append(transition); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id":       adID,
			"from_status": fromStatus,
			"to_status":   toStatus,
			"error":       err.Error(),
		}).Error("sync: failed to append status transition")
	}
}
