package publishing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
)

// PublishResult é a resposta de uma publicação bem-sucedida
type PublishResult struct {
	AdID        string          `json:"ad_id"`
	RemoteAdID  string          `json:"remote_ad_id"`
	Status      domain.AdStatus `json:"status"`
	Learning    bool            `json:"learning"`
	PublishedAt *time.Time      `json:"published_at"`
}

// PublishStatus é a visão de leitura do estado de publicação de um anúncio
type PublishStatus struct {
	AdID        string          `json:"ad_id"`
	Status      domain.AdStatus `json:"status"`
	RemoteAdID  *string         `json:"remote_ad_id"`
	PublishedAt *time.Time      `json:"published_at"`
	ApprovedAt  *time.Time      `json:"approved_at"`
	RejectedAt  *time.Time      `json:"rejected_at"`
}

// Service orquestra o pipeline de publicação de anúncios
type Service interface {
	Publish(ctx context.Context, userID int, campaignID, adID string) (*PublishResult, error)
	GetPublishStatus(adID string) (*PublishStatus, error)
	GetTransitions(adID string) ([]*domain.StatusTransition, error)
}

type service struct {
	adRepo         repository.AdRepository
	campaignRepo   repository.CampaignRepository
	transitionRepo repository.TransitionRepository
	validator      validating.Validator
	credProvider   credentials.Provider
	integrator     meta.Integrator
	cfg            *config.Config
	locker         *adLocker
}

func NewService(
	adRepo repository.AdRepository,
	campaignRepo repository.CampaignRepository,
	transitionRepo repository.TransitionRepository,
	validator validating.Validator,
	credProvider credentials.Provider,
	integrator meta.Integrator,
	cfg *config.Config,
) Service {
	return &service{
		adRepo:         adRepo,
		campaignRepo:   campaignRepo,
		transitionRepo: transitionRepo,
		validator:      validator,
		credProvider:   credProvider,
		integrator:     integrator,
		cfg:            cfg,
		locker:         newAdLocker(),
	}
}

// Publish executa o pipeline completo: guarda de idempotência, validação,
// gravação otimista de pending_review e criação remota. O lock por anúncio
// garante que duas publicações simultâneas do mesmo anúncio não dupliquem a
// criação remota: a segunda espera a primeira e cai na guarda de idempotência.
func (s *service) Publish(ctx context.Context, userID int, campaignID, adID string) (*PublishResult, error) {
	s.locker.Lock(adID)
	defer s.locker.Unlock(adID)

	ad, err := s.adRepo.GetAdByID(adID)
	if err != nil {
		return nil, newInternalError(fmt.Errorf("erro ao carregar o anúncio: %w", err))
	}

	if ad == nil {
		return nil, newValidationError([]domain.ValidationError{{
			Code:            validating.CodeAdNotFound,
			Message:         "anúncio não encontrado",
			UserMessage:     "O anúncio informado não existe",
			Recoverable:     true,
			SuggestedAction: "Verifique o identificador do anúncio",
		}})
	}

	// Guarda de idempotência: a presença do identificador remoto marca que a
	// criação já aconteceu, qualquer que seja o status atual
	if ad.HasRemoteID() {
		logrus.WithFields(logrus.Fields{
			"ad_id":        adID,
			"remote_ad_id": *ad.RemoteAdID,
		}).Info("publish: ad already published, skipping remote call")

		return nil, newAlreadyPublishedError(ad.RemoteAdID)
	}

	if valid, validationErrors := s.validator.Validate(userID, campaignID, adID); !valid {
		// Um pending_review sem identificador remoto é resto de uma tentativa
		// anterior interrompida entre a gravação otimista e a criação remota.
		// A reprovação devolve o anúncio ao rascunho para nova edição.
		if ad.Status == domain.AdStatusPendingReview {
			s.restoreDraft(ad)
		}

		return nil, newValidationError(validationErrors)
	}

	campaign, err := s.campaignRepo.GetCampaignByID(campaignID)
	if err != nil {
		return nil, newInternalError(fmt.Errorf("erro ao carregar a campanha: %w", err))
	}
	if campaign == nil {
		return nil, newInternalError(ErrCampaignNotFound)
	}

	cred, err := s.credProvider.GetCredential(campaignID)
	if err != nil {
		return nil, newInternalError(fmt.Errorf("erro ao resolver a credencial da campanha: %w", err))
	}

	// Gravação otimista: o anúncio entra em pending_review de forma durável
	// ANTES da chamada remota. Se o processo cair no meio, o estado local fica
	// à frente do remoto, nunca atrás, e o registro pendente é visível.
	previousStatus := ad.Status
	if previousStatus != domain.AdStatusPendingReview {
		ad.Status = domain.AdStatusPendingReview
		if err := s.adRepo.UpdateAd(ad); err != nil {
			return nil, newInternalError(fmt.Errorf("erro ao gravar pending_review: %w", err))
		}

		s.appendTransition(ad.ID, previousStatus, domain.AdStatusPendingReview, domain.TriggerUserPublish, nil, nil)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, s.cfg.Publish.RemoteTimeout)
	defer cancel()

	remoteAd, err := s.integrator.CreateAd(remoteCtx, cred, campaign, ad)
	if err != nil {
		return nil, s.markFailed(ad, err)
	}

	return s.applyRemoteCreation(ad, remoteAd)
}

// markFailed registra a falha da criação remota: status failed e uma transição
// com a causa nas notas, para exibição e depuração
func (s *service) markFailed(ad *domain.Ad, cause error) error {
	logrus.WithFields(logrus.Fields{
		"ad_id": ad.ID,
		"error": cause.Error(),
	}).Error("publish: remote ad creation failed")

	fromStatus := ad.Status
	ad.Status = domain.AdStatusFailed

	if err := s.adRepo.UpdateAd(ad); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": ad.ID,
			"error": err.Error(),
		}).Error("publish: failed to persist failed status")
		return newInternalError(fmt.Errorf("erro ao gravar o status de falha: %w", err))
	}

	notes := cause.Error()
	s.appendTransition(ad.ID, fromStatus, domain.AdStatusFailed, domain.TriggerUserPublish, &notes, nil)

	return newPublishFailedError(cause)
}

// applyRemoteCreation persiste o resultado da criação remota: o identificador
// remoto (gravado exatamente uma vez), o status traduzido e os carimbos de tempo
func (s *service) applyRemoteCreation(ad *domain.Ad, remoteAd *metadomain.RemoteAd) (*PublishResult, error) {
	translation := meta.TranslateRemoteStatus(remoteAd.Status, remoteAd.EffectiveStatus)

	now := time.Now()
	fromStatus := ad.Status

	remoteID := remoteAd.ID
	ad.RemoteAdID = &remoteID
	ad.PublishedAt = &now
	ad.Status = translation.Status

	if translation.Status == domain.AdStatusActive && ad.ApprovedAt == nil {
		ad.ApprovedAt = &now
	}
	if translation.Status == domain.AdStatusRejected && ad.RejectedAt == nil {
		ad.RejectedAt = &now
	}

	if err := s.adRepo.UpdateAd(ad); err != nil {
		// O anúncio existe na plataforma mas a gravação local falhou. O estado
		// local ficou atrás do remoto; a reconciliação não recupera este caso
		// porque o identificador remoto não foi persistido.
		logrus.WithFields(logrus.Fields{
			"ad_id":        ad.ID,
			"remote_ad_id": remoteID,
			"error":        err.Error(),
		}).Error("publish: ad created remotely but local persist failed, manual action required")

		return nil, newInternalError(fmt.Errorf("erro ao gravar o resultado da publicação: %w", err))
	}

	if ad.Status != fromStatus {
		s.appendTransition(ad.ID, fromStatus, ad.Status, domain.TriggerUserPublish, nil, nil)
	}

	logrus.WithFields(logrus.Fields{
		"ad_id":        ad.ID,
		"remote_ad_id": remoteID,
		"status":       ad.Status,
		"learning":     translation.Learning,
	}).Info("publish: ad published")

	return &PublishResult{
		AdID:        ad.ID,
		RemoteAdID:  remoteID,
		Status:      ad.Status,
		Learning:    translation.Learning,
		PublishedAt: ad.PublishedAt,
	}, nil
}

func (s *service) restoreDraft(ad *domain.Ad) {
	fromStatus := ad.Status
	ad.Status = domain.AdStatusDraft

	if err := s.adRepo.UpdateAd(ad); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": ad.ID,
			"error": err.Error(),
		}).Error("publish: failed to restore stranded ad to draft")
		return
	}

	notes := "tentativa de publicação anterior interrompida, anúncio devolvido ao rascunho"
	s.appendTransition(ad.ID, fromStatus, domain.AdStatusDraft, domain.TriggerUserPublish, &notes, nil)
}

// appendTransition registra a transição na trilha de auditoria. Falhas de
// gravação são logadas e não interrompem o pipeline.
func (s *service) appendTransition(
	adID string,
	fromStatus, toStatus domain.AdStatus,
	triggeredBy domain.TransitionTrigger,
	notes *string,
	metadata []byte,
) {
	transition := &domain.StatusTransition{
		AdID:        adID,
		FromStatus:  fromStatus,
		ToStatus:    toStatus,
		TriggeredBy: triggeredBy,
		Notes:       notes,
		Metadata:    metadata,
	}

	if err := s.transitionRepo.Append(transition); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id":       adID,
			"from_status": fromStatus,
			"to_status":   toStatus,
			"error":       err.Error(),
		}).Error("publish: failed to append status transition")
	}
}

// GetPublishStatus devolve a visão de leitura do estado de publicação
func (s *service) GetPublishStatus(adID string) (*PublishStatus, error) {
	ad, err := s.adRepo.GetAdByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return &PublishStatus{
		AdID:        ad.ID,
		Status:      ad.Status,
		RemoteAdID:  ad.RemoteAdID,
		PublishedAt: ad.PublishedAt,
		ApprovedAt:  ad.ApprovedAt,
		RejectedAt:  ad.RejectedAt,
	}, nil
}

// GetTransitions devolve o histórico completo de mudanças de status do anúncio
func (s *service) GetTransitions(adID string) ([]*domain.StatusTransition, error) {
	ad, err := s.adRepo.GetAdByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	return s.transitionRepo.ListByAdID(adID)
}
