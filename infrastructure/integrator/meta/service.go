package meta

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// Integrator é a fronteira com a plataforma de anúncios usada pelo pipeline de
// publicação e pela reconciliação de status
type Integrator interface {
	CreateAd(ctx context.Context, cred *domain.PlatformCredential, campaign *domain.Campaign, ad *domain.Ad) (*metadomain.RemoteAd, error)
	GetAdStatus(ctx context.Context, cred *domain.PlatformCredential, remoteAdID string) (*metadomain.RemoteAdStatus, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// CreateAd monta a requisição de criação a partir do criativo, copy e destino
// resolvidos do anúncio e do orçamento/targeting da campanha
func (s *MetaIntegrator) CreateAd(ctx context.Context, cred *domain.PlatformCredential, campaign *domain.Campaign, ad *domain.Ad) (*metadomain.RemoteAd, error) {
	creativeURL, ok := ad.ResolvedCreative()
	if !ok {
		return nil, fmt.Errorf("anúncio %s sem criativo resolvido", ad.ID)
	}

	spec := &metadomain.AdSpec{
		Name:               fmt.Sprintf("%s / %s", campaign.Name, ad.ID),
		CampaignGoal:       stringValue(campaign.Goal),
		DailyBudgetCents:   int64Value(campaign.DailyBudgetCents),
		CreativeURL:        creativeURL,
		Headline:           stringValue(ad.Headline),
		PrimaryText:        stringValue(ad.PrimaryText),
		TargetingLocations: campaign.TargetingLocations,
	}

	if ad.DestinationType != nil {
		spec.DestinationType = string(*ad.DestinationType)
		spec.DestinationValue = destinationValue(ad)
	}

	logrus.WithFields(logrus.Fields{
		"ad_id":       ad.ID,
		"campaign_id": campaign.ID,
		"account_id":  cred.SelectedAccountID,
	}).Info("publish: creating ad on remote platform")

	remoteAd, err := s.Client.CreateAd(ctx, cred.SelectedAccountID, cred.Token, spec)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id":      ad.ID,
			"account_id": cred.SelectedAccountID,
			"error":      err.Error(),
		}).Error("publish: failed to create ad on remote platform")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"ad_id":            ad.ID,
		"remote_ad_id":     remoteAd.ID,
		"remote_status":    remoteAd.Status,
		"effective_status": remoteAd.EffectiveStatus,
	}).Info("publish: ad created on remote platform")

	return remoteAd, nil
}

// GetAdStatus consulta o estado remoto de um anúncio já publicado
func (s *MetaIntegrator) GetAdStatus(ctx context.Context, cred *domain.PlatformCredential, remoteAdID string) (*metadomain.RemoteAdStatus, error) {
	remoteStatus, err := s.Client.GetAdStatus(ctx, remoteAdID, cred.Token)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"remote_ad_id": remoteAdID,
			"error":        err.Error(),
		}).Error("sync: failed to get remote ad status")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"remote_ad_id":     remoteAdID,
		"remote_status":    remoteStatus.Status,
		"effective_status": remoteStatus.EffectiveStatus,
		"issues":           len(remoteStatus.Issues),
	}).Debug("sync: retrieved remote ad status")

	return remoteStatus, nil
}

func destinationValue(ad *domain.Ad) string {
	switch *ad.DestinationType {
	case domain.DestinationLeadForm:
		return stringValue(ad.DestinationFormID)
	case domain.DestinationWebsite:
		return stringValue(ad.DestinationURL)
	case domain.DestinationPhoneCall:
		return stringValue(ad.DestinationPhone)
	}
	return ""
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
