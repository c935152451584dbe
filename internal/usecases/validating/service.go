package validating

import (
	"errors"
	"net/url"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// Códigos de erro de validação pré-publicação
const (
	CodeInvalidIdentifier  = "invalid_identifier"
	CodeCampaignLookup     = "campaign_lookup_failed"
	CodeCampaignNotFound   = "campaign_not_found"
	CodeAdLookup           = "ad_lookup_failed"
	CodeAdNotFound         = "ad_not_found"
	CodeAdNotInCampaign    = "ad_not_in_campaign"
	CodeNotCampaignOwner   = "not_campaign_owner"
	CodeCredentialMissing  = "credential_missing"
	CodeCredentialExpired  = "credential_expired"
	CodeAccountNotSelected = "account_not_selected"
	CodeGoalMissing        = "goal_missing"
	CodeBudgetMissing      = "budget_missing"
	CodeBudgetBelowMinimum = "budget_below_minimum"
	CodeCreativeMissing    = "creative_missing"
	CodeCreativeInvalid    = "creative_invalid"
	CodeCopyMissing        = "copy_missing"
	CodeDestinationMissing = "destination_missing"
	CodeDestinationInvalid = "destination_incomplete"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Validator verifica se um anúncio está completo para publicação. A passada é
// somente leitura: nenhum status é alterado aqui.
type Validator interface {
	Validate(userID int, campaignID, adID string) (bool, []domain.ValidationError)
}

type Service struct {
	adRepo       repository.AdRepository
	campaignRepo repository.CampaignRepository
	credProvider credentials.Provider
	cfg          *config.Config
}

func NewService(
	adRepo repository.AdRepository,
	campaignRepo repository.CampaignRepository,
	credProvider credentials.Provider,
	cfg *config.Config,
) Validator {
	return &Service{
		adRepo:       adRepo,
		campaignRepo: campaignRepo,
		credProvider: credProvider,
		cfg:          cfg,
	}
}

// Validate executa a lista ordenada de verificações pré-publicação. Todas as
// verificações com dados carregáveis são executadas mesmo após uma falha, para
// devolver a lista completa de pendências em uma única passada. A exceção é a
// verificação de identificadores malformados, que interrompe o restante porque
// nada pode ser carregado.
func (s *Service) Validate(userID int, campaignID, adID string) (bool, []domain.ValidationError) {
	validationErrors := make([]domain.ValidationError, 0)

	// 1. Identificadores bem formados
	if !identifierPattern.MatchString(campaignID) {
		validationErrors = append(validationErrors, domain.ValidationError{
			Code:            CodeInvalidIdentifier,
			Message:         "identificador de campanha malformado",
			UserMessage:     "A campanha informada é inválida",
			Recoverable:     true,
			SuggestedAction: "Verifique o identificador da campanha e tente novamente",
		})
	}
	if !identifierPattern.MatchString(adID) {
		validationErrors = append(validationErrors, domain.ValidationError{
			Code:            CodeInvalidIdentifier,
			Message:         "identificador de anúncio malformado",
			UserMessage:     "O anúncio informado é inválido",
			Recoverable:     true,
			SuggestedAction: "Verifique o identificador do anúncio e tente novamente",
		})
	}
	if len(validationErrors) > 0 {
		return false, validationErrors
	}

	campaign, campaignErrors := s.loadCampaign(campaignID)
	validationErrors = append(validationErrors, campaignErrors...)

	ad, adErrors := s.loadAd(campaignID, adID)
	validationErrors = append(validationErrors, adErrors...)

	// 3. O chamador é dono da campanha
	if campaign != nil && campaign.OwnerUserID != userID {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"user_id":     userID,
			"owner_id":    campaign.OwnerUserID,
		}).Warn("validate: user is not the campaign owner")

		validationErrors = append(validationErrors, domain.ValidationError{
			Code:            CodeNotCampaignOwner,
			Message:         "usuário não é o dono da campanha",
			UserMessage:     "Você não tem permissão para publicar anúncios desta campanha",
			Recoverable:     false,
			SuggestedAction: "Acesse com a conta dona da campanha",
		})
	}

	// 4 e 5. Credencial ativa e conta de anúncios selecionada
	validationErrors = append(validationErrors, s.checkCredential(campaignID)...)

	if campaign != nil {
		validationErrors = append(validationErrors, s.checkCampaignSetup(campaign)...)
	}

	if ad != nil {
		validationErrors = append(validationErrors, checkCreative(ad)...)
		validationErrors = append(validationErrors, checkCopy(ad)...)
		validationErrors = append(validationErrors, checkDestination(ad)...)
	}

	// 11. Targeting de localização é apenas consultivo: a plataforma assume
	// uma região ampla quando ausente
	if campaign != nil && len(campaign.TargetingLocations) == 0 {
		logrus.WithField("campaign_id", campaignID).
			Info("validate: campaign has no location targeting, platform default will apply")
	}

	return len(validationErrors) == 0, validationErrors
}

func (s *Service) loadCampaign(campaignID string) (*domain.Campaign, []domain.ValidationError) {
	campaign, err := s.campaignRepo.GetCampaignByID(campaignID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("validate: failed to load campaign")

		return nil, []domain.ValidationError{{
			Code:            CodeCampaignLookup,
			Message:         "erro ao consultar a campanha",
			UserMessage:     "Não foi possível carregar a campanha",
			Recoverable:     false,
			SuggestedAction: "Tente novamente em alguns instantes",
		}}
	}

	if campaign == nil {
		return nil, []domain.ValidationError{{
			Code:            CodeCampaignNotFound,
			Message:         "campanha não encontrada",
			UserMessage:     "A campanha informada não existe",
			Recoverable:     true,
			SuggestedAction: "Verifique o identificador da campanha",
		}}
	}

	return campaign, nil
}

func (s *Service) loadAd(campaignID, adID string) (*domain.Ad, []domain.ValidationError) {
	ad, err := s.adRepo.GetAdByID(adID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": adID,
			"error": err.Error(),
		}).Error("validate: failed to load ad")

		return nil, []domain.ValidationError{{
			Code:            CodeAdLookup,
			Message:         "erro ao consultar o anúncio",
			UserMessage:     "Não foi possível carregar o anúncio",
			Recoverable:     false,
			SuggestedAction: "Tente novamente em alguns instantes",
		}}
	}

	if ad == nil {
		return nil, []domain.ValidationError{{
			Code:            CodeAdNotFound,
			Message:         "anúncio não encontrado",
			UserMessage:     "O anúncio informado não existe",
			Recoverable:     true,
			SuggestedAction: "Verifique o identificador do anúncio",
		}}
	}

	// 2. O anúncio pertence à campanha informada
	if ad.CampaignID != campaignID {
		return ad, []domain.ValidationError{{
			Code:            CodeAdNotInCampaign,
			Message:         "anúncio não pertence à campanha informada",
			UserMessage:     "O anúncio não pertence a esta campanha",
			Recoverable:     true,
			SuggestedAction: "Verifique se o anúncio foi criado nesta campanha",
		}}
	}

	return ad, nil
}

func (s *Service) checkCredential(campaignID string) []domain.ValidationError {
	_, err := s.credProvider.GetCredential(campaignID)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, credentials.ErrTokenExpired):
		return []domain.ValidationError{{
			Code:            CodeCredentialExpired,
			Message:         "credencial da plataforma expirada",
			UserMessage:     "A conexão com a plataforma de anúncios expirou",
			Recoverable:     true,
			SuggestedAction: "Reconecte sua conta da plataforma de anúncios nas configurações da campanha",
		}}
	case errors.Is(err, credentials.ErrNoAccountSelected):
		return []domain.ValidationError{{
			Code:            CodeAccountNotSelected,
			Message:         "nenhuma conta de anúncios selecionada",
			UserMessage:     "Nenhuma conta de anúncios foi selecionada para esta campanha",
			Recoverable:     true,
			SuggestedAction: "Selecione a conta de anúncios de destino nas configurações da campanha",
		}}
	case errors.Is(err, credentials.ErrNoCredential):
		return []domain.ValidationError{{
			Code:            CodeCredentialMissing,
			Message:         "nenhuma credencial ativa para a campanha",
			UserMessage:     "A campanha não está conectada à plataforma de anúncios",
			Recoverable:     true,
			SuggestedAction: "Conecte sua conta da plataforma de anúncios nas configurações da campanha",
		}}
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"error":       err.Error(),
	}).Error("validate: failed to resolve campaign credential")

	return []domain.ValidationError{{
		Code:            CodeCredentialMissing,
		Message:         "erro ao resolver credencial da campanha",
		UserMessage:     "Não foi possível verificar a conexão com a plataforma",
		Recoverable:     false,
		SuggestedAction: "Tente novamente em alguns instantes",
	}}
}

func (s *Service) checkCampaignSetup(campaign *domain.Campaign) []domain.ValidationError {
	setupErrors := make([]domain.ValidationError, 0)

	// 6. Objetivo da campanha definido
	if campaign.Goal == nil || *campaign.Goal == "" {
		setupErrors = append(setupErrors, domain.ValidationError{
			Code:            CodeGoalMissing,
			Message:         "campanha sem objetivo definido",
			UserMessage:     "A campanha ainda não tem um objetivo",
			Recoverable:     true,
			SuggestedAction: "Defina o objetivo da campanha antes de publicar",
		})
	}

	// 7. Orçamento diário definido e acima do piso da plataforma
	if campaign.DailyBudgetCents == nil {
		setupErrors = append(setupErrors, domain.ValidationError{
			Code:            CodeBudgetMissing,
			Message:         "campanha sem orçamento diário",
			UserMessage:     "A campanha ainda não tem orçamento diário",
			Recoverable:     true,
			SuggestedAction: "Defina o orçamento diário da campanha antes de publicar",
		})
	} else if *campaign.DailyBudgetCents < s.cfg.Publish.MinDailyBudgetCents {
		setupErrors = append(setupErrors, domain.ValidationError{
			Code:            CodeBudgetBelowMinimum,
			Message:         "orçamento diário abaixo do mínimo da plataforma",
			UserMessage:     "O orçamento diário está abaixo do mínimo exigido pela plataforma",
			Recoverable:     true,
			SuggestedAction: "Aumente o orçamento diário da campanha",
		})
	}

	return setupErrors
}

// 8. Criativo resolvido e com localizador válido
func checkCreative(ad *domain.Ad) []domain.ValidationError {
	creativeURL, ok := ad.ResolvedCreative()
	if !ok {
		return []domain.ValidationError{{
			Code:            CodeCreativeMissing,
			Message:         "anúncio sem criativo resolvido",
			UserMessage:     "O anúncio ainda não tem uma imagem ou vídeo selecionado",
			Recoverable:     true,
			SuggestedAction: "Selecione uma variante de criativo para o anúncio",
		}}
	}

	parsed, err := url.Parse(creativeURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return []domain.ValidationError{{
			Code:            CodeCreativeInvalid,
			Message:         "localizador do criativo inválido",
			UserMessage:     "O criativo selecionado não pôde ser carregado",
			Recoverable:     true,
			SuggestedAction: "Reenvie a imagem ou vídeo do anúncio",
		}}
	}

	return nil
}

// 9. Copy mínima presente
func checkCopy(ad *domain.Ad) []domain.ValidationError {
	hasHeadline := ad.Headline != nil && *ad.Headline != ""
	hasPrimaryText := ad.PrimaryText != nil && *ad.PrimaryText != ""

	if !hasHeadline && !hasPrimaryText {
		return []domain.ValidationError{{
			Code:            CodeCopyMissing,
			Message:         "anúncio sem título e sem texto principal",
			UserMessage:     "O anúncio precisa de um título ou texto principal",
			Recoverable:     true,
			SuggestedAction: "Escreva o título ou o texto principal do anúncio",
		}}
	}

	return nil
}

// 10. Destino configurado com o campo obrigatório do tipo
func checkDestination(ad *domain.Ad) []domain.ValidationError {
	if ad.DestinationType == nil {
		return []domain.ValidationError{{
			Code:            CodeDestinationMissing,
			Message:         "anúncio sem destino configurado",
			UserMessage:     "O anúncio ainda não tem um destino",
			Recoverable:     true,
			SuggestedAction: "Configure para onde o anúncio deve levar as pessoas",
		}}
	}

	var missing bool
	var action string

	switch *ad.DestinationType {
	case domain.DestinationLeadForm:
		missing = ad.DestinationFormID == nil || *ad.DestinationFormID == ""
		action = "Selecione o formulário de leads do anúncio"
	case domain.DestinationWebsite:
		missing = ad.DestinationURL == nil || *ad.DestinationURL == ""
		action = "Informe a URL do site de destino"
	case domain.DestinationPhoneCall:
		missing = ad.DestinationPhone == nil || *ad.DestinationPhone == ""
		action = "Informe o número de telefone de destino"
	default:
		missing = true
		action = "Configure um destino válido para o anúncio"
	}

	if missing {
		return []domain.ValidationError{{
			Code:            CodeDestinationInvalid,
			Message:         "destino sem o campo obrigatório do tipo",
			UserMessage:     "O destino do anúncio está incompleto",
			Recoverable:     true,
			SuggestedAction: action,
		}}
	}

	return nil
}
