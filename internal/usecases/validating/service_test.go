package validating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials"
	credmocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials/mocks"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func completeAd() *domain.Ad {
	destination := domain.DestinationWebsite
	return &domain.Ad{
		ID:              "ad_001",
		CampaignID:      "camp_001",
		Status:          domain.AdStatusDraft,
		Headline:        stringPtr("Título do anúncio"),
		PrimaryText:     stringPtr("Texto principal"),
		CreativeAssets:  []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		SelectedVariant: intPtr(1),
		DestinationType: &destination,
		DestinationURL:  stringPtr("https://example.com/loja"),
	}
}

func completeCampaign() *domain.Campaign {
	goal := "LEAD_GENERATION"
	return &domain.Campaign{
		ID:                 "camp_001",
		OwnerUserID:        7,
		Name:               "Campanha",
		Goal:               &goal,
		DailyBudgetCents:   int64Ptr(5000),
		TargetingLocations: []string{"BR"},
	}
}

func validCredential() *domain.PlatformCredential {
	return &domain.PlatformCredential{Token: "token", SelectedAccountID: "act_123"}
}

func errorCodes(validationErrors []domain.ValidationError) []string {
	codes := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		codes = append(codes, ve.Code)
	}
	return codes
}

func TestService_Validate(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		campaignID    string
		adID          string
		setup         func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider)
		expectValid   bool
		expectedCodes []string
	}{
		{
			name:       "Anúncio completo - passa em todas as verificações",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(completeAd(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid: true,
		},
		{
			name:       "Identificador malformado - interrompe sem consultar nada",
			userID:     7,
			campaignID: "camp 001!",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				// Nenhuma consulta esperada
			},
			expectValid:   false,
			expectedCodes: []string{CodeInvalidIdentifier},
		},
		{
			name:       "Múltiplas pendências em uma única passada",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				campaign := completeCampaign()
				campaign.Goal = nil
				campaign.DailyBudgetCents = nil

				ad := completeAd()
				ad.DestinationType = nil

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(campaign, nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(nil, credentials.ErrTokenExpired)
			},
			expectValid: false,
			expectedCodes: []string{
				CodeCredentialExpired,
				CodeGoalMissing,
				CodeBudgetMissing,
				CodeDestinationMissing,
			},
		},
		{
			name:       "Usuário não é dono da campanha",
			userID:     99,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(completeAd(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeNotCampaignOwner},
		},
		{
			name:       "Anúncio de outra campanha",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				ad := completeAd()
				ad.CampaignID = "camp_999"

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeAdNotInCampaign},
		},
		{
			name:       "Orçamento abaixo do piso da plataforma",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				campaign := completeCampaign()
				campaign.DailyBudgetCents = int64Ptr(50)

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(campaign, nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(completeAd(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeBudgetBelowMinimum},
		},
		{
			name:       "Variante selecionada fora da lista de criativos",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				ad := completeAd()
				ad.SelectedVariant = intPtr(5)

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeCreativeMissing},
		},
		{
			name:       "Criativo com localizador inválido",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				ad := completeAd()
				ad.CreativeAssets = []string{"not-a-url"}
				ad.SelectedVariant = intPtr(0)

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeCreativeInvalid},
		},
		{
			name:       "Destino do tipo formulário sem formulário selecionado",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				leadForm := domain.DestinationLeadForm
				ad := completeAd()
				ad.DestinationType = &leadForm
				ad.DestinationFormID = nil

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(completeCampaign(), nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid:   false,
			expectedCodes: []string{CodeDestinationInvalid},
		},
		{
			name:       "Sem targeting de localização - apenas consultivo, não bloqueia",
			userID:     7,
			campaignID: "camp_001",
			adID:       "ad_001",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, credProvider *credmocks.MockProvider) {
				campaign := completeCampaign()
				campaign.TargetingLocations = nil

				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(campaign, nil)
				adRepo.EXPECT().GetAdByID("ad_001").Return(completeAd(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(validCredential(), nil)
			},
			expectValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			adRepo := mocks.NewMockAdRepository(ctrl)
			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			credProvider := credmocks.NewMockProvider(ctrl)

			tt.setup(adRepo, campaignRepo, credProvider)

			svc := &Service{
				adRepo:       adRepo,
				campaignRepo: campaignRepo,
				credProvider: credProvider,
				cfg: &config.Config{
					Publish: config.Publish{MinDailyBudgetCents: 100},
				},
			}

			valid, validationErrors := svc.Validate(tt.userID, tt.campaignID, tt.adID)

			assert.Equal(t, tt.expectValid, valid)

			if tt.expectValid {
				assert.Empty(t, validationErrors)
				return
			}

			require.NotEmpty(t, validationErrors)
			assert.ElementsMatch(t, tt.expectedCodes, errorCodes(validationErrors))

			// Toda pendência precisa orientar o usuário sobre o próximo passo
			for _, ve := range validationErrors {
				assert.NotEmpty(t, ve.SuggestedAction)
				assert.NotEmpty(t, ve.UserMessage)
			}
		})
	}
}
