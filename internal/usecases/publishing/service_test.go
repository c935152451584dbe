package publishing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	credmocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials/mocks"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	validatingmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/validating/mocks"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func testConfig() *config.Config {
	return &config.Config{
		Publish: config.Publish{
			RemoteTimeout:       5 * time.Second,
			MinDailyBudgetCents: 100,
		},
	}
}

func draftAd() *domain.Ad {
	destination := domain.DestinationWebsite
	return &domain.Ad{
		ID:              "ad_001",
		CampaignID:      "camp_001",
		Status:          domain.AdStatusDraft,
		Headline:        stringPtr("Título"),
		CreativeAssets:  []string{"https://cdn.example.com/c1.jpg"},
		DestinationType: &destination,
		DestinationURL:  stringPtr("https://example.com"),
	}
}

func testCampaign() *domain.Campaign {
	goal := "LEAD_GENERATION"
	return &domain.Campaign{
		ID:               "camp_001",
		OwnerUserID:      7,
		Name:             "Campanha",
		Goal:             &goal,
		DailyBudgetCents: int64Ptr(5000),
	}
}

func testCredential() *domain.PlatformCredential {
	return &domain.PlatformCredential{
		Token:             "token",
		SelectedAccountID: "act_123",
	}
}

func TestService_Publish(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, transitionRepo *mocks.MockTransitionRepository, validator *validatingmocks.MockValidator, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *capture
		validate func(t *testing.T, result *PublishResult, err error, captured *capture)
	}{
		{
			name: "Publicação bem-sucedida - pending_review é gravado antes da chamada remota",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, transitionRepo *mocks.MockTransitionRepository, validator *validatingmocks.MockValidator, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *capture {
				captured := &capture{}

				adRepo.EXPECT().GetAdByID("ad_001").Return(draftAd(), nil)
				validator.EXPECT().Validate(7, "camp_001", "ad_001").Return(true, nil)
				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(testCampaign(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(testCredential(), nil)

				adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
					captured.statuses = append(captured.statuses, ad.Status)
					return nil
				}).Times(2)

				transitionRepo.EXPECT().Append(gomock.Any()).DoAndReturn(func(tr *domain.StatusTransition) error {
					captured.transitions = append(captured.transitions, tr)
					return nil
				}).AnyTimes()

				integrator.EXPECT().
					CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, cred *domain.PlatformCredential, campaign *domain.Campaign, ad *domain.Ad) (*metadomain.RemoteAd, error) {
						// A gravação otimista precisa ter acontecido antes da chamada remota
						captured.statusAtRemoteCall = ad.Status
						return &metadomain.RemoteAd{ID: "r_123", Status: "ACTIVE", EffectiveStatus: "PENDING_REVIEW"}, nil
					})

				return captured
			},
			validate: func(t *testing.T, result *PublishResult, err error, captured *capture) {
				require.NoError(t, err)
				assert.Equal(t, "r_123", result.RemoteAdID)
				assert.Equal(t, domain.AdStatusPendingReview, result.Status)
				assert.NotNil(t, result.PublishedAt)

				assert.Equal(t, domain.AdStatusPendingReview, captured.statusAtRemoteCall)
				assert.Equal(t, []domain.AdStatus{domain.AdStatusPendingReview, domain.AdStatusPendingReview}, captured.statuses)

				// Uma única transição: draft -> pending_review, sem notas
				require.Len(t, captured.transitions, 1)
				assert.Equal(t, domain.AdStatusDraft, captured.transitions[0].FromStatus)
				assert.Equal(t, domain.AdStatusPendingReview, captured.transitions[0].ToStatus)
				assert.Equal(t, domain.TriggerUserPublish, captured.transitions[0].TriggeredBy)
				assert.Nil(t, captured.transitions[0].Notes)
			},
		},
		{
			name: "Guarda de idempotência - anúncio já publicado não chama a plataforma",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, transitionRepo *mocks.MockTransitionRepository, validator *validatingmocks.MockValidator, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *capture {
				ad := draftAd()
				ad.Status = domain.AdStatusActive
				ad.RemoteAdID = stringPtr("r_123")

				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				// Nenhuma outra chamada é esperada: nem validação, nem escrita, nem plataforma
				return &capture{}
			},
			validate: func(t *testing.T, result *PublishResult, err error, captured *capture) {
				require.Error(t, err)
				var publishErr *PublishError
				require.ErrorAs(t, err, &publishErr)
				assert.Equal(t, CodeAlreadyPublished, publishErr.Code)
				require.NotNil(t, publishErr.RemoteAdID)
				assert.Equal(t, "r_123", *publishErr.RemoteAdID)
			},
		},
		{
			name: "Validação reprovada - anúncio permanece em rascunho sem escrita",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, transitionRepo *mocks.MockTransitionRepository, validator *validatingmocks.MockValidator, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *capture {
				ad := draftAd()
				ad.DestinationType = nil

				adRepo.EXPECT().GetAdByID("ad_001").Return(ad, nil)
				validator.EXPECT().Validate(7, "camp_001", "ad_001").Return(false, []domain.ValidationError{
					{Code: "destination_missing", Recoverable: true},
				})
				return &capture{}
			},
			validate: func(t *testing.T, result *PublishResult, err error, captured *capture) {
				require.Error(t, err)
				var publishErr *PublishError
				require.ErrorAs(t, err, &publishErr)
				assert.Equal(t, CodeValidationFailed, publishErr.Code)
				require.Len(t, publishErr.ValidationErrors, 1)
				assert.Equal(t, "destination_missing", publishErr.ValidationErrors[0].Code)
			},
		},
		{
			name: "Falha na criação remota - status failed e transição com a causa nas notas",
			setup: func(adRepo *mocks.MockAdRepository, campaignRepo *mocks.MockCampaignRepository, transitionRepo *mocks.MockTransitionRepository, validator *validatingmocks.MockValidator, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *capture {
				captured := &capture{}

				adRepo.EXPECT().GetAdByID("ad_001").Return(draftAd(), nil)
				validator.EXPECT().Validate(7, "camp_001", "ad_001").Return(true, nil)
				campaignRepo.EXPECT().GetCampaignByID("camp_001").Return(testCampaign(), nil)
				credProvider.EXPECT().GetCredential("camp_001").Return(testCredential(), nil)

				adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
					captured.statuses = append(captured.statuses, ad.Status)
					return nil
				}).Times(2)

				transitionRepo.EXPECT().Append(gomock.Any()).DoAndReturn(func(tr *domain.StatusTransition) error {
					captured.transitions = append(captured.transitions, tr)
					return nil
				}).Times(2)

				integrator.EXPECT().
					CreateAd(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, metadomain.NewRequestError(400, []byte(`{"error":{"message":"Invalid creative"}}`)))

				return captured
			},
			validate: func(t *testing.T, result *PublishResult, err error, captured *capture) {
				require.Error(t, err)
				var publishErr *PublishError
				require.ErrorAs(t, err, &publishErr)
				assert.Equal(t, CodePublishFailed, publishErr.Code)

				assert.Equal(t, []domain.AdStatus{domain.AdStatusPendingReview, domain.AdStatusFailed}, captured.statuses)

				// Exatamente uma transição com notas não vazias: a de falha
				require.Len(t, captured.transitions, 2)
				assert.Nil(t, captured.transitions[0].Notes)
				require.NotNil(t, captured.transitions[1].Notes)
				assert.NotEmpty(t, *captured.transitions[1].Notes)
				assert.Equal(t, domain.AdStatusFailed, captured.transitions[1].ToStatus)
				assert.Equal(t, domain.TriggerUserPublish, captured.transitions[1].TriggeredBy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			adRepo := mocks.NewMockAdRepository(ctrl)
			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			transitionRepo := mocks.NewMockTransitionRepository(ctrl)
			validator := validatingmocks.NewMockValidator(ctrl)
			credProvider := credmocks.NewMockProvider(ctrl)
			integrator := metamocks.NewMockIntegrator(ctrl)

			captured := tt.setup(adRepo, campaignRepo, transitionRepo, validator, credProvider, integrator)

			svc := &service{
				adRepo:         adRepo,
				campaignRepo:   campaignRepo,
				transitionRepo: transitionRepo,
				validator:      validator,
				credProvider:   credProvider,
				integrator:     integrator,
				cfg:            testConfig(),
				locker:         newAdLocker(),
			}

			result, err := svc.Publish(context.Background(), 7, "camp_001", "ad_001")
			tt.validate(t, result, err, captured)
		})
	}
}

type capture struct {
	statuses           []domain.AdStatus
	statusAtRemoteCall domain.AdStatus
	transitions        []*domain.StatusTransition
}

func TestService_Publish_AdNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	adRepo.EXPECT().GetAdByID("missing").Return(nil, nil)

	svc := &service{
		adRepo: adRepo,
		cfg:    testConfig(),
		locker: newAdLocker(),
	}

	_, err := svc.Publish(context.Background(), 7, "camp_001", "missing")

	var publishErr *PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, CodeValidationFailed, publishErr.Code)
	require.Len(t, publishErr.ValidationErrors, 1)
	assert.Equal(t, "ad_not_found", publishErr.ValidationErrors[0].Code)
}
