package reconciling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	credmocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/credentials/mocks"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func publishedAd(status domain.AdStatus) *domain.Ad {
	return &domain.Ad{
		ID:         "ad_001",
		CampaignID: "camp_001",
		Status:     status,
		RemoteAdID: stringPtr("r_123"),
	}
}

func testCredential() *domain.PlatformCredential {
	return &domain.PlatformCredential{Token: "token", SelectedAccountID: "act_123"}
}

func newTestService(adRepo *mocks.MockAdRepository, transitionRepo *mocks.MockTransitionRepository, credProvider *credmocks.MockProvider, integrator *metamocks.MockIntegrator) *service {
	return &service{
		adRepo:         adRepo,
		transitionRepo: transitionRepo,
		credProvider:   credProvider,
		integrator:     integrator,
	}
}

func TestService_Reconcile_StatusChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	adRepo.EXPECT().GetAdByID("ad_001").Return(publishedAd(domain.AdStatusPendingReview), nil)
	credProvider.EXPECT().GetCredential("camp_001").Return(testCredential(), nil)
	integrator.EXPECT().
		GetAdStatus(gomock.Any(), gomock.Any(), "r_123").
		Return(&metadomain.RemoteAdStatus{Status: "ACTIVE", EffectiveStatus: "ACTIVE"}, nil)

	var persisted *domain.Ad
	adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
		persisted = ad
		return nil
	})

	var transition *domain.StatusTransition
	transitionRepo.EXPECT().Append(gomock.Any()).DoAndReturn(func(tr *domain.StatusTransition) error {
		transition = tr
		return nil
	})

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	result, err := svc.Reconcile(context.Background(), "ad_001")
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, domain.AdStatusPendingReview, result.FromStatus)
	assert.Equal(t, domain.AdStatusActive, result.Status)

	// A aprovação carimba approvedAt na primeira entrada em active
	require.NotNil(t, persisted)
	assert.Equal(t, domain.AdStatusActive, persisted.Status)
	assert.NotNil(t, persisted.ApprovedAt)
	assert.Nil(t, persisted.RejectedAt)

	require.NotNil(t, transition)
	assert.Equal(t, domain.AdStatusPendingReview, transition.FromStatus)
	assert.Equal(t, domain.AdStatusActive, transition.ToStatus)
	assert.Equal(t, domain.TriggerPlatformSync, transition.TriggeredBy)
}

func TestService_Reconcile_StatusUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	// Duas reconciliações seguidas sem mudança remota: nenhuma escrita em nenhuma delas
	adRepo.EXPECT().GetAdByID("ad_001").Return(publishedAd(domain.AdStatusActive), nil).Times(2)
	credProvider.EXPECT().GetCredential("camp_001").Return(testCredential(), nil).Times(2)
	integrator.EXPECT().
		GetAdStatus(gomock.Any(), gomock.Any(), "r_123").
		Return(&metadomain.RemoteAdStatus{Status: "ACTIVE", EffectiveStatus: "ACTIVE"}, nil).
		Times(2)

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	for i := 0; i < 2; i++ {
		result, err := svc.Reconcile(context.Background(), "ad_001")
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, domain.AdStatusActive, result.Status)
	}
}

func TestService_Reconcile_RemoteRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	adRepo.EXPECT().GetAdByID("ad_001").Return(publishedAd(domain.AdStatusPendingReview), nil)
	credProvider.EXPECT().GetCredential("camp_001").Return(testCredential(), nil)
	integrator.EXPECT().
		GetAdStatus(gomock.Any(), gomock.Any(), "r_123").
		Return(&metadomain.RemoteAdStatus{
			Status:          "ACTIVE",
			EffectiveStatus: "DISAPPROVED",
			Issues: []metadomain.AdIssue{
				{ErrorCode: 1815869, ErrorSummary: "Texto com excesso de maiúsculas", Level: "AD"},
			},
		}, nil)

	var persisted *domain.Ad
	adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
		persisted = ad
		return nil
	})

	var transition *domain.StatusTransition
	transitionRepo.EXPECT().Append(gomock.Any()).DoAndReturn(func(tr *domain.StatusTransition) error {
		transition = tr
		return nil
	})

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	result, err := svc.Reconcile(context.Background(), "ad_001")
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, domain.AdStatusRejected, result.Status)

	require.NotNil(t, persisted)
	assert.NotNil(t, persisted.RejectedAt)
	assert.Nil(t, persisted.ApprovedAt)

	// Os problemas reportados vão para as notas e metadados da transição
	require.NotNil(t, transition)
	require.NotNil(t, transition.Notes)
	assert.Equal(t, "Texto com excesso de maiúsculas", *transition.Notes)
	assert.NotEmpty(t, transition.Metadata)
}

func TestService_ReconcileAll_ContinuesAfterIndividualFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	failing := publishedAd(domain.AdStatusActive)
	healthy := &domain.Ad{
		ID:         "ad_002",
		CampaignID: "camp_002",
		Status:     domain.AdStatusActive,
		RemoteAdID: stringPtr("r_456"),
	}

	adRepo.EXPECT().ListPublishedAds().Return([]*domain.Ad{failing, healthy}, nil)

	credProvider.EXPECT().GetCredential("camp_001").Return(nil, errors.New("token expirado"))

	credProvider.EXPECT().GetCredential("camp_002").Return(testCredential(), nil)
	integrator.EXPECT().
		GetAdStatus(gomock.Any(), gomock.Any(), "r_456").
		Return(&metadomain.RemoteAdStatus{Status: "ACTIVE", EffectiveStatus: "ACTIVE"}, nil)

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	results, err := svc.ReconcileAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "ad_001", results[0].AdID)
	assert.NotEmpty(t, results[0].Error)

	assert.Equal(t, "ad_002", results[1].AdID)
	assert.Empty(t, results[1].Error)
	assert.False(t, results[1].Changed)
}

func TestService_ApplyWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	adRepo.EXPECT().GetAdByRemoteID("r_123").Return(publishedAd(domain.AdStatusActive), nil)

	var persisted *domain.Ad
	adRepo.EXPECT().UpdateAd(gomock.Any()).DoAndReturn(func(ad *domain.Ad) error {
		persisted = ad
		return nil
	})

	var transition *domain.StatusTransition
	transitionRepo.EXPECT().Append(gomock.Any()).DoAndReturn(func(tr *domain.StatusTransition) error {
		transition = tr
		return nil
	})

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	// O webhook não faz consulta de ida: o payload já traz o estado remoto
	result, err := svc.ApplyWebhook(context.Background(), "r_123", &metadomain.RemoteAdStatus{
		Status:          "PAUSED",
		EffectiveStatus: "PAUSED",
	})
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, domain.AdStatusPaused, result.Status)

	require.NotNil(t, persisted)
	assert.Equal(t, domain.AdStatusPaused, persisted.Status)

	require.NotNil(t, transition)
	assert.Equal(t, domain.TriggerPlatformWebhook, transition.TriggeredBy)
}

func TestService_Reconcile_RascunhoSemIdentificadorRemoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	transitionRepo := mocks.NewMockTransitionRepository(ctrl)
	credProvider := credmocks.NewMockProvider(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	draft := &domain.Ad{
		ID:         "ad_001",
		CampaignID: "camp_001",
		Status:     domain.AdStatusDraft,
	}

	// Rascunho é um estado normal: nenhuma consulta remota e nenhuma escrita
	adRepo.EXPECT().GetAdByID("ad_001").Return(draft, nil)

	svc := newTestService(adRepo, transitionRepo, credProvider, integrator)

	result, err := svc.Reconcile(context.Background(), "ad_001")
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Equal(t, domain.AdStatusDraft, result.FromStatus)
	assert.Equal(t, domain.AdStatusDraft, result.Status)
	assert.Empty(t, result.RemoteAdID)
	assert.Empty(t, result.Error)
}

func TestService_Reconcile_AdNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adRepo := mocks.NewMockAdRepository(ctrl)
	adRepo.EXPECT().GetAdByID("missing").Return(nil, nil)

	svc := &service{adRepo: adRepo}

	_, err := svc.Reconcile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAdNotFound)
}
