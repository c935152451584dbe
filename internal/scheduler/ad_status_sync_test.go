package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling"
	reconcilingmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling/mocks"
	"go.uber.org/mock/gomock"
)

func publishedAd(id string) *domain.Ad {
	remoteID := "r_" + id
	return &domain.Ad{
		ID:         id,
		CampaignID: "camp_001",
		Status:     domain.AdStatusPendingReview,
		RemoteAdID: &remoteID,
	}
}

func TestAdStatusSyncService_processAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockReconciler := reconcilingmocks.NewMockService(ctrl)

	service := &AdStatusSyncService{
		config: AdStatusSyncConfig{
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   2,
		},
		adRepo:     mockAdRepo,
		reconciler: mockReconciler,
	}

	ads := []*domain.Ad{publishedAd("ad_001"), publishedAd("ad_002"), publishedAd("ad_003")}

	// Um anúncio mudou de status, um permaneceu igual e um falhou
	mockReconciler.EXPECT().
		Reconcile(gomock.Any(), "ad_001").
		Return(&reconciling.Result{AdID: "ad_001", Changed: true, Status: domain.AdStatusActive}, nil)

	mockReconciler.EXPECT().
		Reconcile(gomock.Any(), "ad_002").
		Return(&reconciling.Result{AdID: "ad_002", Changed: false, Status: domain.AdStatusPendingReview}, nil)

	mockReconciler.EXPECT().
		Reconcile(gomock.Any(), "ad_003").
		Return(nil, errors.New("credencial expirada"))

	changed := service.processAds(context.Background(), ads)

	// A falha individual não interrompe o lote e não conta como mudança
	assert.Equal(t, 1, changed)
}

func TestAdStatusSyncService_syncAllAdStatuses_SemAnunciosPublicados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockReconciler := reconcilingmocks.NewMockService(ctrl)

	service := &AdStatusSyncService{
		config: AdStatusSyncConfig{
			MaxConcurrentJobs: 2,
		},
		adRepo:     mockAdRepo,
		reconciler: mockReconciler,
	}

	// Nenhuma reconciliação deve ser disparada quando não há anúncios publicados
	mockAdRepo.EXPECT().ListPublishedAds().Return([]*domain.Ad{}, nil)

	service.syncAllAdStatuses(context.Background())
}

func TestAdStatusSyncService_Start_Desabilitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdRepo := mocks.NewMockAdRepository(ctrl)
	mockReconciler := reconcilingmocks.NewMockService(ctrl)

	appConfig := &config.Config{
		AdStatusSync: config.AdStatusSync{
			CronSchedule:        "*/30 * * * *",
			RequestDelaySeconds: 1,
			MaxConcurrentJobs:   2,
			Enabled:             false,
		},
	}

	service := NewAdStatusSyncService(mockAdRepo, mockReconciler, appConfig)

	// Com a reconciliação desabilitada o Start retorna sem agendar nada
	err := service.Start(context.Background())
	require.NoError(t, err)

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_enabled"])
}
