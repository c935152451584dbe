package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling"
)

// AdStatusSyncConfig representa a configuração do agendador de reconciliação de status
type AdStatusSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// AdStatusSyncService gerencia o agendamento e execução da reconciliação de
// status dos anúncios publicados com a plataforma
type AdStatusSyncService struct {
	scheduler           *gocron.Scheduler
	config              AdStatusSyncConfig
	appConfig           *config.Config
	adRepo              repository.AdRepository
	reconciler          reconciling.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAdStatusSyncService cria uma nova instância do serviço de reconciliação de status
func NewAdStatusSyncService(
	adRepo repository.AdRepository,
	reconciler reconciling.Service,
	appConfig *config.Config,
) *AdStatusSyncService {
	// Criar a configuração com base na config global
	syncConfig := AdStatusSyncConfig{
		CronSchedule:        appConfig.AdStatusSync.CronSchedule,
		RequestDelaySeconds: appConfig.AdStatusSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.AdStatusSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.AdStatusSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de reconciliação de status carregada")

	return &AdStatusSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		adRepo:      adRepo,
		reconciler:  reconciler,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *AdStatusSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Reconciliação de status desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de reconciliação de status")

	// Agendar a reconciliação de status
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAdStatuses(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconciliação de status: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reconciliação de status")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAdStatuses reconcilia o status de todos os anúncios publicados
func (s *AdStatusSyncService) syncAllAdStatuses(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconciliação de status já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando reconciliação de status para todos os anúncios publicados")

	publishedAds, err := s.adRepo.ListPublishedAds()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de anúncios para reconciliação de status")
		return
	}

	if len(publishedAds) == 0 {
		logrus.Info("Nenhum anúncio publicado encontrado para reconciliação de status")
		return
	}

	changed := s.processAds(ctx, publishedAds)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"ads":      len(publishedAds),
		"changed":  changed,
	}).Info("Reconciliação de status concluída")

	s.lastSyncCompletedAt = time.Now()
}

// processAds reconcilia cada anúncio com um limite de workers concorrentes.
// Falhas individuais são logadas e não interrompem o lote.
func (s *AdStatusSyncService) processAds(ctx context.Context, ads []*domain.Ad) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	var mu sync.Mutex
	changed := 0

	for _, ad := range ads {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(ad *domain.Ad) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			result, err := s.reconciler.Reconcile(ctx, ad.ID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"ad_id": ad.ID,
					"error": err.Error(),
				}).Error("Erro ao reconciliar status do anúncio")
				return
			}

			if result.Changed {
				mu.Lock()
				changed++
				mu.Unlock()
			}

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(ad)
	}

	wg.Wait()

	return changed
}

// TriggerManualSync inicia manualmente uma reconciliação de status
func (s *AdStatusSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconciliação de status já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando reconciliação manual de status")
	go s.syncAllAdStatuses(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *AdStatusSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
