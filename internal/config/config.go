package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Publish      Publish      `mapstructure:",squash"`
	AdStatusSync AdStatusSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	URL     string `mapstructure:"-"`
	Version string `mapstructure:"meta_version"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Publish controla o pipeline de publicação de anúncios
type Publish struct {
	RemoteTimeout       time.Duration `mapstructure:"publish_remote_timeout"`
	MinDailyBudgetCents int64         `mapstructure:"publish_min_daily_budget_cents"`
}

// AdStatusSync controla o agendador de reconciliação de status dos anúncios
type AdStatusSync struct {
	CronSchedule        string `mapstructure:"ad_status_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"ad_status_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"ad_status_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"ad_status_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adpublisher")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults do pipeline de publicação
	viper.SetDefault("PUBLISH_REMOTE_TIMEOUT", "30s")       // Timeout da chamada remota de criação
	viper.SetDefault("PUBLISH_MIN_DAILY_BUDGET_CENTS", 100) // Piso de orçamento diário da plataforma

	// Defaults da sincronização de status de anúncios
	viper.SetDefault("AD_STATUS_SYNC_CRON", "*/15 * * * *")     // A cada 15 minutos
	viper.SetDefault("AD_STATUS_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre requisições
	viper.SetDefault("AD_STATUS_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("AD_STATUS_SYNC_ENABLED", false)           // Habilitar sincronização

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
