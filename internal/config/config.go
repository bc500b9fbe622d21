package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Google       GoogleAds    `mapstructure:",squash"`
	Meta         MetaAds      `mapstructure:",squash"`
	Naver        NaverAds     `mapstructure:",squash"`
	Kakao        KakaoAds     `mapstructure:",squash"`
	Coupang      CoupangAds   `mapstructure:",squash"`
	TikTok       TikTokAds    `mapstructure:",squash"`
	Amazon       AmazonAds    `mapstructure:",squash"`
	CampaignSync CampaignSync `mapstructure:",squash"`
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

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// GoogleAds guarda as credenciais do app OAuth e da API do Google Ads.
// LoginCustomerID é o MCC opcional, distinto do customer alvo.
type GoogleAds struct {
	ClientID        string `mapstructure:"google_client_id"`
	ClientSecret    string `mapstructure:"google_client_secret"`
	DeveloperToken  string `mapstructure:"google_developer_token"`
	RedirectURI     string `mapstructure:"google_redirect_uri"`
	LoginCustomerID string `mapstructure:"google_login_customer_id"`
	APIBaseURL      string `mapstructure:"google_api_base_url"`
	APIVersion      string `mapstructure:"google_api_version"`
}

type MetaAds struct {
	AppID       string `mapstructure:"meta_app_id"`
	AppSecret   string `mapstructure:"meta_app_secret"`
	RedirectURI string `mapstructure:"meta_redirect_uri"`
	BaseURL     string `mapstructure:"meta_base_url"`
	Version     string `mapstructure:"meta_version"`
	URL         string `mapstructure:"-"`
}

type NaverAds struct {
	ClientID     string `mapstructure:"naver_client_id"`
	ClientSecret string `mapstructure:"naver_client_secret"`
	RedirectURI  string `mapstructure:"naver_redirect_uri"`
	APIBaseURL   string `mapstructure:"naver_api_base_url"`
}

type KakaoAds struct {
	ClientID     string `mapstructure:"kakao_client_id"`
	ClientSecret string `mapstructure:"kakao_client_secret"`
	RedirectURI  string `mapstructure:"kakao_redirect_uri"`
	APIBaseURL   string `mapstructure:"kakao_api_base_url"`
}

type CoupangAds struct {
	AccessKey  string `mapstructure:"coupang_access_key"`
	SecretKey  string `mapstructure:"coupang_secret_key"`
	APIBaseURL string `mapstructure:"coupang_api_base_url"`
}

type TikTokAds struct {
	AppID       string `mapstructure:"tiktok_app_id"`
	AppSecret   string `mapstructure:"tiktok_app_secret"`
	RedirectURI string `mapstructure:"tiktok_redirect_uri"`
	APIBaseURL  string `mapstructure:"tiktok_api_base_url"`
}

type AmazonAds struct {
	ClientID     string `mapstructure:"amazon_client_id"`
	ClientSecret string `mapstructure:"amazon_client_secret"`
	RedirectURI  string `mapstructure:"amazon_redirect_uri"`
	APIBaseURL   string `mapstructure:"amazon_api_base_url"`
}

type CampaignSync struct {
	IncrementalCron     string `mapstructure:"campaign_sync_incremental_cron"`
	FullCron            string `mapstructure:"campaign_sync_full_cron"`
	MaxConcurrentJobs   int    `mapstructure:"campaign_sync_max_concurrent_jobs"`
	RequestDelaySeconds int    `mapstructure:"campaign_sync_request_delay_seconds"`
	MetricsLookbackDays int    `mapstructure:"campaign_sync_metrics_lookback_days"`
	Enabled             bool   `mapstructure:"campaign_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/allad")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("GOOGLE_API_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_API_VERSION", "v17")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("NAVER_API_BASE_URL", "https://api.searchad.naver.com")
	viper.SetDefault("KAKAO_API_BASE_URL", "https://apis.moment.kakao.com")
	viper.SetDefault("COUPANG_API_BASE_URL", "https://advertising-api.coupang.com")
	viper.SetDefault("TIKTOK_API_BASE_URL", "https://business-api.tiktok.com/open_api/v1.3")
	viper.SetDefault("AMAZON_API_BASE_URL", "https://advertising-api.amazon.com")

	// Defaults da sincronização de campanhas
	viper.SetDefault("CAMPAIGN_SYNC_INCREMENTAL_CRON", "0 * * * *") // Toda hora cheia
	viper.SetDefault("CAMPAIGN_SYNC_FULL_CRON", "0 2 * * *")        // Todos os dias às 2h da manhã
	viper.SetDefault("CAMPAIGN_SYNC_MAX_CONCURRENT_JOBS", 3)        // 3 jobs concorrentes
	viper.SetDefault("CAMPAIGN_SYNC_REQUEST_DELAY_SECONDS", 1)      // 1 segundo entre requisições
	viper.SetDefault("CAMPAIGN_SYNC_METRICS_LOOKBACK_DAYS", 30)     // Janela de métricas por campanha
	viper.SetDefault("CAMPAIGN_SYNC_ENABLED", false)                // Habilitar sincronização agendada

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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
