package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	DataForSEO    DataForSEO    `mapstructure:",squash"`
	Gemini        Gemini        `mapstructure:",squash"`
	Bedrock       Bedrock       `mapstructure:",squash"`
	Insight       Insight       `mapstructure:",squash"`
	Analysis      Analysis      `mapstructure:",squash"`
	Classifier    Classifier    `mapstructure:",squash"`
	Budget        Budget        `mapstructure:",squash"`
	History       History       `mapstructure:",squash"`
	WatchlistSync WatchlistSync `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Cors          Cors          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Password      string `mapstructure:"database_password"`
	URL           string `mapstructure:"database_url"`
	User          string `mapstructure:"database_user"`
	RunMigrations bool   `mapstructure:"database_run_migrations"`
}

type Redis struct {
	URL         string        `mapstructure:"redis_url"`
	SnapshotTTL time.Duration `mapstructure:"redis_snapshot_ttl"`
}

type DataForSEO struct {
	BaseURL      string        `mapstructure:"dataforseo_base_url"`
	Login        string        `mapstructure:"dataforseo_login"`
	Password     string        `mapstructure:"dataforseo_password"`
	Location     string        `mapstructure:"dataforseo_location"`
	Language     string        `mapstructure:"dataforseo_language"`
	Device       string        `mapstructure:"dataforseo_device"`
	OrganicDepth int           `mapstructure:"dataforseo_organic_depth"`
	Timeout      time.Duration `mapstructure:"dataforseo_timeout"`
}

type Gemini struct {
	BaseURL         string        `mapstructure:"gemini_base_url"`
	APIKey          string        `mapstructure:"gemini_api_key"`
	Model           string        `mapstructure:"gemini_model"`
	Temperature     float64       `mapstructure:"gemini_temperature"`
	MaxOutputTokens int           `mapstructure:"gemini_max_output_tokens"`
	Timeout         time.Duration `mapstructure:"gemini_timeout"`
}

type Bedrock struct {
	Region      string  `mapstructure:"bedrock_region"`
	ModelID     string  `mapstructure:"bedrock_model_id"`
	MaxTokens   int     `mapstructure:"bedrock_max_tokens"`
	Temperature float64 `mapstructure:"bedrock_temperature"`
}

type Insight struct {
	Provider string `mapstructure:"insight_provider"`
	Language string `mapstructure:"insight_language"`
}

type Analysis struct {
	MaxKeywords    int      `mapstructure:"analysis_max_keywords"`
	RequestDelayMS int      `mapstructure:"analysis_request_delay_ms"`
	Workers        int      `mapstructure:"analysis_workers"`
	BrandDomains   []string `mapstructure:"analysis_brand_domains"`
}

type Classifier struct {
	BrandTopRank            int     `mapstructure:"classifier_brand_top_rank"`
	BrandMinTopPositions    int     `mapstructure:"classifier_brand_min_top_positions"`
	BrandAdvertiserCeiling  int     `mapstructure:"classifier_brand_advertiser_ceiling"`
	HighCompetition         float64 `mapstructure:"classifier_high_competition"`
	HighCPC                 float64 `mapstructure:"classifier_high_cpc"`
	SaturatedAdvertisers    int     `mapstructure:"classifier_saturated_advertisers"`
	LowCompetition          float64 `mapstructure:"classifier_low_competition"`
	LowCPC                  float64 `mapstructure:"classifier_low_cpc"`
	FewAdvertisers          int     `mapstructure:"classifier_few_advertisers"`
	HighSearchVolume        int     `mapstructure:"classifier_high_search_volume"`
	MediumCompetition       float64 `mapstructure:"classifier_medium_competition"`
	HighVolumeAdvertisers   int     `mapstructure:"classifier_high_volume_advertisers"`
	LowSearchVolume         int     `mapstructure:"classifier_low_search_volume"`
	ExpensiveCPC            float64 `mapstructure:"classifier_expensive_cpc"`
	OpportunityTopRank      int     `mapstructure:"classifier_opportunity_top_rank"`
	OpportunityTopPositions int     `mapstructure:"classifier_opportunity_top_positions"`
}

type Budget struct {
	ClickThroughRate float64 `mapstructure:"budget_click_through_rate"`
	LowMultiplier    float64 `mapstructure:"budget_low_multiplier"`
	HighMultiplier   float64 `mapstructure:"budget_high_multiplier"`
}

type History struct {
	Enabled       bool   `mapstructure:"history_enabled"`
	RetentionDays int    `mapstructure:"history_retention_days"`
	RetentionCron string `mapstructure:"history_retention_cron"`
	ListLimit     uint64 `mapstructure:"history_list_limit"`
}

type WatchlistSync struct {
	CronSchedule string   `mapstructure:"watchlist_sync_cron"`
	Keywords     []string `mapstructure:"watchlist_sync_keywords"`
	BrandDomains []string `mapstructure:"watchlist_sync_brand_domains"`
	Enabled      bool     `mapstructure:"watchlist_sync_enabled"`
}

type Auth struct {
	AdminToken string `mapstructure:"auth_admin_token"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "dev")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/advisor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_RUN_MIGRATIONS", true)

	// Vazio desativa o cache de coletas
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_SNAPSHOT_TTL", "24h")

	viper.SetDefault("DATAFORSEO_BASE_URL", "https://api.dataforseo.com")
	viper.SetDefault("DATAFORSEO_LOGIN", "")
	viper.SetDefault("DATAFORSEO_PASSWORD", "")
	viper.SetDefault("DATAFORSEO_LOCATION", "Italy")
	viper.SetDefault("DATAFORSEO_LANGUAGE", "it")
	viper.SetDefault("DATAFORSEO_DEVICE", "desktop")
	viper.SetDefault("DATAFORSEO_ORGANIC_DEPTH", 20)
	viper.SetDefault("DATAFORSEO_TIMEOUT", "60s")

	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.7)
	viper.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 2048)
	viper.SetDefault("GEMINI_TIMEOUT", "60s")

	viper.SetDefault("BEDROCK_REGION", "us-east-1")
	viper.SetDefault("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
	viper.SetDefault("BEDROCK_MAX_TOKENS", 2048)
	viper.SetDefault("BEDROCK_TEMPERATURE", 0.7)

	// gemini, bedrock ou none
	viper.SetDefault("INSIGHT_PROVIDER", "gemini")
	viper.SetDefault("INSIGHT_LANGUAGE", "Italian")

	viper.SetDefault("ANALYSIS_MAX_KEYWORDS", 150)
	viper.SetDefault("ANALYSIS_REQUEST_DELAY_MS", 1000) // 1 segundo entre keywords
	viper.SetDefault("ANALYSIS_WORKERS", 4)
	viper.SetDefault("ANALYSIS_BRAND_DOMAINS", "")

	viper.SetDefault("CLASSIFIER_BRAND_TOP_RANK", 3)
	viper.SetDefault("CLASSIFIER_BRAND_MIN_TOP_POSITIONS", 3)
	viper.SetDefault("CLASSIFIER_BRAND_ADVERTISER_CEILING", 2)
	viper.SetDefault("CLASSIFIER_HIGH_COMPETITION", 0.7)
	viper.SetDefault("CLASSIFIER_HIGH_CPC", 1.5)
	viper.SetDefault("CLASSIFIER_SATURATED_ADVERTISERS", 8)
	viper.SetDefault("CLASSIFIER_LOW_COMPETITION", 0.3)
	viper.SetDefault("CLASSIFIER_LOW_CPC", 0.5)
	viper.SetDefault("CLASSIFIER_FEW_ADVERTISERS", 3)
	viper.SetDefault("CLASSIFIER_HIGH_SEARCH_VOLUME", 5000)
	viper.SetDefault("CLASSIFIER_MEDIUM_COMPETITION", 0.5)
	viper.SetDefault("CLASSIFIER_HIGH_VOLUME_ADVERTISERS", 5)
	viper.SetDefault("CLASSIFIER_LOW_SEARCH_VOLUME", 500)
	viper.SetDefault("CLASSIFIER_EXPENSIVE_CPC", 2.0)
	viper.SetDefault("CLASSIFIER_OPPORTUNITY_TOP_RANK", 3)
	viper.SetDefault("CLASSIFIER_OPPORTUNITY_TOP_POSITIONS", 2)

	viper.SetDefault("BUDGET_CLICK_THROUGH_RATE", 0.02)
	viper.SetDefault("BUDGET_LOW_MULTIPLIER", 0.7)
	viper.SetDefault("BUDGET_HIGH_MULTIPLIER", 1.3)

	viper.SetDefault("HISTORY_ENABLED", true)
	viper.SetDefault("HISTORY_RETENTION_DAYS", 90)
	viper.SetDefault("HISTORY_RETENTION_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("HISTORY_LIST_LIMIT", 50)

	viper.SetDefault("WATCHLIST_SYNC_CRON", "0 3 * * 1") // Toda segunda-feira às 3h da manhã
	viper.SetDefault("WATCHLIST_SYNC_KEYWORDS", "")
	viper.SetDefault("WATCHLIST_SYNC_BRAND_DOMAINS", "")
	viper.SetDefault("WATCHLIST_SYNC_ENABLED", false)

	viper.SetDefault("AUTH_ADMIN_TOKEN", "")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	config.Analysis.BrandDomains = cleanList(config.Analysis.BrandDomains)
	config.WatchlistSync.Keywords = cleanList(config.WatchlistSync.Keywords)
	config.WatchlistSync.BrandDomains = cleanList(config.WatchlistSync.BrandDomains)
	config.Cors.AllowedOrigins = cleanList(config.Cors.AllowedOrigins)
	config.DataForSEO.BaseURL = strings.TrimRight(config.DataForSEO.BaseURL, "/")
	config.Gemini.BaseURL = strings.TrimRight(config.Gemini.BaseURL, "/")

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// cleanList remove espaços e itens vazios de listas vindas de variáveis de ambiente
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
