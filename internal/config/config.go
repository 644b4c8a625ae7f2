package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Bot struct {
		Token   string `yaml:"token"`
		AdminID int64  `yaml:"admin_id"`
	} `yaml:"bot"`

	Payment struct {
		ShopID      string `yaml:"shop_id"`
		SecretKey   string `yaml:"secret_key"`
		ReturnURL   string `yaml:"return_url"`
		WebhookPath string `yaml:"webhook_path"`
	} `yaml:"payment"`

	Geocoder struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"geocoder"`

	// Prices — цены на услуги в рублях (целые, без копеек)
	Prices struct {
		WorkerSubscription int `yaml:"worker_subscription"`
		VacancyPublication int `yaml:"vacancy_publication"`
		VacancyBoost       int `yaml:"vacancy_boost"`
		VacancyPin1d       int `yaml:"vacancy_pin_1d"`
		VacancyPin3d       int `yaml:"vacancy_pin_3d"`
		VacancyPin7d       int `yaml:"vacancy_pin_7d"`
	} `yaml:"prices"`

	// Limits — лимиты и статические параметры ядра
	Limits struct {
		DailyVacancyViews     int     `yaml:"daily_vacancy_views"`
		FreeVacanciesPerMonth int     `yaml:"free_vacancies_per_month"`
		SubscriptionDays      int     `yaml:"subscription_days"`
		VacancyLifetimeDays   int     `yaml:"vacancy_lifetime_days"`
		MaxResumeLength       int     `yaml:"max_resume_length"`
		MaxDescriptionLength  int     `yaml:"max_description_length"`
		GeoFilterRadiusKm     float64 `yaml:"geo_filter_radius_km"`
	} `yaml:"limits"`
}

// Load читает config.yaml (путь из CONFIG_PATH) и перекрывает значения
// переменными окружения. Конфиг не глобальный: результат передается
// в конструкторы явно.
func Load() (*Config, error) {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	applyEnv(cfg)

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database url is not set (config %s or DATABASE_URL)", configPath)
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"

	cfg.Payment.WebhookPath = "/yookassa/webhook"

	cfg.Prices.WorkerSubscription = 300
	cfg.Prices.VacancyPublication = 100
	cfg.Prices.VacancyBoost = 200
	cfg.Prices.VacancyPin1d = 100
	cfg.Prices.VacancyPin3d = 250
	cfg.Prices.VacancyPin7d = 500

	cfg.Limits.DailyVacancyViews = 25
	cfg.Limits.FreeVacanciesPerMonth = 2
	cfg.Limits.SubscriptionDays = 30
	cfg.Limits.VacancyLifetimeDays = 30
	cfg.Limits.MaxResumeLength = 1000
	cfg.Limits.MaxDescriptionLength = 2000
	cfg.Limits.GeoFilterRadiusKm = 50
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		cfg.Bot.AdminID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := os.Getenv("YOOKASSA_SHOP_ID"); v != "" {
		cfg.Payment.ShopID = v
	}
	if v := os.Getenv("YOOKASSA_SECRET_KEY"); v != "" {
		cfg.Payment.SecretKey = v
	}
	if v := os.Getenv("YOOKASSA_RETURN_URL"); v != "" {
		cfg.Payment.ReturnURL = v
	}
	if v := os.Getenv("GEOCODER_API_KEY"); v != "" {
		cfg.Geocoder.APIKey = v
	}
}
