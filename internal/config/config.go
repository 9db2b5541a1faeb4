package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Alias AliasConfig
}

type AppConfig struct {
	Port    string
	BaseURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type AliasConfig struct {
	CodeLength          int
	ValidityDays        int
	MaxGenerateAttempts int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	cfg.App.Port = viper.GetString("APP_PORT")
	cfg.App.BaseURL = viper.GetString("BASE_URL")
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:" + cfg.App.Port
	}
	cfg.DB.Host = viper.GetString("DB_HOST")
	cfg.DB.Port = viper.GetString("DB_PORT")
	cfg.DB.User = viper.GetString("DB_USER")
	cfg.DB.Password = viper.GetString("DB_PASSWORD")
	cfg.DB.Name = viper.GetString("DB_NAME")

	// Параметры выпуска коротких кодов
	cfg.Alias.CodeLength = viper.GetInt("ALIAS_CODE_LENGTH")
	if cfg.Alias.CodeLength == 0 {
		cfg.Alias.CodeLength = 8
	}
	cfg.Alias.ValidityDays = viper.GetInt("ALIAS_VALIDITY_DAYS")
	if cfg.Alias.ValidityDays == 0 {
		cfg.Alias.ValidityDays = 30
	}
	// 0 означает неограниченное число попыток при коллизиях
	cfg.Alias.MaxGenerateAttempts = viper.GetInt("ALIAS_MAX_GENERATE_ATTEMPTS")

	return &cfg, nil
}
