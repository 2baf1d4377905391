package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Swish       SwishConfig
	Email       EmailConfig
	Cardskipper CardskipperConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string // public base URL used in cancellation links
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SwishConfig struct {
	BaseURL         string
	PayeeAlias      string
	CallbackBaseURL string
	Currency        string
	TimeoutSeconds  int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type CardskipperConfig struct {
	BaseURL        string
	APIKey         string
	OrganisationID string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SWISH_CURRENCY", "SEK")
	viper.SetDefault("SWISH_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CARDSKIPPER_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Swish: SwishConfig{
			BaseURL:         viper.GetString("SWISH_BASE_URL"),
			PayeeAlias:      viper.GetString("SWISH_PAYEE_ALIAS"),
			CallbackBaseURL: viper.GetString("SWISH_CALLBACK_BASE_URL"),
			Currency:        viper.GetString("SWISH_CURRENCY"),
			TimeoutSeconds:  viper.GetInt("SWISH_TIMEOUT_SECONDS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Cardskipper: CardskipperConfig{
			BaseURL:        viper.GetString("CARDSKIPPER_BASE_URL"),
			APIKey:         viper.GetString("CARDSKIPPER_API_KEY"),
			OrganisationID: viper.GetString("CARDSKIPPER_ORG_ID"),
			TimeoutSeconds: viper.GetInt("CARDSKIPPER_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
