package config

import (
	"log"
	"time"

	"cafe-billing/internal/models"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
	Defaults DefaultsConfig
	Site     models.SiteInfo
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Driver   string // mysql, postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type LedgerConfig struct {
	CustomerPrefix      string
	ProductPrefix       string
	SupplierPrefix      string
	BillPrefix          string
	CodeWidth           int
	StoreTimeoutSeconds int
	MaxTxRetries        int
	RejectOverpayment   bool
	DefaultTaxPercent   string
	DefaultReorderLevel int
}

func (l LedgerConfig) StoreTimeout() time.Duration {
	return time.Duration(l.StoreTimeoutSeconds) * time.Second
}

type DefaultsConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminName     string `mapstructure:"admin_name"`
	AdminPassword string `mapstructure:"admin_password"`
}

var AppConfig *Config

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("CUSTOMER_PREFIX", "CUST")
	viper.SetDefault("PRODUCT_PREFIX", "PROD")
	viper.SetDefault("SUPPLIER_PREFIX", "SUP")
	viper.SetDefault("BILL_PREFIX", "BILL")
	viper.SetDefault("CODE_WIDTH", 4)
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("MAX_TX_RETRIES", 3)
	viper.SetDefault("REJECT_OVERPAYMENT", false)
	viper.SetDefault("DEFAULT_TAX_PERCENT", "18")
	viper.SetDefault("DEFAULT_REORDER_LEVEL", 10)
	viper.SetDefault("ADMIN_NAME", "Shop Admin")
}

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")
	setDefaults()

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Ledger: LedgerConfig{
			CustomerPrefix:      viper.GetString("CUSTOMER_PREFIX"),
			ProductPrefix:       viper.GetString("PRODUCT_PREFIX"),
			SupplierPrefix:      viper.GetString("SUPPLIER_PREFIX"),
			BillPrefix:          viper.GetString("BILL_PREFIX"),
			CodeWidth:           viper.GetInt("CODE_WIDTH"),
			StoreTimeoutSeconds: viper.GetInt("STORE_TIMEOUT_SECONDS"),
			MaxTxRetries:        viper.GetInt("MAX_TX_RETRIES"),
			RejectOverpayment:   viper.GetBool("REJECT_OVERPAYMENT"),
			DefaultTaxPercent:   viper.GetString("DEFAULT_TAX_PERCENT"),
			DefaultReorderLevel: viper.GetInt("DEFAULT_REORDER_LEVEL"),
		},
		Defaults: DefaultsConfig{
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminName:     viper.GetString("ADMIN_NAME"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	// Site info printed on bills
	siteViper := viper.New()
	siteViper.SetConfigFile("config/config.toml")
	siteViper.SetConfigType("toml")
	if err := siteViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using empty site info: %v", err)
	} else if err := siteViper.UnmarshalKey("site", &AppConfig.Site); err != nil {
		log.Printf("Error: Failed to unmarshal site info from TOML: %v", err)
	}
	if AppConfig.Site.CurrencySymbol == "" {
		AppConfig.Site.CurrencySymbol = "Rs."
	}

	log.Printf("Configuration loaded successfully:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- JWT Secret: %s", setOrNot(AppConfig.Server.JWTSecret))
	log.Printf("- Database Driver: %s", AppConfig.Database.Driver)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Database URL: %s", setOrNot(AppConfig.Database.URL))
	log.Printf("- Store Timeout: %s", AppConfig.Ledger.StoreTimeout())
	log.Printf("- Reject Overpayment: %t", AppConfig.Ledger.RejectOverpayment)
	log.Printf("- Shop Name: %s", AppConfig.Site.Name)
}

func setOrNot(v string) string {
	if v != "" {
		return "SET"
	}
	return "NOT SET"
}
