// Package config provides configuration management for the abcpay gateway.
// Configuration can be loaded from YAML files and overridden by environment
// variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Insecure development defaults for the wallet SDK secrets. Deployments must
// override both; main warns at startup when either is left in place.
const (
	DefaultWalletAppId     = "wxdefault"
	DefaultWalletApiSecret = "default_key"
)

// Config holds all configuration for the abcpay gateway.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug    bool  `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	LogRecords int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen     struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		// Ids is the configured merchant identifier list; requests use the
		// first entry.
		Ids           []string `yaml:"ids" env:"MERCHANT_IDS"`
		CertFiles     []string `yaml:"cert_files" env:"MERCHANT_CERT_FILES"`
		CertPasswords []string `yaml:"cert_passwords" env:"MERCHANT_CERT_PASSWORDS"`
		// InsecureSkipSign permits sending the serialized payload without a
		// signature when no certificate is configured. Non-production only.
		InsecureSkipSign bool `yaml:"insecure_skip_sign" env:"MERCHANT_INSECURE_SKIP_SIGN" env-default:"false"`
		// PrintLog enables verbose logging of the pre-signature payload.
		PrintLog bool `yaml:"print_log" env:"MERCHANT_PRINT_LOG" env-default:"false"`
		Connect  struct {
			Scheme string `yaml:"scheme" env:"ABC_SCHEME" env-default:"https"`
			Host   string `yaml:"host" env:"ABC_HOST" env-default:"pay.abchina.com"`
			Port   string `yaml:"port" env:"ABC_PORT" env-default:"443"`
			Path   string `yaml:"path" env:"ABC_PATH" env-default:"/ebus/trx"`
		} `yaml:"connect"`
	} `yaml:"merchant"`
	Wallet struct {
		AppId     string `yaml:"app_id" env:"WECHAT_APP_ID" env-default:"wxdefault"`
		ApiSecret string `yaml:"api_secret" env:"WECHAT_API_KEY" env-default:"default_key"`
		SignType  string `yaml:"sign_type" env:"WECHAT_SIGN_TYPE" env-default:"MD5"`
	} `yaml:"wallet"`
}

// MerchantId returns the active merchant identifier, the first configured.
func (c *Config) MerchantId() string {
	if len(c.Merchant.Ids) > 0 {
		return c.Merchant.Ids[0]
	}
	return ""
}

// Credential returns the active certificate path and unlock password, the
// first configured pair. ok is false when no certificate is configured.
func (c *Config) Credential() (path, password string, ok bool) {
	if len(c.Merchant.CertFiles) == 0 || len(c.Merchant.CertPasswords) == 0 {
		return "", "", false
	}
	return c.Merchant.CertFiles[0], c.Merchant.CertPasswords[0], true
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
