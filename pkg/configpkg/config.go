// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Token maker kinds supported by TOKEN_TYPE.
const (
	TokenTypePaseto = "paseto"
	TokenTypeJWT    = "jwt"
)

// DefaultCatalogPageSize is the number of catalog items rendered per page.
const DefaultCatalogPageSize = 10

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	TokenType            string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	Environement         string        `mapstructure:"GO_ENV"`
	CORSAllowedOrigins   string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	CatalogPageSize      int32         `mapstructure:"CATALOG_PAGE_SIZE"`
}

// AllowedOrigins returns the comma separated CORS origins as a slice.
func (c Config) AllowedOrigins() []string {
	var origins []string

	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("TOKEN_TYPE", TokenTypePaseto)
	v.SetDefault("CATALOG_PAGE_SIZE", DefaultCatalogPageSize)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if c.CatalogPageSize <= 0 {
		c.CatalogPageSize = DefaultCatalogPageSize
	}

	return c, nil
}
