package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port            int
		ShutdownTimeout string
	}
	Store struct {
		Type            string // memory, file, sqlite, postgres or gcs
		Path            string // directory for file, database file for sqlite
		URL             string // postgres connection string
		Table           string
		Bucket          string
		Prefix          string
		CredentialsFile string
		CacheSize       int
		LogOperations   bool
	}
	Site struct {
		Title string
		Icon  string
	}
	Admin struct {
		User              string
		Password          string
		MinPasswordLength int
		BcryptCost        int
	}
	Search struct {
		Concurrency int
	}
	Importer struct {
		SitemapURL     string
		UserAgent      string
		AllowedDomains []string
		MaxPages       int
		Timeout        string
	}
	Log struct {
		Dir   string
		Debug bool
	}
}

// LoadConfig reads config.yaml from . or ./config, a .env file if one exists,
// and BLOG_* environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".", "./config")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdowntimeout", "10s")

	v.SetDefault("store.type", "sqlite")
	v.SetDefault("store.path", "blog.db")
	v.SetDefault("store.url", "")
	v.SetDefault("store.table", "articles_kv")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.prefix", "articles/")
	v.SetDefault("store.credentialsfile", "")
	v.SetDefault("store.cachesize", 0)
	v.SetDefault("store.logoperations", false)

	v.SetDefault("site.title", "My Blog")
	v.SetDefault("site.icon", "https://example.com/favicon.ico")

	v.SetDefault("admin.user", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("admin.minpasswordlength", 8)
	v.SetDefault("admin.bcryptcost", 10)

	v.SetDefault("search.concurrency", 8)

	v.SetDefault("importer.sitemapurl", "")
	v.SetDefault("importer.useragent", "kvblog importer v1.0")
	v.SetDefault("importer.alloweddomains", []string{})
	v.SetDefault("importer.maxpages", 0)
	v.SetDefault("importer.timeout", "30m")

	v.SetDefault("log.dir", "")
	v.SetDefault("log.debug", false)
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) GetImportTimeout() time.Duration {
	return parseDuration(c.Importer.Timeout, 30*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}
