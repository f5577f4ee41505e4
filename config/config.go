// api/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Database      DatabaseConfiguration
	Neo4j         Neo4jConfiguration
	Redis         RedisConfiguration
	Cache         CacheConfiguration
	Auth          AuthConfiguration
	Audit         AuditConfiguration
	Elasticsearch ElasticsearchConfiguration
	RateLimit     RateLimitConfiguration
	Log           LogConfiguration
	Seed          SeedConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port           string
	Mode           string
	Debug          bool
	AllowedOrigins []string
}

// DatabaseConfiguration selects the relational record store
type DatabaseConfiguration struct {
	Driver string
	DSN    string
}

// Neo4jConfiguration stores the graph store used for staff assignments.
// An empty URI disables the feature.
type Neo4jConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr          string
	Password      string
	DB            int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	PoolSize      int
	EncryptionKey string
}

// CacheConfiguration controls the cache-aside layer
type CacheConfiguration struct {
	Backend         string
	DefaultTTL      time.Duration
	AuthTTL         time.Duration
	TrustedTTL      time.Duration
	OpTimeout       time.Duration
	Coalesce        bool
	FetchTimeout    time.Duration
	MemorySize      int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// AuthConfiguration controls token issuance and login throttling
type AuthConfiguration struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	MaxAttempts   int
	LockoutWindow time.Duration
	BcryptCost    int
	MaxSessions   int
}

// AuditConfiguration selects where audit records are written
type AuditConfiguration struct {
	Sink string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL   string
	Index string
}

type RateLimitConfiguration struct {
	Requests int
	Per      time.Duration
}

type LogConfiguration struct {
	Level string
	Dir   string
}

// SeedConfiguration holds the administrator created on an empty user table
type SeedConfiguration struct {
	AdminEmail    string
	AdminPassword string
	AdminRUT      string
}

var config *Configuration

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.debug", false)
	viper.SetDefault("server.allowedOrigins", []string{})

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "intervene.db")

	viper.SetDefault("neo4j.uri", "")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("neo4j.database", "neo4j")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.encryptionKey", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dialTimeout", "5s")
	viper.SetDefault("redis.readTimeout", "3s")
	viper.SetDefault("redis.writeTimeout", "3s")
	viper.SetDefault("redis.poolSize", 10)

	viper.SetDefault("cache.backend", "redis")
	viper.SetDefault("cache.defaultTTL", "1h")
	viper.SetDefault("cache.authTTL", "5m")
	viper.SetDefault("cache.trustedTTL", "1h")
	viper.SetDefault("cache.opTimeout", "250ms")
	viper.SetDefault("cache.coalesce", false)
	viper.SetDefault("cache.fetchTimeout", "10s")
	viper.SetDefault("cache.memorySize", 10000)
	viper.SetDefault("cache.breakerFailures", 5)
	viper.SetDefault("cache.breakerCooldown", "30s")

	viper.SetDefault("auth.accessSecret", "")
	viper.SetDefault("auth.refreshSecret", "")
	viper.SetDefault("auth.accessTTL", "1h")
	viper.SetDefault("auth.refreshTTL", "168h")
	viper.SetDefault("auth.maxAttempts", 5)
	viper.SetDefault("auth.lockoutWindow", "15m")
	viper.SetDefault("auth.bcryptCost", 10)
	viper.SetDefault("auth.maxSessions", 10)

	viper.SetDefault("audit.sink", "database")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.index", "audit-logs")

	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.per", "1m")

	viper.SetDefault("seed.adminEmail", "")
	viper.SetDefault("seed.adminPassword", "")
	viper.SetDefault("seed.adminRut", "11111111-1")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.dir", "logging")
}

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaults()

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	return load()
}

func load() error {
	var c Configuration
	if err := viper.Unmarshal(&c); err != nil {
		return err
	}
	config = &c
	return nil
}

// Watch reloads the configuration whenever the config file changes and
// hands the new values to onChange.
func Watch(onChange func(*Configuration)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		if err := load(); err != nil {
			log.Printf("Failed to reload config from %s: %v", e.Name, err)
			return
		}
		onChange(config)
	})
	viper.WatchConfig()
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
