package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	Identity     IdentityConfig     `yaml:"identity"`
	Engagement   EngagementConfig   `yaml:"engagement"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	DocStore     DocStoreConfig     `yaml:"docstore"`
	Cache        CacheConfig        `yaml:"cache"`
	Worker       WorkerConfig       `yaml:"worker"`
}

// ServerConfig holds settings of the worker's ops HTTP server (health probes).
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IdentityConfig holds account settings.
type IdentityConfig struct {
	BcryptCost        int `yaml:"bcrypt_cost"         env:"IDENTITY_BCRYPT_COST"         env-default:"10"`
	MinPasswordLength int `yaml:"min_password_length" env:"IDENTITY_MIN_PASSWORD_LENGTH" env-default:"8"`
}

// EngagementConfig holds like/save toggle and reconciliation settings.
type EngagementConfig struct {
	ExternalCheckTimeout  time.Duration `yaml:"external_check_timeout"  env:"ENGAGEMENT_EXTERNAL_CHECK_TIMEOUT"  env-default:"2s"`
	ReconcileConcurrency  int           `yaml:"reconcile_concurrency"   env:"ENGAGEMENT_RECONCILE_CONCURRENCY"   env-default:"8"`
	ReconcileExternalPage int           `yaml:"reconcile_external_page" env:"ENGAGEMENT_RECONCILE_EXTERNAL_PAGE" env-default:"500"`
}

// SubscriptionConfig holds billing settings.
type SubscriptionConfig struct {
	RenewalPeriod time.Duration `yaml:"renewal_period" env:"SUBSCRIPTION_RENEWAL_PERIOD" env-default:"720h"`
	Currency      string        `yaml:"currency"       env:"SUBSCRIPTION_CURRENCY"       env-default:"USD"`
}

// DocStoreConfig holds MongoDB settings of the document store holding posts
// and externally sourced events.
type DocStoreConfig struct {
	URI                      string        `yaml:"uri"                        env:"DOCSTORE_URI"                        env-default:"mongodb://localhost:27017"`
	Database                 string        `yaml:"database"                   env:"DOCSTORE_DATABASE"                   env-default:"community"`
	PostsCollection          string        `yaml:"posts_collection"           env:"DOCSTORE_POSTS_COLLECTION"           env-default:"posts"`
	ExternalEventsCollection string        `yaml:"external_events_collection" env:"DOCSTORE_EXTERNAL_EVENTS_COLLECTION" env-default:"external_events"`
	ConnectTimeout           time.Duration `yaml:"connect_timeout"            env:"DOCSTORE_CONNECT_TIMEOUT"            env-default:"10s"`
}

// CacheConfig holds Redis settings for the document summary cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"CACHE_ENABLED"  env-default:"true"`
	Addr     string        `yaml:"addr"     env:"CACHE_ADDR"     env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB       int           `yaml:"db"       env:"CACHE_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"10m"`
}

// WorkerConfig holds cron schedules of the background jobs.
type WorkerConfig struct {
	ReconcileSchedule      string        `yaml:"reconcile_schedule"       env:"WORKER_RECONCILE_SCHEDULE"       env-default:"@every 15m"`
	CompleteEventsSchedule string        `yaml:"complete_events_schedule" env:"WORKER_COMPLETE_EVENTS_SCHEDULE" env-default:"@every 1m"`
	DispatchSchedule       string        `yaml:"dispatch_schedule"        env:"WORKER_DISPATCH_SCHEDULE"        env-default:"@every 30s"`
	DispatchBatch          int           `yaml:"dispatch_batch"           env:"WORKER_DISPATCH_BATCH"           env-default:"100"`
	JobTimeout             time.Duration `yaml:"job_timeout"              env:"WORKER_JOB_TIMEOUT"              env-default:"5m"`
}
