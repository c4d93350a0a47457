package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBinding maps a config key to the environment variables that may set it,
// in priority order.
type envBinding struct {
	key  string
	envs []string
}

var envBindings = []envBinding{
	{"endpoint_addr_http", []string{"FITLOG_HTTP_ADDR"}},
	{"endpoint_addr_grpc", []string{"FITLOG_GRPC_ADDR"}},
	{"database_dsn", []string{"FITLOG_DATABASE_DSN", "DATABASE_URL"}},
	{"secret_key", []string{"FITLOG_SECRET_KEY"}},
	{"access_token_validity_duration", []string{"FITLOG_ACCESS_TOKEN_TTL"}},
	{"s3_root_user", []string{"FITLOG_S3_USER"}},
	{"s3_root_password", []string{"FITLOG_S3_PASSWORD"}},
	{"s3_bucket", []string{"LOGS_PHOTO_BUCKET_NAME"}},
	{"s3_region", []string{"FITLOG_S3_REGION"}},
	{"s3_base_endpoint", []string{"FITLOG_S3_ENDPOINT"}},
	{"stats_cache_ttl", []string{"FITLOG_STATS_CACHE_TTL"}},
	{"log_level", []string{"FITLOG_LOG_LEVEL"}},
}

// dotEnvFiles is a seam for tests.
var dotEnvFiles = []string{".env"}

// loadDotEnv copies variables from .env into the process environment without
// overriding ones that are already set. A missing file is not an error.
func loadDotEnv() {
	for _, name := range dotEnvFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}
}

// parseEnv overlays values taken from environment variables.
func parseEnv(config *Config) {
	v := viper.New()
	for _, b := range envBindings {
		if err := v.BindEnv(append([]string{b.key}, b.envs...)...); err != nil {
			panic(err)
		}
	}

	fields := map[string]*string{
		"endpoint_addr_http": &config.EndpointAddrHTTP,
		"endpoint_addr_grpc": &config.EndpointAddrGRPC,
		"database_dsn":       &config.DatabaseDSN,
		"secret_key":         &config.SecretKey,
		"s3_root_user":       &config.S3RootUser,
		"s3_root_password":   &config.S3RootPassword,
		"s3_bucket":          &config.S3Bucket,
		"s3_region":          &config.S3Region,
		"s3_base_endpoint":   &config.S3BaseEndpoint,
		"log_level":          &config.LogLevel,
	}
	for key, dst := range fields {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if v.IsSet("access_token_validity_duration") {
		config.AccessTokenValidityDuration = v.GetDuration("access_token_validity_duration")
	}
	if v.IsSet("stats_cache_ttl") {
		config.StatsCacheTTL = v.GetDuration("stats_cache_ttl")
	}
}
