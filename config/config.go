// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	flushConcurrency = pflag.Int("flush-concurrency", 8, "Max parallel deletions during a storage flush")
	validLogLevels   = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers   = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("auth.user_secret", "auth_user_secret")
	v.BindEnv("auth.admin_secret", "auth_admin_secret")
	v.BindEnv("auth.file_secret", "auth_file_secret")
	v.BindEnv("auth.token_ttl", "auth_token_ttl")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.files_dir", "storage_files_dir")
	v.BindEnv("storage.max_usage", "storage_max_usage")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.allowed_exts", "upload_allowed_exts")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	// The upstream default here used to be effectively multi-decade.
	// Deployments wanting long-lived tokens must opt in explicitly.
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.files_dir", "files")
	v.SetDefault("storage.max_usage", 1024)

	v.SetDefault("upload.max_size", 50)
	v.SetDefault("upload.allowed_exts", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("flush.concurrency", *flushConcurrency)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		zap.L().Warn("No config.toml found, running on environment variables and defaults")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("auth.user_secret") == "" {
		return errors.New("auth.user_secret can't be empty")
	}

	if v.GetString("auth.admin_secret") == "" {
		return errors.New("auth.admin_secret can't be empty")
	}

	if v.GetString("auth.file_secret") == "" {
		return errors.New("auth.file_secret can't be empty")
	}

	ttl, err := time.ParseDuration(v.GetString("auth.token_ttl"))
	if err != nil {
		return fmt.Errorf("invalid auth.token_ttl, %w", err)
	}

	if ttl <= 0 {
		return errors.New("auth.token_ttl must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("aws.access_key_id") == "" {
				return errors.New("access key id can't be empty")
			}
			if v.GetString("aws.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
			if v.GetString("aws.region") == "" {
				return errors.New("region can't be empty")
			}
			if v.GetString("aws.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.files_dir") == "" {
				return errors.New("files dir can't be empty")
			}
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetInt("storage.max_usage") <= 0 {
		return errors.New("max usage must be bigger than 0")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("max upload size must be bigger than 0")
	}

	if v.GetInt("flush.concurrency") <= 0 {
		return errors.New("flush concurrency must be bigger than 0")
	}

	if len(v.GetStringSlice("upload.allowed_exts")) == 0 {
		zap.L().Warn("No upload.allowed_exts specified, any file extension will be accepted")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	v.Set("storage.max_usage", v.GetInt64("storage.max_usage")<<20)
	return nil
}
