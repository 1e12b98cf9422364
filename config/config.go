/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/keyvaluestore/errors"
)

// Backend names accepted by KVSTORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendDynamoDB = "dynamodb"
)

// Config holds the settings shared by the command line tools.
type Config struct {
	Backend    string `env:"KVSTORE_BACKEND" envDefault:"bolt"`
	BoltPath   string `env:"KVSTORE_BOLT_PATH" envDefault:"kvstore.db"`
	SchemaPath string `env:"KVSTORE_SCHEMA" envDefault:"schema.yaml"`
	TypeName   string `env:"KVSTORE_TYPE"`

	LogLevel   string `env:"KVSTORE_LOG_LEVEL" envDefault:"info"`
	DevLogging bool   `env:"KVSTORE_DEV_LOGGING" envDefault:"false"`

	AWS AWS
}

// AWS holds the DynamoDB connection settings.
type AWS struct {
	AccessKey string `env:"AWS_ACCESS_KEY"`
	SecretKey string `env:"AWS_SECRET_KEY"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
	Table     string `env:"AWS_DDB_TABLE"`
}

// Load reads envFiles (".env" when none are given) into the process environment and
// parses the environment into a Config. Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings that are missing or inconsistent for the selected backend.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.BoltPath == "" {
			errs = append(errs, errors.NewValidationError("KVSTORE_BOLT_PATH", "required for the bolt backend"))
		}
	case BackendDynamoDB:
		if c.AWS.Table == "" {
			errs = append(errs, errors.NewValidationError("AWS_DDB_TABLE", "required for the dynamodb backend"))
		}
		if c.AWS.AccessKey == "" || c.AWS.SecretKey == "" {
			errs = append(errs, errors.NewValidationError("AWS_ACCESS_KEY", "static credentials are required for the dynamodb backend"))
		}
	default:
		errs = append(errs, errors.NewValidationError("KVSTORE_BACKEND", fmt.Sprintf("unknown backend %q", c.Backend)))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.NewValidationError("KVSTORE_LOG_LEVEL", err.Error()))
	}

	return stderrors.Join(errs...)
}

// Logger builds the zap logger described by the config.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.DevLogging {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
