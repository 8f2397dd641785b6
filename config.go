/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	dserrors "github.com/suparena/docstore/errors"
)

// Config carries the account settings the client needs to reach the store.
// Endpoint and credentials are consumed as opaque strings; how they were
// provisioned is the caller's concern.
type Config struct {
	// Region is the AWS region hosting the store.
	Region string

	// AccessKey and SecretKey are static credentials. When AccessKey is
	// empty the default AWS credential chain is used instead.
	AccessKey string
	SecretKey string

	// Endpoint optionally overrides the service endpoint, e.g. a local
	// DynamoDB emulator at "http://localhost:8000".
	Endpoint string

	// Logger receives structured request logs. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

func (c Config) validate() error {
	if c.Region == "" {
		return dserrors.NewValidationError("region", "region is required")
	}
	return nil
}

func (c Config) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return zerolog.Nop()
}

// ConfigFromEnv builds a Config from environment variables, loading a .env
// file first when one is present.
//
//	AWS_REGION         region (required)
//	AWS_ACCESS_KEY     static access key (optional)
//	AWS_SECRET_KEY     static secret key (optional)
//	DOCSTORE_ENDPOINT  endpoint override (optional)
func ConfigFromEnv() (Config, error) {
	// Absence of a .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Endpoint:  os.Getenv("DOCSTORE_ENDPOINT"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Manifest declares the database and containers a program expects to exist.
// Programs feed it to EnsureDatabase/EnsureContainer at startup instead of
// burying names and throughput values in code.
type Manifest struct {
	Database   string          `yaml:"database"`
	Containers []ContainerSpec `yaml:"containers"`
}

// ContainerSpec declares a single container within a manifest.
type ContainerSpec struct {
	Name             string `yaml:"name"`
	PartitionKeyPath string `yaml:"partitionKeyPath"`
	ThroughputUnits  int32  `yaml:"throughputUnits"`
}

// LoadManifest reads and validates a YAML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if m.Database == "" {
		return nil, dserrors.NewValidationError("database", "manifest must name a database")
	}
	if len(m.Containers) == 0 {
		return nil, dserrors.NewValidationError("containers", "manifest must declare at least one container")
	}
	for _, spec := range m.Containers {
		if spec.Name == "" {
			return nil, dserrors.NewValidationError("containers.name", "container name is required")
		}
		if spec.PartitionKeyPath == "" {
			return nil, dserrors.NewValidationError("containers.partitionKeyPath", "partition key path is required")
		}
	}
	return &m, nil
}
