/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	dserrors "github.com/suparena/docstore/errors"
)

// DynamoDBAPI captures the DynamoDB operations the client issues.
// *dynamodb.Client satisfies it; tests substitute a fake without requiring
// actual AWS infrastructure.
type DynamoDBAPI interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	ExecuteStatement(ctx context.Context, params *dynamodb.ExecuteStatementInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ExecuteStatementOutput, error)
}

// Verify that the real DynamoDB client implements our interface
var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// Database and container names become segments of the physical table name,
// so dots are excluded to keep the "<database>.<container>" form unambiguous.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,120}$`)

// Client is the entry point to the document store. It owns the underlying
// DynamoDB connection handle for its whole lifetime; construct it once,
// thread it through, and release it with Close.
type Client struct {
	api DynamoDBAPI
	log zerolog.Logger

	mu        sync.RWMutex
	databases map[string]*Database
	closed    bool
}

// New constructs a Client from the given configuration.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, dserrors.NewServiceError("New", "failed to load AWS configuration", err)
	}

	api := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewFromAPI(api, cfg.logger()), nil
}

// NewFromAPI constructs a Client around an existing DynamoDB API handle.
// Useful for tests and for callers that manage their own SDK configuration.
func NewFromAPI(api DynamoDBAPI, log zerolog.Logger) *Client {
	return &Client{
		api:       api,
		log:       log,
		databases: make(map[string]*Database),
	}
}

// Close releases the client handle. Operations issued after Close fail with
// a ServiceError. Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.log.Debug().Msg("client closed")
	return nil
}

func (c *Client) guard(op string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return dserrors.NewServiceError(op, "client is closed", nil)
	}
	return nil
}

// EnsureDatabase returns a handle to the named logical database, creating
// nothing remotely: databases are rendered as table-name prefixes. One cheap
// authenticated round trip is made so credential and network problems
// surface here rather than on the first container operation. Calling
// EnsureDatabase twice with the same name returns the same handle.
func (c *Client) EnsureDatabase(ctx context.Context, name string) (*Database, error) {
	if err := c.guard("EnsureDatabase"); err != nil {
		return nil, err
	}
	if !namePattern.MatchString(name) {
		return nil, dserrors.NewValidationError("database", fmt.Sprintf("invalid database name %q", name))
	}

	c.mu.RLock()
	db, ok := c.databases[name]
	c.mu.RUnlock()
	if ok {
		return db, nil
	}

	start := time.Now()
	_, err := c.api.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		return nil, dserrors.NewServiceError("EnsureDatabase", "list tables", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if db, ok := c.databases[name]; ok {
		return db, nil
	}
	db = &Database{
		client:     c,
		name:       name,
		containers: make(map[string]*Container),
	}
	c.databases[name] = db

	c.log.Debug().
		Str("database", name).
		Dur("latency", time.Since(start)).
		Msg("database ensured")

	return db, nil
}
