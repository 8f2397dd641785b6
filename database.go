/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dserrors "github.com/suparena/docstore/errors"
)

const (
	// idAttribute is the fixed range key of every container table. Point
	// reads address items by (partition key value, id).
	idAttribute = "id"

	// maxThroughputUnits caps the provisioned capacity a single container
	// may request.
	maxThroughputUnits = 40000

	tableWaitTimeout = 3 * time.Minute
)

var attributePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,254}$`)

// Database is a named logical namespace for containers. It is rendered as a
// table-name prefix; ensuring a database performs no remote mutation.
type Database struct {
	client *Client
	name   string

	containers map[string]*Container // guarded by client.mu
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// EnsureContainer returns a handle to the named container, creating its
// backing table when absent. The call is idempotent: re-ensuring an existing
// container with identical parameters performs no second create, while a
// conflicting partition key path or key schema fails with a ValidationError.
func (d *Database) EnsureContainer(ctx context.Context, name, partitionKeyPath string, throughputUnits int32) (*Container, error) {
	if err := d.client.guard("EnsureContainer"); err != nil {
		return nil, err
	}
	if !namePattern.MatchString(name) {
		return nil, dserrors.NewValidationError("container", fmt.Sprintf("invalid container name %q", name))
	}
	pkAttr, err := partitionKeyAttribute(partitionKeyPath)
	if err != nil {
		return nil, err
	}
	if throughputUnits <= 0 || throughputUnits > maxThroughputUnits {
		return nil, dserrors.NewValidationError("throughputUnits",
			fmt.Sprintf("must be in range 1..%d, got %d", maxThroughputUnits, throughputUnits))
	}

	d.client.mu.RLock()
	cached, ok := d.containers[name]
	d.client.mu.RUnlock()
	if ok {
		if cached.partitionKey != pkAttr {
			return nil, dserrors.NewValidationError("partitionKeyPath",
				fmt.Sprintf("container %q already ensured with partition key path %q", name, cached.PartitionKeyPath()))
		}
		return cached, nil
	}

	tableName := d.name + "." + name

	start := time.Now()
	created, err := d.ensureTable(ctx, tableName, pkAttr, throughputUnits)
	if err != nil {
		return nil, err
	}

	container := &Container{
		db:           d,
		name:         name,
		tableName:    tableName,
		partitionKey: pkAttr,
	}

	d.client.mu.Lock()
	if existing, ok := d.containers[name]; ok {
		container = existing
	} else {
		d.containers[name] = container
	}
	d.client.mu.Unlock()

	d.client.log.Debug().
		Str("container", name).
		Str("table", tableName).
		Bool("created", created).
		Dur("latency", time.Since(start)).
		Msg("container ensured")

	return container, nil
}

// ensureTable brings the backing table to ACTIVE, creating it when absent.
// It reports whether this call issued the create.
func (d *Database) ensureTable(ctx context.Context, tableName, pkAttr string, throughputUnits int32) (bool, error) {
	out, err := d.client.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	switch {
	case err == nil:
		if err := verifyKeySchema(tableName, pkAttr, out.Table); err != nil {
			return false, err
		}
		if out.Table.TableStatus == types.TableStatusActive {
			return false, nil
		}
		return false, d.waitActive(ctx, tableName)

	case isNotFoundException(err):
		// fall through to create

	default:
		return false, dserrors.NewServiceError("EnsureContainer", "describe table "+tableName, err)
	}

	_, err = d.client.api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(pkAttr), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(idAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(pkAttr), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(idAttribute), KeyType: types.KeyTypeRange},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(int64(throughputUnits)),
			WriteCapacityUnits: aws.Int64(int64(throughputUnits)),
		},
	})
	if err != nil {
		// A concurrent ensure may have won the race; that still satisfies us.
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return false, dserrors.NewServiceError("EnsureContainer", "create table "+tableName, err)
		}
		return false, d.waitActive(ctx, tableName)
	}

	return true, d.waitActive(ctx, tableName)
}

func (d *Database) waitActive(ctx context.Context, tableName string) error {
	waiter := dynamodb.NewTableExistsWaiter(d.client.api)
	err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}, tableWaitTimeout)
	if err != nil {
		return dserrors.NewServiceError("EnsureContainer", "wait for table "+tableName, err)
	}
	return nil
}

// partitionKeyAttribute resolves a Cosmos-style "/field" path to the
// top-level attribute it names.
func partitionKeyAttribute(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", dserrors.NewValidationError("partitionKeyPath",
			fmt.Sprintf("must start with '/', got %q", path))
	}
	attr := strings.TrimPrefix(path, "/")
	if strings.Contains(attr, "/") {
		return "", dserrors.NewValidationError("partitionKeyPath",
			fmt.Sprintf("must name a top-level field, got %q", path))
	}
	if !attributePattern.MatchString(attr) {
		return "", dserrors.NewValidationError("partitionKeyPath",
			fmt.Sprintf("invalid attribute name %q", attr))
	}
	if attr == idAttribute {
		return "", dserrors.NewValidationError("partitionKeyPath",
			fmt.Sprintf("%q is reserved for the item id", idAttribute))
	}
	return attr, nil
}

func verifyKeySchema(tableName, pkAttr string, table *types.TableDescription) error {
	var hash, rng string
	for _, elem := range table.KeySchema {
		switch elem.KeyType {
		case types.KeyTypeHash:
			hash = aws.ToString(elem.AttributeName)
		case types.KeyTypeRange:
			rng = aws.ToString(elem.AttributeName)
		}
	}
	if hash != pkAttr || rng != idAttribute {
		return dserrors.NewValidationError("partitionKeyPath",
			fmt.Sprintf("table %q exists with key schema (%s, %s), want (%s, %s)",
				tableName, hash, rng, pkAttr, idAttribute))
	}
	return nil
}

func isNotFoundException(err error) bool {
	var nf *types.ResourceNotFoundException
	return errors.As(err, &nf)
}
