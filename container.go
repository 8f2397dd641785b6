/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	dserrors "github.com/suparena/docstore/errors"
)

// Container is a handle to a named collection of items sharing a partition
// key path. Obtain one through Database.EnsureContainer.
type Container struct {
	db           *Database
	name         string
	tableName    string
	partitionKey string
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// TableName returns the physical table name backing this container. Query
// statements reference it directly.
func (c *Container) TableName() string {
	return c.tableName
}

// PartitionKeyPath returns the container's partition key path, e.g. "/lastName".
func (c *Container) PartitionKeyPath() string {
	return "/" + c.partitionKey
}

// ItemResult reports the observational outcome of a single request: the
// abstract charge the service billed for it and the client-side latency.
type ItemResult struct {
	Charge    float64
	Latency   time.Duration
	RequestID string
}

type writeOptions struct {
	createOnly bool
}

// WriteOption adjusts the behavior of a single write.
type WriteOption func(*writeOptions)

// WithCreateOnly makes the write fail with a ConflictError when an item with
// the same id already exists in the partition, instead of overwriting it.
func WithCreateOnly() WriteOption {
	return func(o *writeOptions) {
		o.createOnly = true
	}
}

// UpsertItem creates or overwrites item. partitionKeyValue must equal the
// value of the item's designated partition key field; the mismatch is caught
// client-side before any request is sent.
func (c *Container) UpsertItem(ctx context.Context, item any, partitionKeyValue string, options ...WriteOption) (*ItemResult, error) {
	if err := c.db.client.guard("UpsertItem"); err != nil {
		return nil, err
	}

	var opts writeOptions
	for _, opt := range options {
		opt(&opts)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, dserrors.NewValidationError("item", fmt.Sprintf("failed to marshal item: %v", err))
	}
	id, err := c.checkItemKeys(av, partitionKeyValue)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.PutItemInput{
		TableName:              aws.String(c.tableName),
		Item:                   av,
		ReturnConsumedCapacity: types.ReturnConsumedCapacityTotal,
	}
	if opts.createOnly {
		input.ConditionExpression = aws.String("attribute_not_exists(#id)")
		input.ExpressionAttributeNames = map[string]string{"#id": idAttribute}
	}

	requestID := uuid.NewString()
	start := time.Now()
	out, err := c.db.client.api.PutItem(ctx, input)
	latency := time.Since(start)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, dserrors.NewConflictError(c.name, id)
		}
		return nil, dserrors.NewServiceError("UpsertItem", "put item "+id, err)
	}

	c.logRequest("UpsertItem", requestID, id, capacityUnits(out.ConsumedCapacity), latency)

	return &ItemResult{
		Charge:    capacityUnits(out.ConsumedCapacity),
		Latency:   latency,
		RequestID: requestID,
	}, nil
}

// ReadItem performs a point lookup by (id, partition key value) and
// unmarshals the stored item into out when out is non-nil. A miss fails with
// a NotFoundError.
func (c *Container) ReadItem(ctx context.Context, id, partitionKeyValue string, out any) (*ItemResult, error) {
	if err := c.db.client.guard("ReadItem"); err != nil {
		return nil, err
	}

	raw, res, err := c.readRaw(ctx, id, partitionKeyValue)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := raw.Decode(out); err != nil {
			return nil, dserrors.NewValidationError("out", fmt.Sprintf("failed to unmarshal item %q: %v", id, err))
		}
	}
	return res, nil
}

// readRaw is the shared point-read path used by ReadItem and ReadEach.
func (c *Container) readRaw(ctx context.Context, id, partitionKeyValue string) (RawItem, *ItemResult, error) {
	if id == "" {
		return nil, nil, dserrors.NewValidationError("id", "id is required")
	}
	if partitionKeyValue == "" {
		return nil, nil, dserrors.NewValidationError("partitionKeyValue", "partition key value is required")
	}

	requestID := uuid.NewString()
	start := time.Now()
	out, err := c.db.client.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			c.partitionKey: &types.AttributeValueMemberS{Value: partitionKeyValue},
			idAttribute:    &types.AttributeValueMemberS{Value: id},
		},
		ReturnConsumedCapacity: types.ReturnConsumedCapacityTotal,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, nil, dserrors.NewServiceError("ReadItem", "get item "+id, err)
	}
	if out.Item == nil {
		return nil, nil, dserrors.NewNotFoundError(c.name, id, partitionKeyValue)
	}

	c.logRequest("ReadItem", requestID, id, capacityUnits(out.ConsumedCapacity), latency)

	return RawItem(out.Item), &ItemResult{
		Charge:    capacityUnits(out.ConsumedCapacity),
		Latency:   latency,
		RequestID: requestID,
	}, nil
}

// checkItemKeys validates the marshaled item's key attributes and returns
// the item id.
func (c *Container) checkItemKeys(av map[string]types.AttributeValue, partitionKeyValue string) (string, error) {
	if partitionKeyValue == "" {
		return "", dserrors.NewValidationError(c.partitionKey, "partition key value is required")
	}

	idAttr, ok := av[idAttribute].(*types.AttributeValueMemberS)
	if !ok || idAttr.Value == "" {
		return "", dserrors.NewValidationError(idAttribute, "item must carry a non-empty string id")
	}

	pkAttr, ok := av[c.partitionKey].(*types.AttributeValueMemberS)
	if !ok {
		return "", dserrors.NewValidationError(c.partitionKey,
			fmt.Sprintf("item must carry a string value at partition key path %q", c.PartitionKeyPath()))
	}
	if pkAttr.Value != partitionKeyValue {
		return "", dserrors.NewValidationError(c.partitionKey,
			fmt.Sprintf("partition key value %q does not match item field value %q", partitionKeyValue, pkAttr.Value))
	}

	return idAttr.Value, nil
}

func (c *Container) logRequest(op, requestID, id string, charge float64, latency time.Duration) {
	c.db.client.log.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Str("table", c.tableName).
		Str("id", id).
		Float64("charge", charge).
		Dur("latency", latency).
		Msg("request completed")
}

func capacityUnits(cc *types.ConsumedCapacity) float64 {
	if cc == nil || cc.CapacityUnits == nil {
		return 0
	}
	return *cc.CapacityUnits
}
