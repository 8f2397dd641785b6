/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	dserrors "github.com/suparena/docstore/errors"
)

// RawItem is a stored item in wire form, decodable into a caller-supplied type.
type RawItem map[string]types.AttributeValue

// Decode unmarshals the raw item into out.
func (r RawItem) Decode(out any) error {
	return attributevalue.UnmarshalMap(r, out)
}

// ID returns the item's id attribute, or the empty string when absent.
func (r RawItem) ID() string {
	if attr, ok := r[idAttribute].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

// Page is one bounded batch of query results returned per round trip.
type Page struct {
	Items   []RawItem
	Charge  float64
	Latency time.Duration
	Number  int
}

// IDs returns the ids of the page's items, in result order.
func (p *Page) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ID())
	}
	return ids
}

// QueryItems runs a SQL statement against the container and returns a lazy,
// forward-only iterator over result pages. Nothing is sent until the first
// NextPage call; each page materializes only when requested. The iterator is
// not restartable and not safe for concurrent use. Statements reference the
// container by its TableName; cross-partition statements are aggregated
// transparently by the service.
func (c *Container) QueryItems(queryText string, pageSize int32) *QueryIterator {
	return &QueryIterator{
		container: c,
		text:      queryText,
		pageSize:  pageSize,
	}
}

// QueryIterator yields query result pages on demand.
type QueryIterator struct {
	container *Container
	text      string
	pageSize  int32

	nextToken *string
	done      bool
	pages     int
}

// HasMorePages reports whether another NextPage call can produce a page.
func (it *QueryIterator) HasMorePages() bool {
	return !it.done
}

// NextPage fetches the next page of results. Calling it on an exhausted
// iterator is an error.
func (it *QueryIterator) NextPage(ctx context.Context) (*Page, error) {
	if err := it.container.db.client.guard("QueryItems"); err != nil {
		return nil, err
	}
	if it.done {
		return nil, fmt.Errorf("query iterator: no more pages")
	}

	input := &dynamodb.ExecuteStatementInput{
		Statement:              aws.String(it.text),
		NextToken:              it.nextToken,
		ReturnConsumedCapacity: types.ReturnConsumedCapacityTotal,
	}
	if it.pageSize > 0 {
		input.Limit = aws.Int32(it.pageSize)
	}

	requestID := uuid.NewString()
	start := time.Now()
	out, err := it.container.db.client.api.ExecuteStatement(ctx, input)
	latency := time.Since(start)
	if err != nil {
		it.done = true
		return nil, dserrors.NewServiceError("QueryItems", "execute statement", err)
	}

	it.nextToken = out.NextToken
	if it.nextToken == nil {
		it.done = true
	}
	it.pages++

	items := make([]RawItem, 0, len(out.Items))
	for _, raw := range out.Items {
		items = append(items, RawItem(raw))
	}

	page := &Page{
		Items:   items,
		Charge:  capacityUnits(out.ConsumedCapacity),
		Latency: latency,
		Number:  it.pages,
	}

	it.container.db.client.log.Debug().
		Str("op", "QueryItems").
		Str("request_id", requestID).
		Str("table", it.container.tableName).
		Int("page", page.Number).
		Int("items", len(page.Items)).
		Float64("charge", page.Charge).
		Dur("latency", latency).
		Msg("query page fetched")

	return page, nil
}

// StatementBuilder assembles a SELECT statement against a container with
// properly quoted identifiers and string literals.
type StatementBuilder struct {
	container *Container
	field     string
	values    []string
}

// Select starts a statement against the container.
func (c *Container) Select() *StatementBuilder {
	return &StatementBuilder{container: c}
}

// WhereIn restricts results to items whose field equals one of the values.
func (b *StatementBuilder) WhereIn(field string, values ...string) *StatementBuilder {
	b.field = field
	b.values = values
	return b
}

// Statement renders the SQL text.
func (b *StatementBuilder) Statement() (string, error) {
	if b.field != "" && !attributePattern.MatchString(b.field) {
		return "", dserrors.NewValidationError("field", fmt.Sprintf("invalid field name %q", b.field))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %q", b.container.tableName)

	if b.field != "" {
		quoted := make([]string, 0, len(b.values))
		for _, v := range b.values {
			quoted = append(quoted, "'"+strings.ReplaceAll(v, "'", "''")+"'")
		}
		fmt.Fprintf(&sb, " WHERE %s IN (%s)", b.field, strings.Join(quoted, ", "))
	}

	return sb.String(), nil
}
