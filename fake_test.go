/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB API, sufficient for
// the request shapes the client issues.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]*fakeTable

	listCalls     int
	describeCalls int
	createCalls   int
	putCalls      int
	getCalls      int
	execCalls     int

	listErr error
	putErr  error
	getErr  error
	execErr error
}

type fakeTable struct {
	pkAttr string
	items  map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string]*fakeTable)}
}

func itemKey(pk, id string) string {
	return pk + "\x00" + id
}

func (f *fakeDynamo) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return &dynamodb.ListTablesOutput{TableNames: names}, nil
}

func (f *fakeDynamo) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describeCalls++
	table, ok := f.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(table.pkAttr), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String(idAttribute), KeyType: types.KeyTypeRange},
			},
		},
	}, nil
}

func (f *fakeDynamo) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	name := aws.ToString(params.TableName)
	if _, ok := f.tables[name]; ok {
		return nil, &types.ResourceInUseException{Message: aws.String("table exists")}
	}
	var pkAttr string
	for _, elem := range params.KeySchema {
		if elem.KeyType == types.KeyTypeHash {
			pkAttr = aws.ToString(elem.AttributeName)
		}
	}
	f.tables[name] = &fakeTable{
		pkAttr: pkAttr,
		items:  make(map[string]map[string]types.AttributeValue),
	}
	return &dynamodb.CreateTableOutput{}, nil
}

// addTable seeds a table directly, bypassing CreateTable call counting.
func (f *fakeDynamo) addTable(name, pkAttr string) *fakeTable {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := &fakeTable{
		pkAttr: pkAttr,
		items:  make(map[string]map[string]types.AttributeValue),
	}
	f.tables[name] = table
	return table
}

func stringAttr(av map[string]types.AttributeValue, name string) string {
	if attr, ok := av[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

func consumed(table string, units float64) *types.ConsumedCapacity {
	return &types.ConsumedCapacity{
		TableName:     aws.String(table),
		CapacityUnits: aws.Float64(units),
	}
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.putErr != nil {
		return nil, f.putErr
	}
	name := aws.ToString(params.TableName)
	table, ok := f.tables[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	key := itemKey(stringAttr(params.Item, table.pkAttr), stringAttr(params.Item, idAttribute))
	if params.ConditionExpression != nil {
		if _, exists := table.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
		}
	}
	table.items[key] = params.Item
	return &dynamodb.PutItemOutput{ConsumedCapacity: consumed(name, 1.0)}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	name := aws.ToString(params.TableName)
	table, ok := f.tables[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	key := itemKey(stringAttr(params.Key, table.pkAttr), stringAttr(params.Key, idAttribute))
	item, ok := table.items[key]
	if !ok {
		return &dynamodb.GetItemOutput{ConsumedCapacity: consumed(name, 0.5)}, nil
	}
	return &dynamodb.GetItemOutput{Item: item, ConsumedCapacity: consumed(name, 0.5)}, nil
}

var (
	statementFromPattern = regexp.MustCompile(`FROM "([^"]+)"`)
	statementInPattern   = regexp.MustCompile(`(\w+) IN \((.*)\)`)
)

// ExecuteStatement understands the SELECT ... WHERE field IN (...) shape the
// tests issue, with offset-based page tokens.
func (f *fakeDynamo) ExecuteStatement(ctx context.Context, params *dynamodb.ExecuteStatementInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ExecuteStatementOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execCalls++
	if f.execErr != nil {
		return nil, f.execErr
	}

	statement := aws.ToString(params.Statement)
	fromMatch := statementFromPattern.FindStringSubmatch(statement)
	if fromMatch == nil {
		return nil, &types.ResourceNotFoundException{Message: aws.String("bad statement")}
	}
	table, ok := f.tables[fromMatch[1]]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}

	var field string
	wanted := map[string]bool{}
	if inMatch := statementInPattern.FindStringSubmatch(statement); inMatch != nil {
		field = inMatch[1]
		for _, quoted := range strings.Split(inMatch[2], ",") {
			wanted[strings.Trim(strings.TrimSpace(quoted), "'")] = true
		}
	}

	keys := make([]string, 0, len(table.items))
	for key := range table.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var matched []map[string]types.AttributeValue
	for _, key := range keys {
		item := table.items[key]
		if field == "" || wanted[stringAttr(item, field)] {
			matched = append(matched, item)
		}
	}

	offset := 0
	if params.NextToken != nil {
		offset, _ = strconv.Atoi(aws.ToString(params.NextToken))
	}
	end := len(matched)
	if params.Limit != nil && offset+int(*params.Limit) < end {
		end = offset + int(*params.Limit)
	}

	out := &dynamodb.ExecuteStatementOutput{
		Items:            matched[offset:end],
		ConsumedCapacity: consumed(fromMatch[1], 2.5),
	}
	if end < len(matched) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

// newTestClient returns a client wired to a fresh fake.
func newTestClient() (*fakeDynamo, *Client) {
	fake := newFakeDynamo()
	return fake, NewFromAPI(fake, zerolog.Nop())
}
