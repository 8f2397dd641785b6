/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/suparena/docstore/errors"
)

func TestEnsureDatabase(t *testing.T) {
	fake, client := newTestClient()

	db, err := client.EnsureDatabase(context.Background(), "FamilySampleDB")
	require.NoError(t, err)
	assert.Equal(t, "FamilySampleDB", db.Name())
	assert.Equal(t, 1, fake.listCalls)
}

func TestEnsureDatabaseIdempotent(t *testing.T) {
	fake, client := newTestClient()

	first, err := client.EnsureDatabase(context.Background(), "FamilySampleDB")
	require.NoError(t, err)
	second, err := client.EnsureDatabase(context.Background(), "FamilySampleDB")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, fake.listCalls, "re-ensure should not issue another request")
}

func TestEnsureDatabaseInvalidName(t *testing.T) {
	fake, client := newTestClient()

	for _, name := range []string{"", "bad.name", "white space", "semi;colon"} {
		_, err := client.EnsureDatabase(context.Background(), name)
		assert.True(t, dserrors.IsValidation(err), "name %q should be rejected", name)
	}
	assert.Equal(t, 0, fake.listCalls, "validation failures should not reach the service")
}

func TestEnsureDatabaseServiceError(t *testing.T) {
	fake, client := newTestClient()
	fake.listErr = errors.New("connection refused")

	_, err := client.EnsureDatabase(context.Background(), "FamilySampleDB")
	require.Error(t, err)
	assert.True(t, dserrors.IsService(err))
	assert.ErrorContains(t, err, "connection refused")
}

func TestClosedClient(t *testing.T) {
	fake, client := newTestClient()

	db, err := client.EnsureDatabase(context.Background(), "FamilySampleDB")
	require.NoError(t, err)
	container, err := db.EnsureContainer(context.Background(), "Families", "/lastName", 400)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close(), "close should be idempotent")

	_, err = client.EnsureDatabase(context.Background(), "OtherDB")
	assert.True(t, dserrors.IsService(err))

	_, err = db.EnsureContainer(context.Background(), "Other", "/lastName", 400)
	assert.True(t, dserrors.IsService(err))

	_, err = container.ReadItem(context.Background(), "AndersenFamily", "Andersen", nil)
	assert.True(t, dserrors.IsService(err))

	calls := fake.getCalls
	report := container.ReadEach(context.Background(), []ItemKey{{ID: "x", PartitionKey: "y"}})
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, calls, fake.getCalls, "closed client should not reach the service")
}
