package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSetupAccounts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("indexes created", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		accounts, err := setupAccounts(mt.Coll)
		require.NoError(mt, err)
		assert.NotNil(mt, accounts)
	})

	mt.Run("existing indexes are accepted", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    86,
				Name:    "IndexKeySpecsConflict",
				Message: "An existing index has the same name as the requested index",
			}),
			mtest.CreateSuccessResponse(),
		)

		accounts, err := setupAccounts(mt.Coll)
		require.NoError(mt, err)
		assert.NotNil(mt, accounts)
	})

	mt.Run("unauthorized fails startup", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on aih_db to execute command { createIndexes: \"users\" }",
		}))

		accounts, err := setupAccounts(mt.Coll)
		require.Error(mt, err)
		assert.Nil(mt, accounts)
	})
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 23, cat.Len())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`symptoms:
  - name: Chills
    observation: o
    recommendation: r
    food: {English: e, Hindi: h}
`), 0o600))
	cat, err = loadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chills"}, cat.ListKeys())

	_, err = loadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
