package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetmerge/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "")
	t.Setenv("MONGO_COLLECTION", "")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "")
	t.Setenv("GRADUATION_YEAR_WINDOW", "")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", config.Mongo.URI)
	assert.Equal(t, "projettech", config.Mongo.Database)
	assert.Equal(t, "etudiants", config.Mongo.Collection)
	assert.Equal(t, 10*time.Second, config.Mongo.ConnectTimeout)
	assert.Equal(t, 30, config.Ingest.GraduationYearWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("MONGO_DB", "staging")
	t.Setenv("MONGO_COLLECTION", "students")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("GRADUATION_YEAR_WINDOW", "5")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", config.Mongo.Database)
	assert.Equal(t, "students", config.Mongo.Collection)
	assert.Equal(t, 3*time.Second, config.Mongo.ConnectTimeout)
	assert.Equal(t, 5, config.Ingest.GraduationYearWindow)
}

func TestLoad_MissingURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_InvalidWindow(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("GRADUATION_YEAR_WINDOW", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
