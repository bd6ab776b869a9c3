package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	migs, err := All()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "sql/001_tmdb_cache.sql", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS tmdb_cache")
}
