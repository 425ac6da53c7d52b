package snapshot

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmworks/osmh/diff"
	"github.com/osmworks/osmh/errors"
	testdb "github.com/osmworks/osmh/internal/testing"
	"github.com/osmworks/osmh/osm"
)

func TestStoreSaveAndLoadExtract(t *testing.T) {
	conn := testdb.CreateMigratedTestDB(t)
	store := NewStore(conn, nil)
	ctx := context.Background()

	objs, err := Extract(diff.NewSliceSource(fixtureHistory()), 130)
	require.NoError(t, err)
	require.Len(t, objs, 3)

	run, err := store.SaveExtract(ctx, 130, "fixture.osh", objs)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, 3, run.ObjectCount)

	loaded, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, osm.Timestamp(130), loaded.ExtractedAt)
	assert.Equal(t, "fixture.osh", loaded.Source)
	assert.Equal(t, 3, loaded.ObjectCount)

	counts, err := store.CountByType(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[osm.TypeNode])
	assert.Equal(t, 1, counts[osm.TypeWay])

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestStoreGetRunNotFound(t *testing.T) {
	conn := testdb.CreateMigratedTestDB(t)
	store := NewStore(conn, nil)

	_, err := store.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStoreSaveExtractRollsBackOnFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO snapshot_runs").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewStore(mockDB, nil)
	_, err = store.SaveExtract(context.Background(), 100, "x.osh", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert snapshot run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreEmptyExtract(t *testing.T) {
	conn := testdb.CreateMigratedTestDB(t)
	store := NewStore(conn, nil)

	run, err := store.SaveExtract(context.Background(), 50, "empty.osh", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, run.ObjectCount)

	counts, err := store.CountByType(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
