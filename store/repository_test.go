// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/coordparse/spatial"
)

func setupTestDB(t *testing.T) (*sql.DB, ResultRepository) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	repo := NewResultRepository(db)
	if err := repo.CreateSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db, repo
}

func TestCreateSchema(t *testing.T) {
	db, repo := setupTestDB(t)

	for _, table := range []string{"runs", "parse_results"} {
		var name string

		err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s not created", table)
		assert.Equal(t, table, name)
	}

	// idempotent
	require.NoError(t, repo.CreateSchema())
}

func TestCreateRun(t *testing.T) {
	_, repo := setupTestDB(t)

	run, err := repo.CreateRun("points.txt")
	require.NoError(t, err)

	_, err = uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "points.txt", run.Source)
	assert.WithinDuration(t, time.Now(), run.CreatedAt, time.Minute)

	other, err := repo.CreateRun("points.txt")
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, other.ID)
}

func TestSaveAndListResults(t *testing.T) {
	_, repo := setupTestDB(t)

	run, err := repo.CreateRun("stdin")
	require.NoError(t, err)

	results := []*Result{
		{
			Line:   1,
			Input:  "N400723 W0740723",
			Format: "dms-block-prefixed-hemisphere",
			Point:  &spatial.Point{Lat: 40.12306, Lng: -74.12306},
			H3Cell: 0x872a1072bffffff,
		},
		{
			Line:      2,
			Input:     "91.234, 5.678",
			Error:     "latitude must be within the range of -90 to 90",
			ErrorType: "range",
		},
		{
			Line:   3,
			Input:  "-34.6034 -58.3816",
			Format: "decimal-signed",
			Point:  &spatial.Point{Lat: -34.6034, Lng: -58.3816},
		},
	}

	require.NoError(t, repo.SaveResults(run.ID, results))

	got, err := repo.ListResults(run.ID, 0, 0)
	require.NoError(t, err)

	for _, r := range results {
		assert.Equal(t, run.ID, r.RunID)
	}

	if diff := cmp.Diff(results, got); diff != "" {
		t.Errorf("ListResults() mismatch (-want +got):\n%s", diff)
	}

	page, err := repo.ListResults(run.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2, page[0].Line)
	assert.Nil(t, page[0].Point)

	total, failed, err := repo.CountResults(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, failed)
}

func TestSaveResultsRejectsDuplicateLines(t *testing.T) {
	_, repo := setupTestDB(t)

	run, err := repo.CreateRun("dup")
	require.NoError(t, err)

	err = repo.SaveResults(run.ID, []*Result{
		{Line: 1, Input: "1, 2", Point: &spatial.Point{Lat: 1, Lng: 2}},
		{Line: 1, Input: "3, 4", Point: &spatial.Point{Lat: 3, Lng: 4}},
	})
	require.Error(t, err)

	total, _, err := repo.CountResults(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total, "failed batch must be rolled back")
}

func TestSaveResultsRejectsInvalidPoints(t *testing.T) {
	_, repo := setupTestDB(t)

	run, err := repo.CreateRun("bad")
	require.NoError(t, err)

	err = repo.SaveResults(run.ID, []*Result{
		{Line: 1, Input: "1, 2", Point: &spatial.Point{Lat: 1, Lng: 2}},
		{Line: 2, Input: "x", Point: &spatial.Point{Lat: 91, Lng: 2}},
	})
	require.EqualError(t, err, "line 2: latitude must be within the range of -90 to 90 (got: 91)")

	total, _, err := repo.CountResults(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestSaveResultsEmptyRunID(t *testing.T) {
	_, repo := setupTestDB(t)

	assert.Error(t, repo.SaveResults("", []*Result{{Line: 1, Input: "x"}}))
}

func TestRuns(t *testing.T) {
	_, repo := setupTestDB(t)

	sqlRepo := repo.(*sqlResultRepository)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	sqlRepo.now = func() time.Time { return base }
	first, err := repo.CreateRun("a.txt")
	require.NoError(t, err)

	sqlRepo.now = func() time.Time { return base.Add(time.Hour) }
	second, err := repo.CreateRun("b.txt")
	require.NoError(t, err)

	require.NoError(t, repo.SaveResults(first.ID, []*Result{
		{Line: 1, Input: "1, 2", Point: &spatial.Point{Lat: 1, Lng: 2}},
		{Line: 2, Input: "nope", Error: "no format found for the given coordinate string", ErrorType: "no_matching_format"},
	}))

	runs, err := repo.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, 0, runs[0].Total)

	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, "a.txt", runs[1].Source)
	assert.Equal(t, 2, runs[1].Total)
	assert.Equal(t, 1, runs[1].Failed)
	assert.True(t, base.Equal(runs[1].CreatedAt))
}

func TestOpenInMemory(t *testing.T) {
	repo, err := Open("")
	require.NoError(t, err)

	defer repo.DB().Close()

	_, err = repo.CreateRun("mem")
	require.NoError(t, err)
}
