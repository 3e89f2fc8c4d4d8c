package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/spankks/scheduling-api/internal/domain"
	"github.com/spankks/scheduling-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateNextIDFormatsAndAdvances(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	id, err := repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, "CLI001", id)

	id, err = repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, "CLI002", id)
}

func TestAllocateNextIDSequencesAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	clientID, err := repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	jobID, err := repo.AllocateNextID(ctx, domain.SequenceJob)
	require.NoError(t, err)
	jobID2, err := repo.AllocateNextID(ctx, domain.SequenceJob)
	require.NoError(t, err)

	assert.Equal(t, "CLI001", clientID)
	assert.Equal(t, "JOB001", jobID)
	assert.Equal(t, "JOB002", jobID2)
}

func TestAllocateNextIDNeverRepeats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 1; i <= 25; i++ {
		id, err := repo.AllocateNextID(ctx, domain.SequenceJob)
		require.NoError(t, err)
		assert.False(t, seen[id], "identifier %s allocated twice", id)
		assert.Equal(t, fmt.Sprintf("JOB%03d", i), id)
		seen[id] = true
	}
}

func TestAllocateNextIDPaddingGrowsPastThreeDigits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	// Seed the counter just below the padding boundary
	seq := domain.IDSequence{Name: domain.SequenceClient, NextID: 999, Prefix: "CLI"}
	require.NoError(t, db.Create(&seq).Error)

	id, err := repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, "CLI999", id)

	id, err = repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, "CLI1000", id)
}

func TestCurrentDoesNotAdvance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()

	seq, err := repo.Current(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, 1, seq.NextID)

	seq, err = repo.Current(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, 1, seq.NextID)

	id, err := repo.AllocateNextID(ctx, domain.SequenceClient)
	require.NoError(t, err)
	assert.Equal(t, "CLI001", id)
}
