package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOddsBoardSnapshotIsACopy(t *testing.T) {
	board := NewOddsBoard()

	snapshot, updatedAt := board.Snapshot()
	assert.Empty(t, snapshot)
	assert.True(t, updatedAt.IsZero())

	board.replace(map[uint64]map[uint64]int64{
		1: {10: 250, 11: 400},
	})

	snapshot, updatedAt = board.Snapshot()
	assert.False(t, updatedAt.IsZero())
	assert.Equal(t, int64(250), snapshot[1][10])

	// Mutating the snapshot must not leak back into the board
	snapshot[1][10] = 999
	fresh, _ := board.Snapshot()
	assert.Equal(t, int64(250), fresh[1][10])
}
