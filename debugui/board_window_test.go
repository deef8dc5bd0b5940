package debugui

import (
	"testing"

	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceOverlay(t *testing.T) {
	s := engine.New(engine.WithSeed(5))
	require.True(t, s.Start())
	require.NoError(t, s.ApplyUpgrade(engine.UpgradeGhost, true))
	snap := s.Snapshot()
	require.NotNil(t, snap.Ghost)

	overlay := pieceOverlay(snap, true)
	for _, c := range snap.Piece.Cells() {
		assert.NotEqual(t, ".", overlay[c])
	}
	for _, c := range snap.Ghost.Cells() {
		assert.Equal(t, ".", overlay[c])
	}

	noGhost := pieceOverlay(snap, false)
	assert.Len(t, noGhost, 4)
}

func TestCountFilled(t *testing.T) {
	var g board.Grid
	g[19][0] = board.Occupied(shape.T)
	g[0][9] = board.Occupied(shape.I)
	assert.Equal(t, 2, countFilled(g))
}
