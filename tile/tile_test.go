package tile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTileEvenDivision(t *testing.T) {
	got := Tile(10, 5)
	require.Equal(t, []Range{{0, 5}, {5, 10}}, got)
}

func TestTileUnevenRemainder(t *testing.T) {
	got := Tile(12, 5)
	require.Equal(t, []Range{{0, 5}, {5, 10}, {10, 12}}, got)
}

func TestTileSmallerThanStep(t *testing.T) {
	got := Tile(3, 5)
	require.Equal(t, []Range{{0, 3}}, got)
}

func TestTileEmpty(t *testing.T) {
	require.Nil(t, Tile(0, 5))
	require.Nil(t, Tile(-1, 5))
	require.Nil(t, Tile(10, 0))
}

func TestIntersectTileWithinOneTile(t *testing.T) {
	got := IntersectTile(2, 4, 5)
	require.Equal(t, []Intersection{
		{Tile: Range{0, 5}, Sub: Range{2, 4}},
	}, got)
}

func TestIntersectTileAcrossTiles(t *testing.T) {
	got := IntersectTile(3, 12, 5)
	require.Equal(t, []Intersection{
		{Tile: Range{0, 5}, Sub: Range{3, 5}},
		{Tile: Range{5, 10}, Sub: Range{0, 5}},
		{Tile: Range{10, 15}, Sub: Range{0, 2}},
	}, got)
}

func TestIntersectTileExactBoundary(t *testing.T) {
	got := IntersectTile(5, 10, 5)
	require.Equal(t, []Intersection{
		{Tile: Range{5, 10}, Sub: Range{0, 5}},
	}, got)
}

func TestIntersectTileEmptyRange(t *testing.T) {
	require.Nil(t, IntersectTile(4, 4, 5))
	require.Nil(t, IntersectTile(6, 4, 5))
}

func TestIntersectTileSubRangesWithinTile(t *testing.T) {
	// Every sub-range should lie inside its own tile's [0, Len()) bounds.
	for _, inter := range IntersectTile(3, 23, 7) {
		require.True(t, inter.Sub.Start >= 0 && inter.Sub.End <= inter.Tile.Len())
	}
}
