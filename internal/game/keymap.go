package game

// keyGrid is the physical control layout: each string is a board row, each
// byte a key sliding from the matching cell. The top-left block of a QWERTY
// keyboard under the right hand.
var keyGrid = [4]string{
	"4567",
	"rtyu",
	"fghj",
	"vbnm",
}

// KeymapSide is the largest board dimension the control grid covers.
const KeymapSide = len(keyGrid)

var keyToCell = buildKeymap()

func buildKeymap() map[string][2]int {
	m := make(map[string][2]int, KeymapSide*KeymapSide)
	for y, row := range keyGrid {
		for x := 0; x < len(row); x++ {
			m[string(row[x])] = [2]int{x, y}
		}
	}
	return m
}

// KeyCell resolves a key to its board cell. ok is false for keys outside the
// control grid.
func KeyCell(key string) (x, y int, ok bool) {
	cell, ok := keyToCell[key]
	if !ok {
		return 0, 0, false
	}
	return cell[0], cell[1], true
}

// CellKey is the reverse lookup: the key for a cell, or "" when the cell lies
// outside the control grid.
func CellKey(x, y int) string {
	if x < 0 || x >= KeymapSide || y < 0 || y >= KeymapSide {
		return ""
	}
	return string(keyGrid[y][x])
}

// KeymapCovers reports whether every cell of a width x height board has a key.
func KeymapCovers(width, height int) bool {
	return width <= KeymapSide && height <= KeymapSide
}
