package world

// Direction is a cardinal side of a cell. Its value indexes the per-side
// arrays on Cell (Openings, Sockets).
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// DirectionCount is the number of cardinal directions
const DirectionCount = 4

var (
	directionNames = [DirectionCount]string{"North", "South", "East", "West"}
	opposites      = [DirectionCount]Direction{South, North, West, East}
	// deltas hold (dx, dy); north points towards row 0
	deltas = [DirectionCount][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}
)

// AllDirections returns the directions in index order
func AllDirections() []Direction {
	return []Direction{North, South, East, West}
}

func (d Direction) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return directionNames[d]
}

// IsValid reports whether d is one of the four cardinal directions
func (d Direction) IsValid() bool {
	return d >= 0 && d < DirectionCount
}

// Opposite returns the facing side. Invalid directions are returned unchanged.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return opposites[d]
}

// Delta returns the column and row step taken when moving in d
func (d Direction) Delta() (dx, dy int) {
	if !d.IsValid() {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}
