package plate

import (
	"math"

	"setlstat/domain/core"
)

// A SETL plate is a 5x5 grid with spots numbered 1 to 25:
//
//	 1  2  3  4  5
//	 6  7  8  9 10
//	11 12 13 14 15
//	16 17 18 19 20
//	21 22 23 24 25
const (
	// GridSize is the number of rows (and columns) of a SETL plate.
	GridSize = 5
	// SpotCount is the total number of spots on a SETL plate.
	SpotCount = 25
)

// rowGroups and colGroups are the fixed spot-number groupings that define
// the plate layout. Row/column numbers are the 1-based group indexes.
var rowGroups = [GridSize][GridSize]int{
	{1, 2, 3, 4, 5},
	{6, 7, 8, 9, 10},
	{11, 12, 13, 14, 15},
	{16, 17, 18, 19, 20},
	{21, 22, 23, 24, 25},
}

var colGroups = [GridSize][GridSize]int{
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	{5, 10, 15, 20, 25},
}

// Coordinate is the (row, col) position of a spot on the plate, both in 1..5.
type Coordinate struct {
	Row int
	Col int
}

// SpotCoordinate returns the (row, col) coordinate for a spot number.
// The mapping is a bijection over the 25 valid spot numbers. Spot numbers
// outside 1..25 are a caller error.
func SpotCoordinate(spotNum int) (Coordinate, error) {
	if spotNum < 1 || spotNum > SpotCount {
		return Coordinate{}, core.NewOutOfRangeError("spot number", spotNum, 1, SpotCount)
	}

	var coord Coordinate
	for i, row := range rowGroups {
		for _, s := range row {
			if s == spotNum {
				coord.Row = i + 1
				break
			}
		}
	}
	for i, col := range colGroups {
		for _, s := range col {
			if s == spotNum {
				coord.Col = i + 1
				break
			}
		}
	}
	return coord, nil
}

// PositionDifference returns the horizontal and vertical delta (h, v)
// between two spots. The result is symmetric in its arguments.
func PositionDifference(s1, s2 int) (h, v int, err error) {
	c1, err := SpotCoordinate(s1)
	if err != nil {
		return 0, 0, err
	}
	c2, err := SpotCoordinate(s2)
	if err != nil {
		return 0, 0, err
	}

	h = c1.Col - c2.Col
	if h < 0 {
		h = -h
	}
	v = c1.Row - c2.Row
	if v < 0 {
		v = -v
	}
	return h, v, nil
}

// Distance returns the Euclidean distance for a (h, v) position difference,
// rounded to two decimals. The rounding is a deliberate precision cap: the
// downstream frequency buckets and probability tables key off these exact
// rounded values.
func Distance(h, v int) float64 {
	d := math.Sqrt(float64(h*h + v*v))
	return math.Round(d*100) / 100
}

// SpotDistance returns the rounded distance between two spot numbers.
func SpotDistance(s1, s2 int) (float64, error) {
	h, v, err := PositionDifference(s1, s2)
	if err != nil {
		return 0, err
	}
	return Distance(h, v), nil
}
