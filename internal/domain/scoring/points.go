package scoring

const (
	SlotCount = 6

	PointsExact     = 6
	PointsOneOff    = 4
	PointsTwoOff    = 3
	PointsInTopSix  = 2
	PointsNotInSix  = 0
	BonusAllSix     = 10
	BonusAllSixName = "BonusAll6"
)

// PointsFor returns the points for a driver predicted at predictedIndex who
// finished at actualIndex. actualIndex -1 means outside the top six.
func PointsFor(predictedIndex, actualIndex int) int {
	if actualIndex < 0 {
		return PointsNotInSix
	}

	distance := predictedIndex - actualIndex
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return PointsExact
	case 1:
		return PointsOneOff
	case 2:
		return PointsTwoOff
	default:
		return PointsInTopSix
	}
}
