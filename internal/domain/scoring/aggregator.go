package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/prix-six/internal/domain/driver"
	"github.com/valyala/bytebufferpool"
)

var ErrMalformedPredictionOrResult = errors.New("malformed prediction or result")

// Entry is one line of a score breakdown. Slot is 1..6 for driver slots and 0
// for the bonus line.
type Entry struct {
	Slot        int
	DriverID    string
	Label       string
	ActualIndex int
	Points      int
	Bonus       bool
}

type Breakdown []Entry

// String renders the stored breakdown text, e.g. "Norris+6, Piastri+4".
func (b Breakdown) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for idx, item := range b {
		if idx > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(item.Label)
		_ = buf.WriteByte('+')
		_, _ = buf.WriteString(strconv.Itoa(item.Points))
	}
	return buf.String()
}

type Outcome struct {
	Total        int
	CorrectCount int
	Breakdown    Breakdown
}

func (o Outcome) HasBonus() bool {
	return o.CorrectCount == SlotCount
}

// Calculator scores predictions against results using a driver table for
// breakdown labels.
type Calculator struct {
	drivers *driver.Table
}

func NewCalculator(drivers *driver.Table) *Calculator {
	if drivers == nil {
		drivers = driver.Default()
	}
	return &Calculator{drivers: drivers}
}

func (c *Calculator) Drivers() *driver.Table {
	return c.drivers
}

// Score is Calculator.Score with the default driver table.
func Score(order, topSix []string) (Outcome, error) {
	return NewCalculator(driver.Default()).Score(order, topSix)
}

func (c *Calculator) Score(order, topSix []string) (Outcome, error) {
	if err := ValidateSix("prediction", order); err != nil {
		return Outcome{}, err
	}
	if err := ValidateSix("result", topSix); err != nil {
		return Outcome{}, err
	}

	actualByDriver := make(map[string]int, SlotCount)
	for idx, driverID := range topSix {
		actualByDriver[driverID] = idx
	}

	out := Outcome{Breakdown: make(Breakdown, 0, SlotCount+1)}
	for idx, driverID := range order {
		actual, ok := actualByDriver[driverID]
		if !ok {
			actual = -1
		}
		points := PointsFor(idx, actual)
		out.Total += points
		if actual >= 0 {
			out.CorrectCount++
		}
		out.Breakdown = append(out.Breakdown, Entry{
			Slot:        idx + 1,
			DriverID:    driverID,
			Label:       c.drivers.Name(driverID),
			ActualIndex: actual,
			Points:      points,
		})
	}

	if out.HasBonus() {
		out.Total += BonusAllSix
		out.Breakdown = append(out.Breakdown, Entry{
			Label:       BonusAllSixName,
			ActualIndex: -1,
			Points:      BonusAllSix,
			Bonus:       true,
		})
	}

	return out, nil
}

// ValidateSix checks that ids holds exactly six distinct, non-empty driver ids.
func ValidateSix(kind string, ids []string) error {
	if len(ids) != SlotCount {
		return fmt.Errorf("%w: %s has %d drivers, expected %d", ErrMalformedPredictionOrResult, kind, len(ids), SlotCount)
	}

	seen := make(map[string]struct{}, SlotCount)
	for idx, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s slot %d is empty", ErrMalformedPredictionOrResult, kind, idx+1)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: %s repeats driver %s", ErrMalformedPredictionOrResult, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
