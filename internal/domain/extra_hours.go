package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ExtraHoursEntry is a manually entered time adjustment
type ExtraHoursEntry struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	ID          string  `json:"id"`
	Seconds     int64   `json:"seconds"`
}

// NewExtraHoursEntry converts hours into whole seconds once, so that removing the
// entry later subtracts the exact amount that was added.
func NewExtraHoursEntry(hours float64, date, description string, now time.Time) (ExtraHoursEntry, error) {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return ExtraHoursEntry{}, fmt.Errorf("extra hours must be positive, got %v", hours)
	}
	if date == "" {
		date = DayKey(now)
	} else if _, err := ParseDeliveryDate(date); err != nil {
		return ExtraHoursEntry{}, err
	}
	return ExtraHoursEntry{
		Date:        date,
		Description: description,
		Hours:       hours,
		ID:          uuid.New().String(),
		Seconds:     int64(math.Round(hours * 3600)),
	}, nil
}
