package usecase

import (
	"math"
	"time"
)

// Per-day add-on rates, matching the booking form.
const (
	insuranceRatePerDay = 15.0
	gpsRatePerDay       = 5.0
	childSeatRatePerDay = 10.0
)

// BookingAddOns mirrors the add-on checkboxes on the booking form.
type BookingAddOns struct {
	Insurance bool
	GPS       bool
	ChildSeat bool
}

// RentalDays counts chargeable days for a date range. The end date is
// exclusive: Mar 1 to Mar 3 is 2 days. Partial days round up, and every
// booking is charged at least one day.
func RentalDays(start, end time.Time) int {
	if !end.After(start) {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// TotalAmount is the authoritative booking price: the server always
// recomputes it, a caller-supplied total is ignored.
func TotalAmount(days int, dailyRate float64, addOns BookingAddOns) float64 {
	total := float64(days) * dailyRate
	if addOns.Insurance {
		total += insuranceRatePerDay * float64(days)
	}
	if addOns.GPS {
		total += gpsRatePerDay * float64(days)
	}
	if addOns.ChildSeat {
		total += childSeatRatePerDay * float64(days)
	}
	return total
}
