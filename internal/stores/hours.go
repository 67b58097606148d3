package stores

import (
	"fmt"
	"time"

	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

const (
	statusOpen        = "Open"
	statusClosed      = "Closed"
	statusOpeningSoon = "Opening Soon"
)

// currentStatus derives the open/closed banner from the weekly schedule.
// Times are HH:MM strings, so lexicographic comparison matches clock order.
func currentStatus(hours types.BusinessHours, now time.Time) StatusDTO {
	today := hours.ForDay(now.Weekday().String())
	if today == nil || !today.IsOpen {
		return StatusDTO{
			IsOpen:  false,
			Status:  statusClosed,
			Message: "Store is closed today",
		}
	}

	clock := now.Format("15:04")
	switch {
	case clock >= today.OpenTime && clock <= today.CloseTime:
		return StatusDTO{
			IsOpen:      true,
			Status:      statusOpen,
			Message:     fmt.Sprintf("Open until %s", today.CloseTime),
			ClosingTime: today.CloseTime,
		}
	case clock < today.OpenTime:
		return StatusDTO{
			IsOpen:      false,
			Status:      statusOpeningSoon,
			Message:     fmt.Sprintf("Opens at %s", today.OpenTime),
			OpeningTime: today.OpenTime,
		}
	default:
		return StatusDTO{
			IsOpen:  false,
			Status:  statusClosed,
			Message: "Store is closed for today",
		}
	}
}

// nextOpening walks the week starting tomorrow and returns the first day with
// open hours, nil when the store never opens.
func nextOpening(hours types.BusinessHours, now time.Time) *NextOpeningDTO {
	for i := 1; i <= 7; i++ {
		day := now.AddDate(0, 0, i).Weekday().String()
		if h := hours.ForDay(day); h != nil && h.IsOpen {
			return &NextOpeningDTO{
				Day:       h.Day,
				OpenTime:  h.OpenTime,
				CloseTime: h.CloseTime,
			}
		}
	}
	return nil
}
