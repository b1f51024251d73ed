package wishes

import (
	"fmt"
	"time"

	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/utils"
)

// Countdown is the time left until a wish's target date. Days is negative
// once the date has passed.
type Countdown struct {
	Days    int
	Message string
}

// Overdue reports whether the target date is in the past.
func (c Countdown) Overdue() bool {
	return c.Days < 0
}

// CountdownFor computes the countdown for w as of now. ok is false for done
// wishes and for wishes with an unparseable target date.
func CountdownFor(w models.Wish, now time.Time) (Countdown, bool) {
	if w.IsDone {
		return Countdown{}, false
	}
	days, err := utils.DaysUntilDate(w.TargetDate, now)
	if err != nil {
		return Countdown{}, false
	}
	return Countdown{Days: days, Message: CountdownMessage(days)}, true
}

// CountdownMessage renders a day difference.
func CountdownMessage(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("%d days remaining", days)
	case days == 0:
		return "target day is today"
	default:
		return fmt.Sprintf("overdue by %d days", -days)
	}
}

// Partition splits wishes by completion, keeping the incoming order in each half.
func Partition(wishes []models.Wish) (uncompleted, completed []models.Wish) {
	uncompleted = make([]models.Wish, 0, len(wishes))
	completed = make([]models.Wish, 0)
	for _, w := range wishes {
		if w.IsDone {
			completed = append(completed, w)
		} else {
			uncompleted = append(uncompleted, w)
		}
	}
	return uncompleted, completed
}
