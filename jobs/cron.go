package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"

	"parkeasy/config"
	"parkeasy/models"
	"parkeasy/utils"
)

// PendingExpirer denies pending bookings whose start has already passed
type PendingExpirer interface {
	ExpireStalePending(now time.Time) (int, error)
}

var pendingExpirer PendingExpirer

// SetPendingExpirer installs the booking service implementation
func SetPendingExpirer(expirer PendingExpirer) {
	pendingExpirer = expirer
}

// InitCronJobs schedules the maintenance jobs: a nightly prune of expired
// availability slots and an hourly sweep of stale pending bookings.
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		removed, err := PrunePastSlots(now)
		if err != nil {
			log.Printf("slot prune failed: %v", err)
			return
		}
		utils.LogInfo("slot prune removed %d expired slots", removed)
	})
	if err != nil {
		return err
	}

	_, err = c.AddFunc("0 * * * *", func() {
		if pendingExpirer == nil {
			return
		}
		expired, err := pendingExpirer.ExpireStalePending(time.Now())
		if err != nil {
			log.Printf("pending booking sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("pending booking sweep expired %d bookings", expired)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}

// PrunePastSlots deletes availability slots that ended before now. Slots
// spanning now are kept whole; they fail coverage checks for past ranges
// anyway.
func PrunePastSlots(now time.Time) (int, error) {
	var slots []models.ListingSlot
	if err := config.DB.Where("end_date <= ?", utils.StartOfDay(now)).Find(&slots).Error; err != nil {
		return 0, err
	}

	removed := 0
	for i := range slots {
		iv, err := slots[i].Interval()
		if err != nil {
			continue
		}
		if !iv.End.After(now) {
			if err := config.DB.Delete(&models.ListingSlot{}, slots[i].ID).Error; err != nil {
				log.Printf("delete slot %d failed: %v", slots[i].ID, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}
