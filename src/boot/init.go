package boot

import (
	"errors"
	"log"
	"os"
	"time"
	"tms/src/db"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Profile{},
		&models.Package{},
		&models.Booking{},
		&models.Transaction{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// EnsureAdminAccount provisions the single admin profile from environment
// credentials. Idempotent; skipped entirely when the variables are unset.
// Credentials are never compiled in.
func EnsureAdminAccount() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}
	gdb := db.GetDb()
	var existing models.Profile
	err := gdb.
		Model(&models.Profile{}).
		Where("email = ?", email).
		First(&existing).
		Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         types.ROLE_ADMIN,
		KYCVerified:  true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Provisioned admin account [%s]", admin.ID.String())
	return nil
}

// InitScheduler starts the booking sweep: pending bookings whose start date
// has passed are cancelled along with their transactions, and confirmed
// bookings whose end date has passed are marked completed.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	_, err = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			if err := ExpireStaleBookings(); err != nil {
				log.Printf("Error expiring stale bookings: %s\n", err.Error())
			}
		}),
	)
	if err != nil {
		log.Printf("Error scheduling booking expiry job: %s\n", err.Error())
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

func ExpireStaleBookings() error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.
			Model(&models.Booking{}).
			Where("status = ?", types.BOOKING_PENDING).
			Where("start_date < ?", time.Now()).
			Pluck("id", &ids).
			Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.
				Model(&models.Booking{}).
				Where("id IN (?)", ids).
				Update("status", types.BOOKING_CANCELED).
				Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.Transaction{}).
				Where("booking_id IN (?)", ids).
				Where("status = ?", types.TRANSACTION_PENDING).
				Update("status", types.TRANSACTION_CANCELED).
				Error; err != nil {
				return err
			}
			log.Printf("Expired %d stale bookings", len(ids))
		}
		res := tx.
			Model(&models.Booking{}).
			Where("status = ?", types.BOOKING_CONFIRMED).
			Where("end_date < ?", time.Now()).
			Update("status", types.BOOKING_COMPLETED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("Completed %d finished bookings", res.RowsAffected)
		}
		return nil
	})
}
