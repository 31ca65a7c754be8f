package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"tms/src/models"
	"tms/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRequest is the raw traveler submission.
type BookingRequest struct {
	PackageID     uuid.UUID
	UserID        uuid.UUID
	StartDate     time.Time
	NumPeople     uint
	PaymentMethod types.PaymentMethod
}

// ValidateAvailability checks a request against package-level capacity and
// the booking-date policy, and derives the inclusive end date. now is
// injected so the rule stays deterministic under test.
func ValidateAvailability(pkg *models.Package, numPeople uint, startDate time.Time, now time.Time) (time.Time, error) {
	if numPeople < pkg.CapacityMin || numPeople > pkg.CapacityMax {
		return time.Time{}, fmt.Errorf("%w: num_people must be between %d and %d", types.ErrCapacity, pkg.CapacityMin, pkg.CapacityMax)
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, startDate.Location()).AddDate(0, 0, 1)
	if startDate.Before(tomorrow) {
		return time.Time{}, types.ErrDate
	}
	endDate := startDate.AddDate(0, 0, int(pkg.DurationDays)-1)
	return endDate, nil
}

// BuildBooking validates the request and produces the Booking+Transaction
// pair, fully priced but not yet durable.
func BuildBooking(pkg *models.Package, req *BookingRequest, now time.Time) (*models.Booking, *models.Transaction, error) {
	if pkg.DurationDays < 1 {
		return nil, nil, fmt.Errorf("%w: package has no duration", types.ErrInvalidInput)
	}
	endDate, err := ValidateAvailability(pkg, req.NumPeople, req.StartDate, now)
	if err != nil {
		return nil, nil, err
	}
	quote, err := ComputeQuote(pkg.PricePerPerson, req.NumPeople)
	if err != nil {
		return nil, nil, err
	}
	booking := &models.Booking{
		PackageID:     pkg.ID,
		UserID:        req.UserID,
		StartDate:     req.StartDate,
		EndDate:       endDate,
		NumPeople:     req.NumPeople,
		TotalAmount:   quote.Total,
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.PAYMENT_PENDING,
	}
	txn := &models.Transaction{
		Amount:        quote.Total,
		Commission:    quote.Commission,
		GatewayFee:    quote.GatewayFee,
		NetAmount:     quote.NetToHost,
		PaymentMethod: req.PaymentMethod,
		Status:        types.TRANSACTION_PENDING,
	}
	return booking, txn, nil
}

// CreateBooking runs the full workflow: load the package, validate, price,
// and persist the Booking+Transaction pair in one database transaction. The
// package row is locked and already-reserved seats for the overlapping date
// range are counted before inserting, so two concurrent requests cannot
// oversell the package. Any failure past validation rolls the pair back.
func CreateBooking(ctx context.Context, gdb *gorm.DB, req *BookingRequest, now time.Time) (*models.Booking, error) {
	var created *models.Booking
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", req.PackageID).
			First(&pkg).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: package not found", types.ErrInvalidInput)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if pkg.Status != types.PACKAGE_PUBLISHED {
			return fmt.Errorf("%w: package is not open for booking", types.ErrInvalidInput)
		}
		booking, txn, err := BuildBooking(&pkg, req, now)
		if err != nil {
			return err
		}
		var reserved int64
		if err := tx.
			Model(&models.Booking{}).
			Where("package_id = ?", pkg.ID).
			Where("status <> ?", types.BOOKING_CANCELED).
			Where("start_date <= ? AND end_date >= ?", booking.EndDate, booking.StartDate).
			Select("COALESCE(SUM(num_people), 0)").
			Scan(&reserved).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if reserved+int64(req.NumPeople) > int64(pkg.CapacityMax) {
			return fmt.Errorf("%w: only %d spots left for these dates", types.ErrCapacity, max(int64(pkg.CapacityMax)-reserved, 0))
		}
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: booking already exists", types.ErrConflict)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		txn.BookingID = booking.ID
		if err := tx.Create(txn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: transaction already exists for booking", types.ErrConflict)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		booking.Package = &pkg
		booking.Transaction = txn
		created = booking
		return nil
	})
	if err != nil {
		log.Printf("Could not create booking for package [%s]: %s\n", req.PackageID.String(), err.Error())
		return nil, err
	}
	return created, nil
}

// CancelBooking cancels a pending booking owned by userID together with its
// transaction.
func CancelBooking(ctx context.Context, gdb *gorm.DB, bookingID uuid.UUID, userID uuid.UUID) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Where("id = ? AND user_id = ?", bookingID, userID).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking not found", types.ErrInvalidInput)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if booking.Status != types.BOOKING_PENDING {
			return fmt.Errorf("%w: only pending bookings can be cancelled", types.ErrConflict)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{"status": types.BOOKING_CANCELED}).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if err := tx.
			Model(&models.Transaction{}).
			Where("booking_id = ?", booking.ID).
			Update("status", types.TRANSACTION_CANCELED).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		return nil
	})
}

// SettleTransaction marks a pending transaction as completed and flips its
// booking to confirmed/paid. Stands in for the payment-gateway callback,
// which is out of scope.
func SettleTransaction(ctx context.Context, gdb *gorm.DB, txnID uuid.UUID) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.
			Where("id = ?", txnID).
			First(&txn).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction not found", types.ErrInvalidInput)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if txn.Status != types.TRANSACTION_PENDING {
			return fmt.Errorf("%w: transaction is not pending", types.ErrConflict)
		}
		if err := tx.
			Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Update("status", types.TRANSACTION_COMPLETED).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", txn.BookingID).
			Updates(map[string]any{
				"status":         types.BOOKING_CONFIRMED,
				"payment_status": types.PAYMENT_PAID,
			}).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		return nil
	})
}
