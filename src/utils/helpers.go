package utils

import (
	"fmt"
	"log"
	"os"
	"time"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const sessionDuration = 24 * time.Hour

// GenerateJWT issues a session token for a profile. The subject carries the
// profile id; role travels as a claim so handlers can gate without a lookup.
func GenerateJWT(email string, id uuid.UUID, role types.UserRole) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func JWTKey() []byte {
	return jwtKey
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SendBookingConfirmation mails the traveler a booking summary. Best effort:
// failures are logged, never surfaced.
func SendBookingConfirmation(booking *models.Booking, pkg *models.Package, email string) {
	from := os.Getenv("MAIL_FROM")
	if from == "" || email == "" {
		return
	}
	body := fmt.Sprintf(
		"Your booking for %q is in.\n\nDates: %s to %s\nTravelers: %d\nTotal: %.2f\n\nWe will confirm as soon as payment clears.",
		pkg.Title,
		booking.StartDate.Format("2006-01-02"),
		booking.EndDate.Format("2006-01-02"),
		booking.NumPeople,
		float64(booking.TotalAmount)/100,
	)
	err := lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: "Trip Bookings",
		To:       []string{email},
		Subject:  fmt.Sprintf("Booking received: %s", pkg.Title),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending booking confirmation for [%s]: %s\n", booking.ID.String(), err.Error())
	}
}
