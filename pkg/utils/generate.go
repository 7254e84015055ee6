package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== REFERENCE CODE ====================

// GenerateBookingReference builds a human-shareable reference code.
// Format: APT-YYYYMMDD-HHMMSS-RANDOM
func GenerateBookingReference() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("APT-%s-%s-%s", datePart, timePart, randomPart)
}
