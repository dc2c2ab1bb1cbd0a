package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered UUIDv7 identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a UUIDv7, falling back to a random v4 if the v7 source fails.
func (g *UUIDGenerator) NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// SystemClock reports wall-clock time in UTC.
type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// StaticIdentity always reports the same user.
type StaticIdentity struct {
	name string
}

func NewStaticIdentity(name string) *StaticIdentity {
	return &StaticIdentity{name: name}
}

func (s *StaticIdentity) CurrentUser(_ context.Context) string {
	return s.name
}
