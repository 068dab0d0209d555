package utils

import "github.com/google/uuid"

// UUIDGenerator produces trace ids. Version 7 ids sort by creation time,
// which keeps log searches by id range meaningful.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7, falling back to a random v4 if the clock
// based generator fails.
func (g *UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
