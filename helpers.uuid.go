package main

import (
	"github.com/gofrs/uuid"
)

var _ UIDGenerator = (*IDsGenerator)(nil) // ensure IDsGenerator implements UIDGenerator.

// UIDGenerator is an interface for getting a uid.
type UIDGenerator interface {
	Generate(prefix string) string
}

// IDsGenerator implements the UIDGenerator interface.
type IDsGenerator struct{}

// NewIDsGenerator returns a ready to use IDsGenerator.
func NewIDsGenerator() *IDsGenerator {
	return &IDsGenerator{}
}

// Generate provides a random unique identifier.
func (g *IDsGenerator) Generate(prefix string) string {
	id, _ := uuid.NewV4()
	return prefix + ":" + id.String()
}
