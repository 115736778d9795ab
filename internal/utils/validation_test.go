package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidCoordinates(0, 0))
	assert.True(t, IsValidCoordinates(90, 180))
	assert.True(t, IsValidCoordinates(-90, -180))

	assert.False(t, IsValidCoordinates(90.0001, 0))
	assert.False(t, IsValidCoordinates(-90.0001, 0))
	assert.False(t, IsValidCoordinates(0, 180.0001))
	assert.False(t, IsValidCoordinates(0, -180.0001))
}

func TestIsValidObjectID(t *testing.T) {
	assert.True(t, IsValidObjectID("507f1f77bcf86cd799439011"))

	assert.False(t, IsValidObjectID(""))
	assert.False(t, IsValidObjectID("not-an-id"))
	assert.False(t, IsValidObjectID("507f1f77bcf86cd79943901"))   // too short
	assert.False(t, IsValidObjectID("507f1f77bcf86cd7994390111")) // too long
	assert.False(t, IsValidObjectID("zzzf1f77bcf86cd799439011"))
}

func TestEscapeRegex(t *testing.T) {
	assert.Equal(t, `Station \(Main\)`, EscapeRegex("Station (Main)"))
	assert.Equal(t, `a\.b\*c`, EscapeRegex("a.b*c"))
	assert.Equal(t, "plain", EscapeRegex("plain"))
}
