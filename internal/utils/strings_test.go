package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "terminal-2e", Slugify("  Terminal 2E "))
	assert.Equal(t, "cargo-zone-north", Slugify("Cargo   Zone\tNorth"))
	assert.Equal(t, "", Slugify("   "))
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "AB123CD", NormalizePlate("ab-123-cd"))
	assert.Equal(t, "AB123CD", NormalizePlate(" AB 123 CD "))
	assert.Equal(t, "", NormalizePlate(" - "))
}
