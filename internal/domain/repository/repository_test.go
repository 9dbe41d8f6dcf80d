package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ClampLimit(0))
	assert.Equal(t, DefaultListLimit, ClampLimit(-5))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, MaxListLimit, ClampLimit(MaxListLimit))
	assert.Equal(t, MaxListLimit, ClampLimit(MaxListLimit+1))
}

func TestAudienceFilterIsZero(t *testing.T) {
	assert.True(t, AudienceFilter{}.IsZero())
	assert.False(t, AudienceFilter{Department: "Informatique"}.IsZero())
	assert.False(t, AudienceFilter{Faculty: "Sciences"}.IsZero())
	assert.False(t, AudienceFilter{YearOfStudy: "L2"}.IsZero())
}
