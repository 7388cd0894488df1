package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0K", FormatNumber(1000))
	assert.Equal(t, "1.5K", FormatNumber(1500))
	assert.Equal(t, "2.5M", FormatNumber(2500000))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0", FormatMinutes(0))
	assert.Equal(t, "60", FormatMinutes(60))
	assert.Equal(t, "42.5", FormatMinutes(42.5))
	assert.Equal(t, "12.3", FormatMinutes(12.34))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "0m", FormatDuration(30*time.Second))
}
