package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidateDate(t *testing.T) {
	validas := []string{
		"2024-01-15",
		"2024-01-15 08:30:00",
		"2024-01-15T08:30:00",
		"2024-01-15T08:30:00.123Z",
		"2024-01-15 08:30:00+02:00",
	}
	for _, s := range validas {
		t.Run(s, func(t *testing.T) {
			fecha, ok := ParseAndValidateDate(s)
			require.True(t, ok)
			assert.Equal(t, 2024, fecha.Year())
		})
	}

	invalidas := []string{
		"",
		"15-01-2024",
		"2024/01/15",
		"2024-13-01",
		"2024-02-30",
		"2024-01-15 25:00:00",
		"enero 15 2024",
		"2024-01-15X08:30:00",
	}
	for _, s := range invalidas {
		t.Run("invalida/"+s, func(t *testing.T) {
			_, ok := ParseAndValidateDate(s)
			assert.False(t, ok)
		})
	}
}

func TestParseAndValidateDateFutura(t *testing.T) {
	futuro := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	_, ok := ParseAndValidateDate(futuro)
	assert.False(t, ok)
}
