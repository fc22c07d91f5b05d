package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hoalu/hoalu-backend/internal/utils/period"
)

func TestStartOfMonth(t *testing.T) {
	at := time.Date(2025, 3, 15, 13, 45, 30, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), period.StartOfMonth(at))
}

func TestPreviousMonthRange(t *testing.T) {
	at := time.Date(2025, 3, 15, 13, 45, 30, 0, time.UTC)

	start, end := period.PreviousMonthRange(at)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), end)
}

func TestPreviousMonthRange_January(t *testing.T) {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	start, end := period.PreviousMonthRange(at)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestPreviousMonthRange_LeapFebruary(t *testing.T) {
	at := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_, end := period.PreviousMonthRange(at)

	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}
