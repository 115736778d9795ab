package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSweepDue(t *testing.T) {
	w := &DutySweepWorker{}

	morning := time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC)
	beforeHour := time.Date(2024, 1, 11, 7, 59, 0, 0, time.UTC)
	later := time.Date(2024, 1, 11, 15, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 12, 8, 1, 0, 0, time.UTC)

	assert.False(t, w.due(beforeHour, time.Time{}), "never fires before the sweep hour")
	assert.True(t, w.due(morning, time.Time{}), "first tick at the sweep hour fires")
	assert.False(t, w.due(later, morning), "does not fire twice on the same day")
	assert.True(t, w.due(nextDay, morning), "fires again the next day")
}
