package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quadra/internal/domains/schedule/model"
)

func TestDailyTemplate(t *testing.T) {
	template := model.DailyTemplate()

	assert.Len(t, template, 16)
	assert.Equal(t, "07:00", template[0].StartTime)
	assert.Equal(t, "22:00", template[len(template)-1].StartTime)

	for _, entry := range template {
		assert.NotEqual(t, model.PeriodOther, entry.Period, "template entry %s must have a known period", entry.StartTime)
	}
}

func TestDailyTemplateIsDeterministic(t *testing.T) {
	assert.Equal(t, model.DailyTemplate(), model.DailyTemplate())
}

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		expected  model.Period
	}{
		{
			name:      "first morning slot",
			startTime: "07:00",
			expected:  model.PeriodMorning,
		},
		{
			name:      "last morning slot",
			startTime: "12:00",
			expected:  model.PeriodMorning,
		},
		{
			name:      "first afternoon slot",
			startTime: "13:00",
			expected:  model.PeriodAfternoon,
		},
		{
			name:      "mid afternoon slot",
			startTime: "15:00",
			expected:  model.PeriodAfternoon,
		},
		{
			name:      "last afternoon slot",
			startTime: "18:00",
			expected:  model.PeriodAfternoon,
		},
		{
			name:      "first evening slot",
			startTime: "19:00",
			expected:  model.PeriodEvening,
		},
		{
			name:      "last evening slot",
			startTime: "22:00",
			expected:  model.PeriodEvening,
		},
		{
			name:      "before opening",
			startTime: "06:00",
			expected:  model.PeriodOther,
		},
		{
			name:      "after closing",
			startTime: "23:00",
			expected:  model.PeriodOther,
		},
		{
			name:      "unparseable time",
			startTime: "not-a-time",
			expected:  model.PeriodOther,
		},
		{
			name:      "empty time",
			startTime: "",
			expected:  model.PeriodOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.PeriodFor(tt.startTime))
		})
	}
}
