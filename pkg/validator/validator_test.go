package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleForm struct {
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm,gtfield=StartTime"`
}

func TestValidateHHMM(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(&scheduleForm{StartTime: "09:00", EndTime: "17:30"}))

	for _, bad := range []string{"9:00", "09:60", "24:30", "0900", "morning"} {
		err := v.Validate(&scheduleForm{StartTime: bad, EndTime: "23:59"})
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestValidateWindowOrder(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Validate(&scheduleForm{StartTime: "14:00", EndTime: "09:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be after")
}

func TestValidateTimezone(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(&scheduleForm{Timezone: "America/Mexico_City", StartTime: "09:00", EndTime: "10:00"}))
	assert.Error(t, v.Validate(&scheduleForm{Timezone: "Mars/Olympus", StartTime: "09:00", EndTime: "10:00"}))
	// Empty timezone is allowed; the clinic default applies downstream.
	assert.NoError(t, v.Validate(&scheduleForm{StartTime: "09:00", EndTime: "10:00"}))
}

func TestValidationMessageUsesJSONName(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Validate(&scheduleForm{EndTime: "10:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_time")
}
