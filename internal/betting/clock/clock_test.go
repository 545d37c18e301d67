package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRepeating(t *testing.T) {
	tm := NewRepeating(t0, 10*time.Second)

	assert.Equal(t, 0, tm.Due(t0.Add(9*time.Second)))
	assert.Equal(t, 1, tm.Due(t0.Add(10*time.Second)))
	assert.Equal(t, 0, tm.Due(t0.Add(10*time.Second)))
	assert.Equal(t, t0.Add(20*time.Second), tm.Next())

	// atraso de 3 períodos é recuperado de uma vez
	assert.Equal(t, 3, tm.Due(t0.Add(45*time.Second)))
	assert.Equal(t, t0.Add(50*time.Second), tm.Next())
}

func TestRepeating_Stop(t *testing.T) {
	tm := NewRepeating(t0, time.Second)
	tm.Stop()
	assert.False(t, tm.Armed())
	assert.Equal(t, 0, tm.Due(t0.Add(time.Hour)))
}

func TestRepeating_ZeroPeriodNeverFires(t *testing.T) {
	tm := NewRepeating(t0, 0)
	assert.Equal(t, 0, tm.Due(t0.Add(time.Hour)))
}

func TestOneShot_RearmReplacesPending(t *testing.T) {
	tm := NewOneShot(3 * time.Second)
	assert.Equal(t, 0, tm.Due(t0.Add(time.Hour)), "disarmed timer never fires")

	tm.Arm(t0)
	tm.Arm(t0.Add(2 * time.Second))
	assert.Equal(t, 0, tm.Due(t0.Add(3*time.Second)))
	assert.Equal(t, 1, tm.Due(t0.Add(5*time.Second)))
	assert.False(t, tm.Armed())
	assert.Equal(t, 0, tm.Due(t0.Add(10*time.Second)))
}

func TestManual(t *testing.T) {
	m := NewManual(t0)
	assert.Equal(t, t0, m.Now())
	assert.Equal(t, t0.Add(time.Minute), m.Add(time.Minute))
	m.Set(t0)
	assert.Equal(t, t0, m.Now())
}
