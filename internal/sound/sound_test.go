package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFrequencyRises(t *testing.T) {
	assert.InDelta(t, 440.0, lineFrequency(1), 1e-9)
	assert.InDelta(t, 440.0, lineFrequency(0), 1e-9)
	assert.InDelta(t, 880.0, lineFrequency(4), 1e-9)
	for n := 1; n < 4; n++ {
		assert.Less(t, lineFrequency(n), lineFrequency(n+1))
	}
}

func TestSequenceLength(t *testing.T) {
	sr := beep.SampleRate(1000)
	s, err := sequence(sr,
		Note{Frequency: 100, Duration: 10 * time.Millisecond},
		Note{Frequency: 200, Duration: 20 * time.Millisecond},
	)
	require.NoError(t, err)

	buf := make([][2]float64, 64)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, 30, total)
}

func TestSequenceRejectsAliasedTone(t *testing.T) {
	_, err := sequence(beep.SampleRate(100), Note{Frequency: 400, Duration: time.Millisecond})
	assert.Error(t, err)
}

func TestMutedPlayerIgnoresCues(t *testing.T) {
	var nilPlayer *Player
	assert.NotPanics(t, func() {
		nilPlayer.LinesCleared(2)
		nilPlayer.Close()
		New(nil).GameOver()
	})
}
