package sound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledIsSilent(t *testing.T) {
	p := New(false)
	assert.Equal(t, Silent{}, p)

	p.Hit()
	p.Defeat()
	p.Close()
}

func TestToneLength(t *testing.T) {
	s := tone(hitFreq, 50*time.Millisecond)

	samples := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(samples)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(50*time.Millisecond), total)
}
