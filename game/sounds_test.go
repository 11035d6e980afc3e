package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/audio"
)

func TestSoundsFromVoicesStaySilentWithoutSpeaker(t *testing.T) {
	m := audio.NewManager(44100, 50*time.Millisecond, 1, zap.NewNop())
	s := SoundsFromVoices(audio.NewVoices(m))

	assert.Len(t, s.Hits, 2)
	for _, snd := range append(s.Hits, s.LaunchLeft, s.LaunchRight, s.Music) {
		snd.Play()
		assert.False(t, snd.IsPlaying())
		snd.Stop()
	}
}
