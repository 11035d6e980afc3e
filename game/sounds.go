package game

import (
	"github.com/lixenwraith/wall-blaster/audio"
	"github.com/lixenwraith/wall-blaster/engine"
)

// SoundsFromVoices adapts the audio voice set to session sounds
func SoundsFromVoices(v audio.Voices) Sounds {
	hits := make([]engine.Sound, len(v.Hits))
	for i, h := range v.Hits {
		hits[i] = h
	}
	return Sounds{
		Hits:        hits,
		LaunchLeft:  v.LaunchLeft,
		LaunchRight: v.LaunchRight,
		Music:       v.Music,
	}
}
