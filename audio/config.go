package audio

// Config controls the tone sink
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	BufferMs      int
	EffectVolumes map[SoundType]float64
}

// DefaultConfig returns enabled audio at full master volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MasterVolume:  1.0,
		SampleRate:    44100,
		BufferMs:      100,
		EffectVolumes: map[SoundType]float64{
			SoundPop:      1.0,
			SoundWin:      1.0,
			SoundLifeLost: 0.8,
		},
	}
}

// volume returns the effective linear gain of a sound
func (c *Config) volume(s SoundType) float64 {
	v, ok := c.EffectVolumes[s]
	if !ok {
		v = 1.0
	}
	v *= c.MasterVolume
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
