package physics

// Settings tune the collide-and-slide resolver.
type Settings struct {
	// MaxIterations caps the number of world queries per slide.
	MaxIterations int
	// MinDisplacement ends the slide once the redirected displacement is
	// shorter than this.
	MinDisplacement float32
	// NudgeDistance is how far the sphere is pushed off every contact along
	// the contact normal.
	NudgeDistance float32
	// MinFraction treats hits earlier than this fraction as hits at the start.
	MinFraction float32
}

func DefaultSettings() Settings {
	return Settings{
		MaxIterations:   5,
		MinDisplacement: 5e-5,
		NudgeDistance:   0.01,
		MinFraction:     0.0005,
	}
}
