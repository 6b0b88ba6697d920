package physics

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sweep3d/internal/engine"
)

// World runs collision queries against the objects of a scene. It never
// mutates the scene. Queries are not safe to run concurrently with scene
// edits, but any number of queries may run in parallel.
type World struct {
	Scene    *engine.Scene
	Settings Settings

	logger *zap.Logger
	capLog rate.Sometimes
}

type Option func(*World)

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

func WithSettings(s Settings) Option {
	return func(w *World) {
		w.Settings = s
	}
}

func NewWorld(scene *engine.Scene, opts ...Option) *World {
	w := &World{
		Scene:    scene,
		Settings: DefaultSettings(),
		logger:   zap.NewNop(),
		capLog:   rate.Sometimes{First: 1, Interval: time.Second},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.Settings.MaxIterations < 1 {
		w.Settings.MaxIterations = 1
	}
	return w
}

// Logger returns the logger the world reports through.
func (w *World) Logger() *zap.Logger {
	return w.logger
}
