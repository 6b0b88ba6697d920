// Package game is the interactive collide-and-slide demo: an agent sphere
// walked around a scene file with mouse look.
package game

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sweep3d/internal/camera"
	"sweep3d/internal/character"
	"sweep3d/internal/config"
	"sweep3d/internal/physics"
	"sweep3d/internal/world"
)

const jumpStrength = 8.0

type Game struct {
	ScenePath string
	Config    config.Config

	Level    *world.Level
	World    *physics.World
	Agent    *character.Controller
	Camera   *camera.FPSCamera
	Renderer *world.Renderer

	logger    *zap.Logger
	DebugMode bool
	cursor    bool // cursor released for the HUD
	speed     float32
	aim       physics.CollisionHit
	last      physics.SlideResult

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(scenePath string, cfg config.Config, logger *zap.Logger) *Game {
	return &Game{
		ScenePath: scenePath,
		Config:    cfg,
		logger:    logger,
		speed:     cfg.Agent.Speed,
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "sweep3d: collide and slide")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	// Models can only be loaded once the OpenGL context exists.
	if err := g.load(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func (g *Game) load() error {
	level, err := world.Load(g.ScenePath, world.LoadModelMesh)
	if err != nil {
		return err
	}
	g.Level = level
	g.World = physics.NewWorld(level.Scene,
		physics.WithSettings(g.Config.PhysicsSettings()),
		physics.WithLogger(g.logger),
	)
	g.Agent = character.New(g.World, level.Spawn, g.Config.CharacterSettings())
	g.Camera = camera.New(level.Spawn)
	g.Renderer = world.NewRenderer()

	g.logger.Info("Game: scene loaded",
		zap.String("scene", level.Name),
		zap.Int("objects", level.Scene.Len()),
		zap.Int("meshes", level.MeshCount()),
	)
	return nil
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyTab) {
		g.cursor = !g.cursor
		if g.cursor {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if !g.cursor {
		g.Camera.Look(rl.GetMouseDelta())
	}

	wish := g.Camera.Wish(camera.ReadInput())
	if rl.IsKeyPressed(rl.KeySpace) && g.Agent.IsGrounded() {
		g.Agent.SetVelocityY(jumpStrength)
	}
	g.last = g.Agent.SimpleMove(rl.Vector3Scale(wish, g.speed), deltaTime)
	g.Camera.Follow(g.Agent.Position)
	g.aim = g.Agent.Aim(g.Camera.LookDir())

	if rl.IsKeyPressed(rl.KeyR) {
		g.Agent.Position = g.Level.Spawn
		g.Agent.SetVelocityY(0)
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.save()
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) save() {
	if err := g.Level.Save(g.ScenePath); err != nil {
		g.logger.Error("Game: save scene", zap.String("path", g.ScenePath), zap.Error(err))
		return
	}
	g.logger.Info("Game: scene saved", zap.String("path", g.ScenePath))
}

func (g *Game) Draw() {
	cam := g.Camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(cam)
	g.Renderer.Draw(g.Level, cam)
	g.Renderer.DrawHit(g.aim)
	if g.DebugMode {
		g.Renderer.DrawHit(g.last.LastHit)
		g.Renderer.DrawHit(g.Agent.Ground())
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Space to jump, Mouse to look, R to respawn", 10, 10, 20, rl.LightGray)
	rl.DrawText("Tab for the cursor, F1 debug view, F2 save scene", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	// HUD controls
	x := float32(rl.GetScreenWidth()) - 220
	g.Agent.Radius = gui.Slider(rl.Rectangle{X: x, Y: 10, Width: 140, Height: 20},
		"Radius", fmt.Sprintf("%.2f", g.Agent.Radius), g.Agent.Radius, 0.1, 3)
	g.speed = gui.Slider(rl.Rectangle{X: x, Y: 35, Width: 140, Height: 20},
		"Speed", fmt.Sprintf("%.1f", g.speed), g.speed, 0, 20)
	g.Renderer.Wireframe = gui.CheckBox(rl.Rectangle{X: x, Y: 60, Width: 20, Height: 20}, "Wireframe", g.Renderer.Wireframe)
	g.Renderer.Bounds = gui.CheckBox(rl.Rectangle{X: x + 110, Y: 60, Width: 20, Height: 20}, "Bounds", g.Renderer.Bounds)
	g.Agent.UseGravity = gui.CheckBox(rl.Rectangle{X: x, Y: 85, Width: 20, Height: 20}, "Gravity", g.Agent.UseGravity)

	if g.aim.Hit {
		if o, ok := g.Level.Scene.Get(g.aim.Object); ok {
			rl.DrawText(fmt.Sprintf("Aim: %s at %.2f", o.Name, g.aim.T*g.Agent.AimRange), 10, 85, 16, rl.Yellow)
		}
	}

	if g.DebugMode {
		p := g.Agent.Position
		rl.DrawText(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z), 10, 110, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Grounded: %v  Slide: %s after %d", g.Agent.IsGrounded(), g.last.Reason, g.last.Iterations), 10, 130, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Drawn:   %d / %d", g.Renderer.Drawn(), g.Level.Scene.Len()), 10, 150, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, 170, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, 190, 16, rl.Lime)
	}
}
