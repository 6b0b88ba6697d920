// Stress test for collide-and-slide: many agents wandering a walled arena,
// stepped serially and in parallel.
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sweep3d/internal/character"
	"sweep3d/internal/config"
	"sweep3d/internal/engine"
	"sweep3d/internal/logging"
	"sweep3d/internal/mesh"
	"sweep3d/internal/physics"
	"sweep3d/internal/world"
)

const (
	arenaSize = float32(60)
	dt        = float32(1.0 / 60)
)

type result struct {
	workers  int
	elapsed  time.Duration
	moves    int64
	capped   int64
	grounded int64
}

func main() {
	app := &cli.App{
		Name:  "physics_stress",
		Usage: "time collide-and-slide with many agents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "sweep3d.toml"},
			&cli.StringFlag{Name: "scene", Usage: "scene file; a generated arena when empty"},
			&cli.IntFlag{Name: "agents", Usage: "override stress.agents"},
			&cli.IntFlag{Name: "steps", Usage: "override stress.steps"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "physics_stress:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return err
	}
	if n := c.Int("agents"); n > 0 {
		cfg.Stress.Agents = n
	}
	if n := c.Int("steps"); n > 0 {
		cfg.Stress.Steps = n
	}
	logger, err := logging.New(cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	scene, spawn, err := loadScene(c.String("scene"))
	if err != nil {
		return err
	}
	w := physics.NewWorld(scene,
		physics.WithSettings(cfg.PhysicsSettings()),
		physics.WithLogger(logger),
	)
	logger.Info("Stress: scene ready",
		zap.String("scene", scene.Name),
		zap.Int("objects", scene.Len()),
		zap.Int("agents", cfg.Stress.Agents),
		zap.Int("steps", cfg.Stress.Steps),
	)

	workers := cfg.Stress.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var results []result
	for _, n := range []int{1, workers} {
		res, err := simulate(c.Context, w, cfg, spawn, n)
		if err != nil {
			return err
		}
		results = append(results, res)
		if workers == 1 {
			break
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("%d agents x %d steps", cfg.Stress.Agents, cfg.Stress.Steps)
	t.AppendHeader(table.Row{"Workers", "Total", "Per move", "Moves/s", "Capped", "Grounded", "Speedup"})
	for _, r := range results {
		perMove := r.elapsed / time.Duration(max(r.moves, 1))
		speedup := float64(results[0].elapsed) / float64(r.elapsed)
		t.AppendRow(table.Row{
			r.workers,
			r.elapsed.Round(time.Microsecond),
			perMove,
			fmt.Sprintf("%.0f", float64(r.moves)/r.elapsed.Seconds()),
			r.capped,
			r.grounded,
			fmt.Sprintf("%.1fx", speedup),
		})
	}
	t.Render()
	return nil
}

func loadScene(path string) (*engine.Scene, rl.Vector3, error) {
	if path != "" {
		l, err := world.Load(path, nil)
		if err != nil {
			return nil, rl.Vector3{}, err
		}
		return l.Scene, l.Spawn, nil
	}
	return arena(), rl.Vector3{Y: 1.5}, nil
}

// arena is a walled floor scattered with crates and ramps.
func arena() *engine.Scene {
	rand.Seed(42) // Consistent results
	scene := engine.NewScene("Arena")

	add := func(name string, m *mesh.Mesh, pos rl.Vector3) *engine.Object {
		o := engine.NewObject(name, m)
		o.Position = pos
		scene.Add(o)
		return o
	}

	half := arenaSize / 2
	add("Floor", mesh.Plane(arenaSize, arenaSize), rl.Vector3{})
	wallX := mesh.Box(rl.Vector3{X: arenaSize, Y: 4, Z: 1})
	wallZ := mesh.Box(rl.Vector3{X: 1, Y: 4, Z: arenaSize})
	add("WallNorth", wallX, rl.Vector3{Y: 2, Z: -half})
	add("WallSouth", wallX, rl.Vector3{Y: 2, Z: half})
	add("WallEast", wallZ, rl.Vector3{X: half, Y: 2})
	add("WallWest", wallZ, rl.Vector3{X: -half, Y: 2})

	crate := mesh.Box(rl.Vector3{X: 2, Y: 2, Z: 2})
	ramp := mesh.Ramp(4, 6, 1.5)
	for i := 0; i < 40; i++ {
		pos := rl.Vector3{
			X: rand.Float32()*(arenaSize-8) - (arenaSize-8)/2,
			Z: rand.Float32()*(arenaSize-8) - (arenaSize-8)/2,
		}
		if i%4 == 0 {
			o := add(fmt.Sprintf("Ramp_%d", i), ramp, pos)
			o.Turn(rand.Float32() * 2 * rl.Pi)
			continue
		}
		pos.Y = 1
		o := add(fmt.Sprintf("Crate_%d", i), crate, pos)
		o.Turn(rand.Float32() * 2 * rl.Pi)
	}
	return scene
}

// simulate steps every agent for the configured number of frames. Agents are
// independent so each worker owns a contiguous block of them.
func simulate(ctx context.Context, w *physics.World, cfg config.Config, spawn rl.Vector3, workers int) (result, error) {
	rng := rand.New(rand.NewSource(7))
	agents := make([]*character.Controller, cfg.Stress.Agents)
	headings := make([]rl.Vector3, len(agents))
	for i := range agents {
		pos := rl.Vector3Add(spawn, rl.Vector3{
			X: rng.Float32()*20 - 10,
			Y: rng.Float32() * 3,
			Z: rng.Float32()*20 - 10,
		})
		agents[i] = character.New(w, pos, cfg.CharacterSettings())
		angle := rng.Float64() * 2 * math.Pi
		headings[i] = rl.Vector3{X: float32(math.Cos(angle)), Z: float32(math.Sin(angle))}
	}

	var res result
	res.workers = workers
	speed := cfg.Agent.Speed
	turn := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 2.0)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(agents) + workers - 1) / workers
	for lo := 0; lo < len(agents); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(agents))
		g.Go(func() error {
			for step := 0; step < cfg.Stress.Steps; step++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for i := lo; i < hi; i++ {
					before := agents[i].Position
					sr := agents[i].SimpleMove(rl.Vector3Scale(headings[i], speed), dt)
					atomic.AddInt64(&res.moves, 1)
					if sr.Reason == physics.StopCapped {
						atomic.AddInt64(&res.capped, 1)
					}
					// Turn when a wall eats most of the step.
					moved := rl.Vector3Subtract(agents[i].Position, before)
					moved.Y = 0
					if sr.Blocked() && rl.Vector3Length(moved) < 0.25*speed*dt {
						headings[i] = rl.Vector3RotateByQuaternion(headings[i], turn)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	res.elapsed = time.Since(start)

	for _, a := range agents {
		if a.IsGrounded() {
			res.grounded++
		}
	}
	return res, nil
}
