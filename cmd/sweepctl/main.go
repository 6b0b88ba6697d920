// Command sweepctl runs sphere and ray queries against scene files without a
// window.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sweep3d/internal/config"
	"sweep3d/internal/engine"
	"sweep3d/internal/logging"
	"sweep3d/internal/physics"
	"sweep3d/internal/world"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagFrom   = "from"
	flagDisp   = "disp"
	flagRadius = "radius"
	flagObject = "object"
)

var errVector = errors.New("expected three comma separated numbers")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sweepctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sweepctl",
		Usage: "trace spheres and rays through scene files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   "sweep3d.toml",
				Usage:   "TOML configuration; missing file uses defaults",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "log every slide step",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "list the objects of a scene",
				ArgsUsage: "<scene>",
				Action:    inspectAction,
			},
			{
				Name:      "validate",
				Usage:     "check a scene file and report every problem",
				ArgsUsage: "<scene>",
				Action:    validateAction,
			},
			{
				Name:      "convert",
				Usage:     "rewrite a scene in the format of the output extension",
				ArgsUsage: "<in> <out>",
				Action:    convertAction,
			},
			{
				Name:      "trace",
				Usage:     "sweep a sphere (or a ray with radius 0) and print the nearest hit",
				ArgsUsage: "<scene>",
				Flags:     append(queryFlags(), &cli.StringFlag{Name: flagObject, Usage: "only test the named object"}),
				Action:    traceAction,
			},
			{
				Name:      "slide",
				Usage:     "run collide-and-slide and print where the sphere ends up",
				ArgsUsage: "<scene>",
				Flags:     queryFlags(),
				Action:    slideAction,
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64SliceFlag{Name: flagFrom, Usage: "start center x,y,z", Required: true},
		&cli.Float64SliceFlag{Name: flagDisp, Usage: "displacement x,y,z", Required: true},
		&cli.Float64Flag{Name: flagRadius, Usage: "sphere radius, 0 for a ray; defaults to the agent radius", Value: -1},
	}
}

type env struct {
	cfg    config.Config
	logger *zap.Logger
	level  *world.Level
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := config.LoadOrDefault(c.String(flagConfig))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Debug || c.Bool(flagDebug))
	if err != nil {
		return nil, err
	}
	if c.NArg() < 1 {
		return nil, errors.New("missing scene argument")
	}
	level, err := world.Load(c.Args().First(), nil)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, level: level}, nil
}

func (e *env) world() *physics.World {
	return physics.NewWorld(e.level.Scene,
		physics.WithSettings(e.cfg.PhysicsSettings()),
		physics.WithLogger(e.logger),
	)
}

func vector(c *cli.Context, name string) (rl.Vector3, error) {
	v := c.Float64Slice(name)
	if len(v) != 3 {
		return rl.Vector3{}, fmt.Errorf("--%s: %w", name, errVector)
	}
	return rl.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}, nil
}

func query(c *cli.Context, e *env) (from, disp rl.Vector3, radius float32, err error) {
	if from, err = vector(c, flagFrom); err != nil {
		return
	}
	if disp, err = vector(c, flagDisp); err != nil {
		return
	}
	radius = e.cfg.Agent.Radius
	if r := c.Float64(flagRadius); r >= 0 {
		radius = float32(r)
	}
	return
}

func inspectAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.SetTitle("%s: %d objects, %d meshes", e.level.Name, e.level.Scene.Len(), e.level.MeshCount())
	t.AppendHeader(table.Row{"#", "Handle", "Name", "Tags", "Position", "Triangles", "Radius", "ID"})
	i := 0
	e.level.Scene.Each(func(h engine.Handle, o *engine.Object) {
		tris, radius := 0, float32(0)
		if o.Mesh != nil {
			tris, radius = o.Mesh.TriangleCount(), o.Mesh.BoundingRadius()
		}
		t.AppendRow(table.Row{i, h, o.Name, strings.Join(o.Tags, ","), fmtVec(o.Position), tris,
			fmt.Sprintf("%.3f", radius), o.ID})
		i++
	})
	t.Render()
	return nil
}

func validateAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("missing scene argument")
	}
	_, err := world.ReadSceneFile(c.Args().First())
	if err == nil {
		fmt.Fprintln(c.App.Writer, "ok")
		return nil
	}
	for _, e := range multierr.Errors(errors.Unwrap(err)) {
		fmt.Fprintln(c.App.Writer, "-", e)
	}
	return err
}

func convertAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("convert needs <in> and <out>")
	}
	sf, err := world.ReadSceneFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	return world.WriteSceneFile(c.Args().Get(1), sf)
}

func traceAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	from, disp, radius, err := query(c, e)
	if err != nil {
		return err
	}

	w := e.world()
	var hit physics.CollisionHit
	if name := c.String(flagObject); name != "" {
		h, o := e.level.Scene.FindByName(name)
		if o == nil {
			return fmt.Errorf("no object named %q", name)
		}
		hit = w.CollideObject(h, from, disp, radius)
	} else {
		hit = w.Collide(from, disp, radius)
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Hit", "Object", "T", "Center", "Point", "Normal"})
	if !hit.Hit {
		t.AppendRow(table.Row{false, "", 1, fmtVec(rl.Vector3Add(from, disp)), "", ""})
	} else {
		name := ""
		if o, ok := e.level.Scene.Get(hit.Object); ok {
			name = o.Name
		}
		t.AppendRow(table.Row{true, name, fmt.Sprintf("%.5f", hit.T), fmtVec(hit.Center), fmtVec(hit.Point), fmtVec(hit.Normal)})
	}
	t.Render()
	return nil
}

func slideAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	from, disp, radius, err := query(c, e)
	if err != nil {
		return err
	}

	res := e.world().CollideAndSlide(from, disp, radius)

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Start", "Requested", "Final", "Iterations", "Contacts", "Reason"})
	t.AppendRow(table.Row{fmtVec(from), fmtVec(rl.Vector3Add(from, disp)), fmtVec(res.Position),
		res.Iterations, res.Contacts, res.Reason})
	t.Render()
	return nil
}

func fmtVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
