// Command leveled runs the level editor overlay on an empty scene.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/config"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
	debugui_ebiten "github.com/plus3/leveled/ecs/debugui/ebiten"
	"github.com/plus3/leveled/editor"
	"github.com/plus3/leveled/flycam"
	"github.com/plus3/leveled/input"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
)

var background = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}

type Game struct {
	app     *app.App
	backend *debugui_ebiten.ImguiBackend
	timer   *debugui.FrameTimer
	camera  *ecs.View[struct {
		*scene.Transform
		*flycam.Flycam
	}]
}

func (g *Game) Update() error {
	dt := g.timer.Tick()
	g.backend.Frame(func() {
		g.app.Update(dt)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.backend.Draw(screen)

	for cam := range g.camera.Values() {
		p := cam.Transform.Translation
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("camera %.1f %.1f %.1f  pitch %.2f yaw %.2f", p.X(), p.Y(), p.Z(), cam.Flycam.Pitch, cam.Flycam.Yaw),
			210, screen.Bounds().Dy()-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// propsGroup is a user group appended after the built-in ones.
func propsGroup() *prefab.Group {
	grey := scene.RGB(0.6, 0.6, 0.6)

	pillar := prefab.New("Pillar", func(storage *ecs.Storage, at mgl32.Vec3) {
		storage.Spawn(
			scene.FromTranslation(at).WithScale(mgl32.Vec3{0.5, 3, 0.5}),
			scene.MeshRenderer{
				Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewCube(1))),
				Material: scene.StoreAsset(storage, scene.NewMaterial(grey)),
			},
			scene.NewName("Pillar"),
		)
	})

	sphere := prefab.New("Sphere", func(storage *ecs.Storage, at mgl32.Vec3) {
		storage.Spawn(
			scene.FromTranslation(at),
			scene.MeshRenderer{
				Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewUVSphere(0.5, 32, 16))),
				Material: scene.StoreAsset(storage, scene.NewMaterial(scene.Orange)),
			},
			scene.NewName("Sphere"),
		)
	})

	return prefab.NewGroup("Props").Add(pillar).Add(sphere)
}

func addProps(frame *ecs.UpdateFrame) {
	ecs.MustSingleton[prefab.Groups](frame.Storage).Add(propsGroup())
}

func main() {
	configPath := flag.String("config", "leveled.yaml", "Path to the YAML settings file.")
	width := flag.Int("width", 0, "Window width; overrides the settings file.")
	height := flag.Int("height", 0, "Window height; overrides the settings file.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	writeConfig := flag.Bool("write-config", false, "Print the effective settings as YAML and exit.")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Error("could not load settings", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if _, err := os.Stat(*configPath); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("settings file not found, using defaults", "path", *configPath)
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}

	if *writeConfig {
		data, err := settings.Marshal()
		if err != nil {
			logger.Error("could not encode settings", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	backend := debugui_ebiten.New(settings.Window.Title, settings.Window.Width, settings.Window.Height)

	a := app.New(app.WithLogger(logger)).
		AddPlugins(
			input.Plugin{Source: &input.EbitenSource{}},
			editor.Plugin{Config: settings.EditorConfig()},
		).
		AddStartupSystems(ecs.SystemFunc(addProps))

	game := &Game{
		app:     a,
		backend: backend,
		timer:   debugui.NewFrameTimer(),
		camera: ecs.NewView[struct {
			*scene.Transform
			*flycam.Flycam
		}](a.Storage),
	}

	logger.Info("starting editor",
		"config", *configPath,
		"width", settings.Window.Width,
		"height", settings.Window.Height,
	)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game loop stopped", "error", err)
		os.Exit(1)
	}
}
