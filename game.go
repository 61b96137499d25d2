package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/config"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/ecs/entity"
	"github.com/milk9111/cemetery/ecs/system"
	"github.com/milk9111/cemetery/hud"
	"github.com/milk9111/cemetery/interact"
	"github.com/milk9111/cemetery/inventory"
	"github.com/milk9111/cemetery/item"
	"github.com/milk9111/cemetery/levels"
	"github.com/milk9111/cemetery/logger"
	"github.com/milk9111/cemetery/physics"
	"github.com/milk9111/cemetery/prefabs"
)

const (
	pickableTag = "pickable"
	iconSize    = 24
	iconMargin  = 16
)

type Game struct {
	cfg *config.Config
	log *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	physics   *physics.World
	controls  *system.PlayerControls

	catalog   *item.Catalog
	level     *levels.Level
	player    ecs.Entity
	inventory *inventory.Inventory

	hud        *hud.HUD
	menu       *hud.Menu
	notes      *hud.NoteScreen
	interactor *interact.Interactor

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	watcher *prefabs.Watcher
	frames  int
}

func NewGame(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{cfg: cfg, log: log}

	catalog, err := item.LoadCatalog(prefabs.Assets(), prefabs.ItemsDir)
	if err != nil {
		return nil, err
	}
	g.catalog = catalog

	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, err
	}
	g.level = lvl

	g.world = ecs.NewWorld()
	g.physics = physics.NewWorld()
	loaded, err := entity.LoadLevelToWorld(g.world, lvl, catalog, g.physics)
	if err != nil {
		return nil, err
	}
	g.player = loaded.Player

	g.controls = system.NewPlayerControls(g.world)
	g.notes, err = hud.NewNoteScreen(g.closeNote)
	if err != nil {
		return nil, err
	}
	g.menu = hud.NewMenu(g.notes, g.controls, hud.SystemCursor, logger.Named(log, "menu"))

	g.hud = hud.New(
		newIcon(colornames.Goldenrod, "Mausoleum key", iconMargin, iconMargin),
		newIcon(colornames.Lightslategray, "Box key", iconMargin, iconMargin*2+iconSize),
		&hud.Icon{Label: "[E] Pick up", X: common.BaseWidth/2 - 40, Y: common.BaseHeight/2 + 40},
		g.menu,
	)
	g.inventory = inventory.New(g.hud, logger.Named(log, "inventory"))
	g.interactor = interact.New(pickableTag, g.inventory, g.hud, logger.Named(log, "interact"))

	triggers := system.NewTriggerSystem()
	triggers.Listen(g.player, g.interactor)

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(cfg.MouseSensitivity, cfg.GamepadLookSpeed),
		triggers,
		system.NewPlayerControllerSystem(g.physics, g.interactor),
		system.NewCameraLookSystem(),
		system.NewPickupHoverSystem(),
		system.NewTTLSystem(),
	)
	g.render = system.NewRenderSystem()
	g.pauseUI = NewPauseUI(g)

	if cfg.Debug && cfg.WatchPrefabs {
		g.startWatcher()
	}

	log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("pickables", len(loaded.Pickables)),
		zap.Int("items", catalog.Len()),
	)
	return g, nil
}

func newIcon(clr color.Color, label string, x, y float64) *hud.Icon {
	img := ebiten.NewImage(iconSize, iconSize)
	img.Fill(clr)
	return &hud.Icon{Image: img, Label: label, X: x, Y: y}
}

func (g *Game) startWatcher() {
	dirs := []string{"prefabs", filepath.Join("prefabs", prefabs.ItemsDir)}
	var existing []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		g.log.Debug("no prefab directory on disk, hot reload disabled")
		return
	}

	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		g.log.Warn("prefab watcher unavailable", zap.Error(err))
		return
	}
	g.watcher = w
	g.log.Info("watching prefabs", zap.Strings("dirs", existing))
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case g.menu.IsNoteOpen():
			g.closeNote()
		default:
			g.setPaused(!g.paused)
		}
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.notes.Update()
	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) closeNote() {
	g.menu.CloseNote()
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.controls.SetControlsEnabled(!paused)
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	g.log.Debug("pause toggled", zap.Bool("paused", paused))
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reloadPrefab(path); err != nil {
				g.log.Warn("prefab reload failed", zap.String("path", path), zap.Error(err))
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

// reloadPrefab applies an edited prefab to the running world. Item assets
// rebuild the catalog and rebind placed pickables; the player prefab swaps
// in new controller tuning.
func (g *Game) reloadPrefab(path string) error {
	if prefabs.IsItemAsset(path) {
		catalog, err := item.LoadCatalog(prefabs.Assets(), prefabs.ItemsDir)
		if err != nil {
			return err
		}
		g.catalog = catalog
		rebound := 0
		ecs.ForEach(g.world, component.PickableComponent.Kind(), func(e ecs.Entity, p *component.Pickable) {
			if p.Item == nil {
				return
			}
			if def, err := catalog.Get(p.Item.ID); err == nil {
				p.Item = def
				rebound++
			}
		})
		g.log.Info("items reloaded", zap.Int("items", catalog.Len()), zap.Int("rebound", rebound))
		return nil
	}

	if filepath.Base(path) != "player.yaml" {
		g.log.Debug("prefab change ignored", zap.String("path", path))
		return nil
	}
	spec, err := prefabs.PlayerControllerSpec("player.yaml")
	if err != nil {
		return err
	}
	if err := entity.ApplyPlayerController(g.world, g.player, spec); err != nil {
		return err
	}
	g.log.Info("player tuning reloaded")
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)
	g.notes.Draw(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, g.debugLine(), 0, common.BaseHeight-16)
	}
}

func (g *Game) debugLine() string {
	line := fmt.Sprintf("FPS: %.1f  items: %d", ebiten.ActualFPS(), g.inventory.Len())
	t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	st, ok2 := ecs.Get(g.world, g.player, component.MovementStateComponent.Kind())
	if !ok || !ok2 {
		return line
	}
	return line + fmt.Sprintf("  pos: %.2f %.2f %.2f  yaw: %.0f  pitch: %.0f  grounded: %t  crouch: %t  tracking: %s",
		t.X, t.Y, t.Z, t.Yaw, st.Pitch, st.Grounded, st.Crouching, g.interactor.State())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
