// Command contentcheck validates the game's authored content: item assets,
// the player prefab and every level.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/entity"
	"github.com/milk9111/cemetery/item"
	"github.com/milk9111/cemetery/levels"
	"github.com/milk9111/cemetery/logger"
	"github.com/milk9111/cemetery/physics"
	"github.com/milk9111/cemetery/prefabs"
)

func main() {
	verbose := flag.Bool("v", false, "log every checked asset")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	l, err := logger.New(logger.Config{Level: level, Format: "console", Development: true})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	if err := check(os.Stdout, l); err != nil {
		l.Error("content check failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

func check(out io.Writer, l *zap.Logger) error {
	catalog, err := item.LoadCatalog(prefabs.Assets(), prefabs.ItemsDir)
	if err != nil {
		return err
	}
	for _, id := range catalog.IDs() {
		def, _ := catalog.Get(id)
		l.Debug("item ok", zap.String("id", id), zap.Stringer("item", def))
	}

	if _, err := prefabs.PlayerControllerSpec("player.yaml"); err != nil {
		return err
	}
	for _, name := range []string{"player.yaml", "pickable.yaml"} {
		if _, err := entity.BuildEntity(ecs.NewWorld(), name); err != nil {
			return err
		}
		l.Debug("prefab ok", zap.String("prefab", name))
	}

	names, err := levels.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		lvl, err := levels.Load(name)
		if err != nil {
			return err
		}
		phys := physics.NewWorld()
		if _, err := entity.LoadLevelToWorld(ecs.NewWorld(), lvl, catalog, phys); err != nil {
			return err
		}
		l.Debug("level ok", zap.String("level", name), zap.Int("solids", len(phys.Boxes())))
	}

	_, err = fmt.Fprintf(out, "ok: %d items, 2 prefabs, %d levels\n", catalog.Len(), len(names))
	return err
}
