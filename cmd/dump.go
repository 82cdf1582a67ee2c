package cmd

import (
	"os"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/path"
	"github.com/df07/go-light-transport/pkg/scene"
	"github.com/urfave/cli"
)

// sampleEyeSubpaths traces count eye subpaths terminated by Russian roulette
func sampleEyeSubpaths(sc core.Scene, rng *core.Random, count int) []*path.Subpath {
	subpaths := make([]*path.Subpath, 0, count)
	for i := 0; i < count; i++ {
		eye := &path.Subpath{Dir: core.EL}
		eye.SampleSubpathFromEndpoint(sc, rng, core.EL, -1)
		subpaths = append(subpaths, eye)
	}
	return subpaths
}

// DumpPaths writes the vertex positions of randomly sampled eye subpaths.
func DumpPaths(ctx *cli.Context) error {
	setupLogging(ctx)

	width, height := ctx.Int("width"), ctx.Int("height")
	sc, err := scene.Builtin(ctx.String("scene"), float64(width)/float64(height))
	if err != nil {
		return err
	}

	subpaths := sampleEyeSubpaths(sc, core.NewRandom(uint64(ctx.Int64("seed"))), ctx.Int("count"))
	out := ctx.String("out")
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := path.WriteSubpathPositions(file, subpaths); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.Noticef("wrote %d eye subpaths to %s", len(subpaths), out)
	return nil
}
