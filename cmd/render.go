package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/film"
	"github.com/df07/go-light-transport/pkg/path"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
	"github.com/urfave/cli"
)

// job is a render described by a configuration file
type job struct {
	seed     uint64
	scene    string
	width    int
	height   int
	output   string
	renderer renderer.Renderer
}

func loadJob(node *config.Node) (*job, error) {
	j := &job{}
	seed, err := node.Int64Or("seed", 1)
	if err != nil {
		return nil, err
	}
	j.seed = uint64(seed)
	if j.scene, err = node.StringOr("scene.name", "twospheres"); err != nil {
		return nil, err
	}
	if j.width, err = node.IntOr("scene.width", 320); err != nil {
		return nil, err
	}
	if j.height, err = node.IntOr("scene.height", 240); err != nil {
		return nil, err
	}
	if j.width <= 0 || j.height <= 0 {
		return nil, fmt.Errorf("invalid film size %dx%d", j.width, j.height)
	}
	if j.output, err = node.StringOr("output", "render.png"); err != nil {
		return nil, err
	}

	rendererNode := node.Child("renderer")
	typ, err := rendererNode.String("type")
	if err != nil {
		return nil, err
	}
	if j.renderer, err = renderer.New(typ); err != nil {
		return nil, err
	}
	if err = j.renderer.Initialize(rendererNode); err != nil {
		return nil, err
	}
	return j, nil
}

// Render loads a configuration file, renders the scene it names and saves the film.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing configuration file argument")
	}
	node, err := config.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	j, err := loadJob(node)
	if err != nil {
		return err
	}
	if out := ctx.String("out"); out != "" {
		j.output = out
	}

	sc, err := scene.Builtin(j.scene, float64(j.width)/float64(j.height))
	if err != nil {
		return err
	}
	f := film.New(j.width, j.height)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if traceFile := ctx.String("trace"); traceFile != "" {
		file, err := os.Create(traceFile)
		if err != nil {
			return err
		}
		defer file.Close()
		shutdown, err := setupTracing(file)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warningf("flushing spans: %v", err)
			}
		}()
	}

	logger.Noticef("rendering scene %q at %dx%d", j.scene, j.width, j.height)
	diag, err := j.renderer.Render(renderCtx, sc, core.NewRandom(j.seed), f)
	if err != nil {
		return err
	}
	logger.Noticef("render statistics\n%s", formatDiagnostics(diag))

	if err := f.Save(j.output); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", j.output)

	if dumpFile := ctx.String("dump-paths"); dumpFile != "" {
		if err := writePaths(dumpFile, diag.Paths); err != nil {
			return err
		}
		logger.Noticef("wrote %d paths to %s", len(diag.Paths), dumpFile)
	}

	if metricsFile := ctx.String("metrics"); metricsFile != "" {
		if err := writeMetricsFile(metricsFile); err != nil {
			return err
		}
		logger.Noticef("wrote metrics to %s", metricsFile)
	}
	return nil
}

func writePaths(filename string, paths []*path.Path) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := path.WritePositions(file, paths); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
