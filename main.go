package main

import (
	"fmt"
	"os"

	"github.com/df07/go-light-transport/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-light-transport"
	app.Usage = "render scenes with bidirectional path tracing and Metropolis light transport"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a builtin scene described by a configuration file",
			Description: `
Load a YAML, JSON or TOML configuration, build the builtin scene it names and run
the configured renderer (mltfixed or bdptfixed).

The film is written as PNG, TIFF or PFM depending on the output extension.`,
			ArgsUsage: "config.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "override the output image filename",
				},
				cli.StringFlag{
					Name:  "dump-paths",
					Usage: "write the recorded chain states to this file",
				},
				cli.StringFlag{
					Name:  "metrics",
					Usage: "write the process metrics in Prometheus text format to this file",
				},
				cli.StringFlag{
					Name:  "trace",
					Usage: "write the render spans to this file",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:   "scenes",
			Usage:  "list builtin scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "dump-paths",
			Usage: "sample eye subpaths and write their vertex positions",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "twospheres",
					Usage: "builtin scene id",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 320,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 240,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 100,
					Usage: "number of subpaths",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "paths.txt",
					Usage: "output filename",
				},
			},
			Action: cmd.DumpPaths,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
