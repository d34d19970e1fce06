package cmd

import (
	"strings"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/urfave/cli"
)

// Seed used when none is given on the command line
const defaultSeed = 42

// NewApp assembles the command line application.
func NewApp() *cli.App {
	// -v is taken by verbosity
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render sphere scenes using path tracing"
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
			Usage: "render a built-in scene",
			Description: `
Render one of the built-in scenes with a tile based worker pool. The image is
refined over several passes; only the final pass is written to the output.

Size and sampling flags left at 0 keep the scene's own defaults. Use "-" as
the output file to write to standard output.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "scene to render (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounces (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 4,
					Usage: "number of progressive passes",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = one per CPU)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaultSeed,
					Usage: "seed for scene generation and sampling",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "image format: " + strings.Join(output.Formats(), ", ") + " (default: from the output file extension)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve progressive renders over HTTP",
			Description: `
Start an HTTP server that renders built-in scenes on request and streams every
tile and pass to the client as server-sent events.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
			},
			Action: Serve,
		},
	}

	return app
}
