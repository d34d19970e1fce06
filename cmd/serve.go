package cmd

import (
	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve renders over HTTP until the listener fails.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d/api/render?scene=default to start rendering", port)

	return server.NewServer(port).Start()
}
