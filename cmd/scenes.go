package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes with their default settings.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Size", "SPP", "Objects", "Description"})

	for _, info := range scene.ListScenes() {
		sc, err := info.Build(scene.Options{Seed: defaultSeed})
		if err != nil {
			return fmt.Errorf("building %q: %w", info.ID, err)
		}
		sampling := sc.GetSamplingConfig()
		table.Append([]string{
			info.ID,
			info.Name,
			fmt.Sprintf("%dx%d", sampling.Width, sampling.Height),
			fmt.Sprintf("%d", sampling.SamplesPerPixel),
			fmt.Sprintf("%d", sc.GetPrimitiveCount()),
			info.Description,
		})
	}

	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
