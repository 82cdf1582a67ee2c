package cmd

import (
	"bytes"

	"github.com/df07/go-light-transport/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the builtin scenes.
func ListScenes(ctx *cli.Context) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Description"})
	for _, info := range scene.ListScenes() {
		table.Append([]string{info.ID, info.Name, info.Description})
	}
	table.Render()

	logger.Noticef("builtin scenes\n%s", buf.String())
	return nil
}
