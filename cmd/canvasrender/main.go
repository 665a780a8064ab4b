// Command canvasrender decodes a Grida JSON document and rasterizes it to
// a PNG, as a minimal host for pkg/ingest, pkg/renderer, and pkg/raster.
package main

import (
	"os"

	"github.com/grida-canvas/canvas-core/cmd/canvasrender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
