package cmd

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/ingest"
	"github.com/grida-canvas/canvas-core/pkg/raster"
	"github.com/grida-canvas/canvas-core/pkg/renderer"
	"github.com/grida-canvas/canvas-core/pkg/resource"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a document to a PNG",
		Long: `Decode a Grida JSON document and rasterize it to a PNG file.

Flags:
  --input PATH    document JSON to render (required)
  --output PATH   PNG file to write (required)
  --width N       output width in logical pixels (default: scene width)
  --height N      output height in logical pixels (default: scene height)
  --dpi N         device pixel ratio (default: 1)
  --zoom N        camera zoom (default: 1)`,
		Usage: "canvasrender render --input doc.json --output out.png",
		Run:   runRender,
	})
}

type renderOptions struct {
	input, output string
	width, height int
	dpi, zoom     float64
}

func parseRenderFlags(args []string) (renderOptions, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var opts renderOptions
	fs.StringVar(&opts.input, "input", "", "document JSON to render (required)")
	fs.StringVar(&opts.output, "output", "", "PNG file to write (required)")
	fs.IntVar(&opts.width, "width", 0, "output width in logical pixels (default: scene width)")
	fs.IntVar(&opts.height, "height", 0, "output height in logical pixels (default: scene height)")
	fs.Float64Var(&opts.dpi, "dpi", 1, "device pixel ratio")
	fs.Float64Var(&opts.zoom, "zoom", 1, "camera zoom")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.input == "" || opts.output == "" {
		return opts, fmt.Errorf("--input and --output are required")
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderFlags(args)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.input, err)
	}

	sc, err := ingest.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", opts.input, err)
	}

	width, height := opts.width, opts.height
	if width == 0 || height == 0 {
		bounds := sc.Bounds(raster.LocalBounds)
		if width == 0 {
			width = int(bounds.Right) + 1
		}
		if height == 0 {
			height = int(bounds.Bottom) + 1
		}
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("document has no renderable bounds, pass --width and --height explicitly")
	}

	canvas := surface.NewSoftwareCanvas(width, height)

	r := renderer.NewRenderer()
	r.DPI = opts.dpi
	r.Camera = renderer.Camera{Zoom: opts.zoom}
	if sc.Background != nil {
		r.Background = sc.Background
	}

	env := &raster.Env{
		Images: resource.NewImageRepository().Snapshot(),
	}
	r.RenderScene(canvas, sc, env)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, float64(width), float64(height)))

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.output, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	fmt.Printf("wrote %s (%dx%d)\n", opts.output, width, height)
	return nil
}
