// canvaskit - Wheel-of-fortune and bar graph image generation.
//
// Usage:
//
//	canvaskit wheel --doc <path> [--data <path>] [-o <file>] [--spin <sec>] [-v]
//	canvaskit graph --doc <path> [--data <path>] [-o <file>] [-v]
//	canvaskit info --doc <path>
//	canvaskit init
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/games"
	"github.com/xob0t/canvaskit/pkg/generator"
	"github.com/xob0t/canvaskit/pkg/graphs"
	"github.com/xob0t/canvaskit/pkg/template"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case template.KindWheel, template.KindGraph:
		err = run(ctx, os.Args[1], os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		stop()
		fatal(err)
	}
}

func run(ctx context.Context, kind string, args []string) error {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)

	var (
		output  string
		docPath string
		data    string
		spin    float64
		verbose bool
	)

	fs.StringVar(&output, "o", "", "Output file path (.png, .jpg, .bmp or .avi)")
	fs.StringVar(&output, "output", "", "Output file path (.png, .jpg, .bmp or .avi)")
	fs.StringVar(&docPath, "doc", "", "Path to a zip bundle or document JSON")
	fs.StringVar(&data, "data", "", "Path to data.json (optional)")
	if kind == template.KindWheel {
		fs.Float64Var(&spin, "spin", 0, "Spin animation length in seconds (AVI)")
	}
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(verbose)

	if docPath == "" {
		printUsage()
		return fmt.Errorf("--doc is required")
	}

	doc, cleanup, err := loadDocument(docPath)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	defer cleanup()

	if doc.Kind == "" {
		doc.Kind = kind
	}
	if doc.Kind != kind {
		return fmt.Errorf("%s is a %q document, not %q", docPath, doc.Kind, kind)
	}
	if output == "" {
		output = doc.Output
	}
	if output == "" {
		output = kind + ".png"
	}

	if data != "" {
		spec, warnings, err := template.LoadData(data)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		warn(warnings)
		warn(template.ValidateData(spec, doc))
		doc = template.MergeData(doc, spec)
	}
	warn(template.Validate(doc))
	warn(template.RegisterFonts(doc))

	fmt.Printf("Rendering %s: %s\n", kind, doc.Meta.Name)

	var cfg generator.Config
	switch kind {
	case template.KindWheel:
		cfg, err = renderWheel(ctx, doc, spin, output)
	case template.KindGraph:
		cfg, err = renderGraph(ctx, doc)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := generator.Generate(output, cfg); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func renderWheel(ctx context.Context, doc *template.Document, spin float64, output string) (generator.Config, error) {
	tiles, opts, err := template.BuildWheel(ctx, doc, nil)
	if err != nil {
		return generator.Config{}, err
	}
	wheel, err := games.WheelOfFortune(tiles, opts)
	if err != nil {
		return generator.Config{}, err
	}

	animate := spin > 0 || strings.EqualFold(filepath.Ext(output), ".avi")
	if !animate {
		return generator.Config{Image: wheel}, nil
	}

	spinOpts, fps := template.BuildSpin(doc, spin)
	frames, err := games.SpinFrames(wheel, spinOpts)
	if err != nil {
		return generator.Config{}, err
	}
	slog.Debug("spin animation", "frames", len(frames), "fps", fps, "landing", spinOpts.Landing)

	cfg := generator.Config{FPS: fps, Frames: make([]image.Image, len(frames))}
	for i, f := range frames {
		cfg.Frames[i] = f
	}
	return cfg, nil
}

func renderGraph(ctx context.Context, doc *template.Document) (generator.Config, error) {
	entries, opts, err := template.BuildGraph(doc)
	if err != nil {
		return generator.Config{}, err
	}
	img, err := graphs.BarGraph(ctx, entries, opts)
	if err != nil {
		return generator.Config{}, err
	}
	return generator.Config{Image: img}, nil
}

// loadDocument opens a zip bundle or a standalone JSON document.
func loadDocument(path string) (*template.Document, func(), error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := template.ParseDocumentFile(path)
		return doc, func() {}, err
	}
	return template.LoadBundle(path)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var docPath string
	fs.StringVar(&docPath, "doc", "", "Path to a zip bundle or document JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if docPath == "" {
		return fmt.Errorf("--doc is required for info command")
	}

	doc, cleanup, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Print(template.Describe(doc))
	for _, w := range template.Validate(doc) {
		fmt.Printf("Warning: %s\n", w)
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var wheelOut, graphOut, dataOut string
	fs.StringVar(&wheelOut, "wheel", "wheel.json", "Output path for sample wheel document")
	fs.StringVar(&graphOut, "graph", "graph.json", "Output path for sample graph document")
	fs.StringVar(&dataOut, "data", "data.json", "Output path for sample graph data")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w, g, d := template.GetExampleJSON()

	for _, f := range []struct{ path, body string }{
		{wheelOut, w},
		{graphOut, g},
		{dataOut, d},
	} {
		if err := os.WriteFile(f.path, []byte(f.body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}

	fmt.Printf("Created: %s, %s, %s\n", wheelOut, graphOut, dataOut)
	fmt.Println("Run: canvaskit wheel --doc wheel.json -o wheel.avi --spin 3")
	fmt.Println("     canvaskit graph --doc graph.json --data data.json -o graph.png")
	return nil
}

// setupLogging sends library logs to stderr. Warnings always show; -v adds
// debug output.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	canvas.SetLogger(logger)
}

func warn(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`canvaskit - Wheel and Graph Image Generation (Pure Go)

USAGE:
    canvaskit wheel --doc <path> [--data <path>] [-o <file>] [--spin <sec>] [-v]
    canvaskit graph --doc <path> [--data <path>] [-o <file>] [-v]
    canvaskit info --doc <path>
    canvaskit init [options]

OPTIONS:
    --doc <path>           Zip bundle (document.json + assets) or document JSON
    --data <path>          Data JSON with overrides (optional)
    -o, --output <path>    Output file (.png, .jpg, .bmp or .avi)
    --spin <sec>           Wheel only: render a spin animation of this length
    -v                     Verbose logging

INFO:
    canvaskit info --doc <path>         Summarise a document and its warnings

EXAMPLES:
    canvaskit init
    canvaskit wheel --doc wheel.json -o wheel.png
    canvaskit wheel --doc prizes.zip -o spin.avi --spin 4
    canvaskit graph --doc graph.json --data data.json -o board.png
    canvaskit info --doc prizes.zip
`)
}
