package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/arran4/memowall"
	"github.com/arran4/memowall/internal/config"
	"github.com/arran4/memowall/internal/termimg"
)

// Sentinel errors for CLI I/O.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
	ErrUnsupported = errors.New("unsupported output extension")
)

type cliFlags struct {
	in, out    string
	configPath string
	size       string
	pt         int
	minScale   float64
	noScale    bool
	plain      bool
	dialect    string
	theme      string
	fontReg    string
	fontBold   string
	fontMono   string
	wrap       bool
	wrapMode   string
	wrapOut    string
	stripOut   string
	preview    bool
	verbose    bool
}

func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("memowall", flag.ContinueOnError)
	fs.StringVarP(&f.in, "in", "i", "", "Input memo file (default: stdin)")
	fs.StringVarP(&f.out, "out", "o", "memo.bmp", "Output image file (.bmp, .png, .jpg or .tiff)")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.size, "size", "s", "", "Canvas size WIDTHxHEIGHT (default 1280x720)")
	fs.IntVar(&f.pt, "pt", 0, "Base font size in pixels (default 36)")
	fs.Float64Var(&f.minScale, "min-scale", 0, "Smallest auto-scale factor (default 0.5)")
	fs.BoolVar(&f.noScale, "no-autoscale", false, "Do not shrink content to fit the canvas")
	fs.BoolVar(&f.plain, "plain", false, "Draw the text literally, without markdown")
	fs.StringVar(&f.dialect, "dialect", "", "Markdown dialect: memo|commonmark")
	fs.StringVar(&f.theme, "theme", "", "Theme: light|dark")
	fs.StringVar(&f.fontReg, "font", "", "Path to regular font (TTF/OTF/TTC; default Go Regular)")
	fs.StringVar(&f.fontBold, "fontbold", "", "Path to bold font (default Go Bold)")
	fs.StringVar(&f.fontMono, "fontmono", "", "Path to mono font (default Go Mono)")
	fs.BoolVar(&f.wrap, "wrap", false, "Hard-wrap the input before rendering")
	fs.StringVar(&f.wrapMode, "wrap-mode", "", "Wrap by character budget or measured width: chars|pixels")
	fs.StringVar(&f.wrapOut, "wrap-out", "", "Write the wrapped text to this path (may be the input file)")
	fs.StringVar(&f.stripOut, "strip-out", "", "Write the memo with markup removed to this path")
	fs.BoolVar(&f.preview, "preview", false, "Show the result in the terminal (kitty, iTerm2, sixel)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging to stderr")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, fs, err
	}
	return f, fs, nil
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, _, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(stderr, "memowall:", err)
		return ExitUsage
	}
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	memowall.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if err := convert(f, stdin, stdout); err != nil {
		fmt.Fprintln(stderr, "memowall:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func loadConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	if f.size != "" {
		w, h, err := config.ParseSize(f.size)
		if err != nil {
			return nil, err
		}
		cfg.Canvas = config.CanvasConfig{Width: w, Height: h}
	}
	if f.pt > 0 {
		cfg.Font.Size = f.pt
	}
	if f.minScale != 0 {
		cfg.Layout.MinScale = f.minScale
	}
	if f.noScale {
		off := false
		cfg.Layout.AutoScale = &off
	}
	if f.plain {
		off := false
		cfg.Markdown = &off
	}
	if f.dialect != "" {
		cfg.Dialect = f.dialect
	}
	if f.theme != "" {
		cfg.Theme.Name = f.theme
	}
	if f.fontReg != "" {
		cfg.Font.Regular = f.fontReg
	}
	if f.fontBold != "" {
		cfg.Font.Bold = f.fontBold
	}
	if f.fontMono != "" {
		cfg.Font.Mono = f.fontMono
	}
	if f.wrap {
		cfg.Wrap.Enabled = true
	}
	if f.wrapMode != "" {
		cfg.Wrap.Mode = f.wrapMode
	}
	if f.wrapOut != "" {
		cfg.Wrap.Output = f.wrapOut
	}
	return cfg, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- input path is user-provided
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return data, nil
}

func convert(f *cliFlags, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	data, err := readInput(f.in, stdin)
	if err != nil {
		return err
	}
	text := string(data)

	if cfg.Wrap.Enabled || cfg.Wrap.Output != "" {
		text, err = wrapText(text, cfg, opts)
		if err != nil {
			return err
		}
		if cfg.Wrap.Output != "" {
			if err := writeText(cfg.Wrap.Output, text); err != nil {
				return err
			}
		}
	}
	if f.stripOut != "" {
		if err := writeText(f.stripOut, memowall.StripMarkup(text)); err != nil {
			return err
		}
	}

	img, err := memowall.Render([]byte(text), opts)
	if err != nil {
		return err
	}
	if err := writeImage(f.out, img); err != nil {
		return err
	}
	if f.preview {
		if _, err := termimg.Write(stdout, img, termimg.Detect()); err != nil {
			return fmt.Errorf("%w: preview: %w", ErrWriteOutput, err)
		}
	}
	return nil
}

// wrapText applies the configured wrapper. Character mode mirrors the
// budget used for the persisted plain-text copy; pixel mode measures with
// the regular face at the base size.
func wrapText(text string, cfg *config.Config, opts memowall.RenderOptions) (string, error) {
	margins := cfg.Margins.Margins()
	switch strings.ToLower(cfg.Wrap.Mode) {
	case "", "chars":
		n := memowall.MaxCharsForWidth(cfg.Canvas.Width, float64(cfg.Font.Size), margins.Left+margins.Right)
		return memowall.Wrap(text, n), nil
	case "pixels":
		res, err := memowall.NewResolver(opts.Fonts)
		if err != nil {
			return "", err
		}
		face, err := res.Face(memowall.StyleNormal, cfg.Font.Size)
		if err != nil {
			return "", err
		}
		return memowall.WrapMeasured(text, face, cfg.Canvas.Width-margins.Left-margins.Right), nil
	default:
		return "", fmt.Errorf("%w: wrap mode %q", config.ErrConfigParse, cfg.Wrap.Mode)
	}
}

func writeText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { // #nosec G306 -- user document
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func writeImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(io.Writer, image.Image) error
	switch ext {
	case ".bmp":
		encode = bmp.Encode
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 92})
		}
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	file, err := os.Create(path) // #nosec G304 -- output path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := encode(file, img); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
