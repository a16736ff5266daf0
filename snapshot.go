package vterm

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFinder locates font files by name, for callers that want to name
// a system font instead of loading one by path.
type FontFinder interface {
	// Find returns the filesystem path to a font file matching the given name.
	Find(name string) (string, error)
}

// RenderPNGConfig controls how a RenderCommand batch is rasterized to an
// RGBA image. It is a debug utility, not the production render path —
// production consumers take the []RenderCommand batch directly and draw
// with their own GPU pipeline; this exists for dumping a snapshot during
// development or in a test failure.
type RenderPNGConfig struct {
	// Font face to use. If nil and FontName is empty, uses basicfont.Face7x13.
	Font font.Face

	// FontFinder locates FontName on disk. Optional.
	FontFinder FontFinder
	FontName   string
	FontSize   float64

	// CellWidth and CellHeight override the cell pixel size. If zero,
	// derived from font metrics.
	CellWidth  int
	CellHeight int

	// Cols and Rows size the output image. Required — the projector
	// doesn't carry grid dimensions itself.
	Cols int
	Rows int
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RenderPNG rasterizes a RenderCommand batch (as produced by
// GenerateRenderCommands or Terminal.Render) to an RGBA image, for
// debugging and test-failure dumps.
func RenderPNG(cmds []RenderCommand, cfg *RenderPNGConfig) *image.RGBA {
	face := cfg.Font
	if face == nil && cfg.FontFinder != nil && cfg.FontName != "" {
		size := cfg.FontSize
		if size == 0 {
			size = 14
		}
		if path, err := cfg.FontFinder.Find(cfg.FontName); err == nil {
			if loaded, err := LoadFont(path, size); err == nil {
				face = loaded
			}
		}
	}
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth, cellHeight := cfg.CellWidth, cfg.CellHeight
	if cellWidth == 0 || cellHeight == 0 {
		metrics := face.Metrics()
		if cellWidth == 0 {
			if adv, ok := face.GlyphAdvance('M'); ok {
				cellWidth = adv.Ceil()
			}
			if cellWidth == 0 {
				cellWidth = 7
			}
		}
		if cellHeight == 0 {
			cellHeight = metrics.Height.Ceil()
		}
	}

	imgWidth := cfg.Cols * cellWidth
	imgHeight := cfg.Rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	bg := color.RGBA{A: 255}
	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, bg)
		}
	}

	metrics := face.Metrics()
	for _, cmd := range cmds {
		x := int(cmd.Col) * cellWidth
		y := int(cmd.Row) * cellHeight
		if x < 0 || y < 0 || x >= imgWidth || y >= imgHeight {
			continue
		}

		cellBg := color.RGBA{R: cmd.Bg.R, G: cmd.Bg.G, B: cmd.Bg.B, A: 255}
		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				img.Set(x+px, y+py, cellBg)
			}
		}

		if cmd.Char == 0 || cmd.Char == ' ' {
			continue
		}

		fg := color.RGBA{R: cmd.Fg.R, G: cmd.Fg.G, B: cmd.Fg.B, A: 255}
		baseline := y + metrics.Ascent.Ceil()
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(fg),
			Face: face,
			Dot:  fixed.P(x, baseline),
		}
		d.DrawString(string(cmd.Char))

		if cmd.Flags.Has(FlagUnderline) {
			underlineY := baseline + 2
			if underlineY < imgHeight {
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, underlineY, fg)
				}
			}
		}
		if cmd.Flags.Has(FlagStrikethrough) {
			strikeY := y + cellHeight/2
			for px := 0; px < cellWidth; px++ {
				img.Set(x+px, strikeY, fg)
			}
		}
	}

	return img
}
