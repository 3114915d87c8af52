package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	recordCharW = 8
	recordCharH = 16
)

// Recorder turns canvas frames into an animated GIF. Index 0 is the
// background, 1 uncolored dots, 2.. the theme palette.
type Recorder struct {
	palette color.Palette
	frames  []*image.Paletted
}

func NewRecorder(theme Theme) *Recorder {
	pal := color.Palette{color.Black, color.White}
	for _, c := range theme.Palette {
		r, g, b := parseHex(string(c))
		pal = append(pal, color.RGBA{uint8(r), uint8(g), uint8(b), 0xff})
	}
	return &Recorder{palette: pal}
}

func (r *Recorder) Frames() int { return len(r.frames) }

// Capture rasterises the canvas, one dot block per Braille dot.
func (r *Recorder) Capture(c *Canvas) {
	imgW, imgH := c.Width*recordCharW, c.Height*recordCharH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), r.palette)
	dotW, dotH := recordCharW/2, recordCharH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - 0x2800)
			if pattern == 0 {
				continue
			}
			idx := uint8(1)
			if ci := c.Colors[row][col]; ci >= 0 && ci+2 < len(r.palette) {
				idx = uint8(ci + 2)
			}
			baseX, baseY := col*recordCharW, row*recordCharH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes every captured frame at 50 fps. It does nothing without
// frames.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
