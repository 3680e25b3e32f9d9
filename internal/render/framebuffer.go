package render

import "image/color"

type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d int) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
}

func (fb *FrameBuffer) Bounds() Rect {
	return Rect{W: fb.W, H: fb.H}
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

func (fb *FrameBuffer) FillRect(r Rect, c color.RGBA) {
	fb.FillRectClipped(r, fb.Bounds(), c)
}

// FillRectClipped fills the part of r that lies inside clip.
func (fb *FrameBuffer) FillRectClipped(r, clip Rect, c color.RGBA) {
	r = r.Intersect(clip).Intersect(fb.Bounds())
	if r.Empty() {
		return
	}
	for row := 0; row < r.H; row++ {
		off := ((r.Y+row)*fb.W + r.X) * 4
		for col := 0; col < r.W; col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

func (fb *FrameBuffer) StrokeRect(r Rect, line int, c color.RGBA) {
	if line <= 0 {
		line = 1
	}
	fb.FillRect(Rect{X: r.X, Y: r.Y, W: r.W, H: line}, c)
	fb.FillRect(Rect{X: r.X, Y: r.Y + r.H - line, W: r.W, H: line}, c)
	fb.FillRect(Rect{X: r.X, Y: r.Y, W: line, H: r.H}, c)
	fb.FillRect(Rect{X: r.X + r.W - line, Y: r.Y, W: line, H: r.H}, c)
}

func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if !fb.Bounds().Contains(x, y) {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: fb.Pixels[i+3]}
}
