package ui

import (
	"postedit/internal/render"
)

type Layout struct {
	Scale   float32
	Menu    render.Rect
	Toolbar render.Rect
	Canvas  render.Rect
	Page    render.Rect
	Title   render.Rect
	Content render.Rect
	Status  render.Rect
}

// Dp converts density independent pixels at the layout scale.
func (l Layout) Dp(v int) int {
	return int(float32(v) * l.Scale)
}

func ComputeLayout(w, h int, theme Theme, scale float32) Layout {
	if scale <= 0 {
		scale = 1
	}
	l := Layout{Scale: scale}
	dp := l.Dp

	menuH := dp(theme.MenuHeightDp)
	toolbarH := dp(theme.ToolbarHeightDp)
	statusH := dp(theme.StatusHeightDp)
	margin := dp(theme.PageMarginDp)

	canvasY := menuH + toolbarH
	canvasH := max(h-canvasY-statusH, 0)

	pageW := min(w-margin*2, dp(theme.MaxPageWidthDp))
	pageW = max(pageW, dp(320))
	pageH := max(canvasH-margin*2, dp(200))
	pageX := (w - pageW) / 2
	pageY := canvasY + margin
	pad := dp(18)
	titleH := dp(40)

	l.Menu = render.Rect{W: w, H: menuH}
	l.Toolbar = render.Rect{Y: menuH, W: w, H: toolbarH}
	l.Canvas = render.Rect{Y: canvasY, W: w, H: canvasH}
	l.Page = render.Rect{X: pageX, Y: pageY, W: pageW, H: pageH}
	l.Title = render.Rect{X: pageX + pad, Y: pageY + pad, W: pageW - pad*2, H: titleH}
	l.Content = render.Rect{
		X: pageX + pad,
		Y: l.Title.Y + titleH + dp(8),
		W: max(pageW-pad*2, dp(100)),
		H: max(pageH-pad*2-titleH-dp(8), dp(100)),
	}
	l.Status = render.Rect{Y: h - statusH, W: w, H: statusH}
	return l
}

// DrawShell paints the window chrome and the empty page and returns the
// layout it used.
func DrawShell(fb *render.FrameBuffer, theme Theme, scale float32) Layout {
	l := ComputeLayout(fb.W, fb.H, theme, scale)

	fb.Clear(theme.AppBackground)

	fb.FillRect(l.Menu, theme.TopBar)
	fb.FillRect(l.Toolbar, theme.Toolbar)
	fb.StrokeRect(render.Rect{W: fb.W, H: l.Menu.H + l.Toolbar.H}, 1, theme.Border)

	fb.FillRect(l.Canvas, theme.Canvas)

	shadow := l.Page
	shadow.X += 2
	shadow.Y += 2
	fb.FillRect(shadow, theme.Shadow)
	fb.FillRect(l.Page, theme.Page)
	fb.StrokeRect(l.Page, 1, theme.Border)

	accent := l.Page
	accent.H = max(l.Dp(3), 1)
	fb.FillRect(accent, theme.Accent)

	title := l.Title
	title.Y += title.H - 1
	title.H = 1
	fb.FillRect(title, theme.Separator)

	fb.FillRect(l.Status, theme.StatusBar)
	fb.StrokeRect(l.Status, 1, theme.Border)
	return l
}
