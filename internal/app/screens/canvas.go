package screens

import (
	"image"
	"strconv"
	"sync"

	"github.com/rook-computer/sketchpad/internal/render"
	"github.com/rook-computer/sketchpad/internal/render/layout"
	"github.com/rook-computer/sketchpad/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Surface is the drawing the screen mirrors.
type Surface interface {
	Snapshot() *image.RGBA
	Version() uint64
}

const (
	framePaddingPx  = 16
	footerPaddingPx = 12
	qrCodeSizePx    = 256
)

// CanvasScreen shows the live drawing with a footer telling bystanders where
// to open the drawing page.
type CanvasScreen struct {
	Surface Surface
	Logger  Logger

	mu     sync.Mutex
	qrURL  string
	qrCode image.Image
}

func NewCanvasScreen(surface Surface, logger Logger) *CanvasScreen {
	return &CanvasScreen{Surface: surface, Logger: logger}
}

func (screen *CanvasScreen) Version() uint64 {
	if screen.Surface == nil {
		return 0
	}
	return screen.Surface.Version()
}

func (screen *CanvasScreen) Draw(drawer render.Drawer, currentState state.State) {
	width, height := drawer.Size()
	drawer.FillBackground()

	body, footer := layout.SplitBottom(image.Rect(0, 0, width, height), render.FooterHeight)
	frame := layout.Inset(body, framePaddingPx)
	if snap := screen.snapshot(); snap != nil {
		drawer.DrawImageInRect(snap, frame, render.ScaleModeFit)
	} else {
		drawer.DrawText("drawing surface unavailable", frame.Min.X+frame.Dx()/2, frame.Min.Y+frame.Dy()/2,
			render.TextStyle{Align: render.TextAlignCenter})
	}

	textArea, qrArea := layout.SplitRight(layout.Inset(footer, footerPaddingPx), render.FooterHeight-2*footerPaddingPx)
	message, detail := footerText(currentState)
	style := render.TextStyle{Color: render.Foreground}
	m := drawer.DrawText(message, textArea.Min.X, textArea.Min.Y, style)
	if detail != "" {
		drawer.DrawText(detail, textArea.Min.X, textArea.Min.Y+m.LineHeight, render.TextStyle{Color: render.Foreground, Size: render.DefaultFontSize * 0.75})
	}

	if qr := screen.qrFor(currentState.Network.URL); qr != nil {
		drawer.DrawImageInRect(qr, layout.FitSquare(qrArea), render.ScaleModeFit)
	}
}

func (screen *CanvasScreen) snapshot() *image.RGBA {
	if screen.Surface == nil {
		return nil
	}
	return screen.Surface.Snapshot()
}

// qrFor returns the QR code for url, regenerating it only when url changes.
func (screen *CanvasScreen) qrFor(url string) image.Image {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	if url == screen.qrURL {
		return screen.qrCode
	}
	img, err := render.GenerateQRCodeImage(url, qrCodeSizePx)
	if err != nil && screen.Logger != nil {
		screen.Logger.Errorf("screen", "qr code for %q failed: %v", url, err)
	}
	screen.qrURL, screen.qrCode = url, img
	return img
}

func footerText(st state.State) (message, detail string) {
	switch st.Phase {
	case state.BOOTING:
		return "starting", ""
	case state.STOPPING:
		return "shutting down", ""
	}
	if st.Network.URL == "" {
		return "ready", ""
	}
	message = "open " + st.Network.URL + " to draw"
	switch st.Clients {
	case 0:
	case 1:
		detail = "1 page connected"
	default:
		detail = strconv.Itoa(st.Clients) + " pages connected"
	}
	return message, detail
}
