package surface

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"testing"
	"time"

	"github.com/tdewolff/test"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestParseFormat(t *testing.T) {
	var tts = []struct {
		in  string
		out Format
	}{
		{"", FormatJPEG},
		{"jpg", FormatJPEG},
		{"JPEG", FormatJPEG},
		{".png", FormatPNG},
		{"image/gif", FormatGIF},
		{"bmp", FormatBMP},
		{"tif", FormatTIFF},
		{"tiff", FormatTIFF},
	}
	for _, tt := range tts {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			test.Error(t, err)
			test.T(t, f, tt.out)
		})
	}

	_, err := ParseFormat("webp")
	test.That(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatMetadata(t *testing.T) {
	test.String(t, FormatJPEG.Ext(), "jpg")
	test.String(t, FormatJPEG.ContentType(), "image/jpeg")
	test.String(t, FormatTIFF.ContentType(), "image/tiff")
	test.String(t, Format(42).ContentType(), "application/octet-stream")
	test.String(t, Format(42).String(), "format(42)")
}

func TestFormatEncodeRoundTrip(t *testing.T) {
	src := NewRGBARaster(12, 9, Background)
	src.StrokeSegment(Segment{From: Point{2, 4}, To: Point{10, 4}, Color: red, Width: 3})
	img := src.Snapshot()

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatJPEG: func(b *bytes.Buffer) (image.Image, error) { return jpeg.Decode(b) },
		FormatGIF:  func(b *bytes.Buffer) (image.Image, error) { return gif.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for f, decode := range decoders {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			test.Error(t, f.Encode(&buf, img))
			out, err := decode(&buf)
			test.Error(t, err)
			test.T(t, out.Bounds(), img.Bounds())
		})
	}

	err := Format(42).Encode(&bytes.Buffer{}, img)
	test.That(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportNameUsesMillis(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	test.String(t, ExportName(ts, FormatPNG), "1704164645006.png")
}
