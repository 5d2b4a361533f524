package surface

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a raster encoding offered for export.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatGIF
	FormatBMP
	FormatTIFF
)

const DefaultFormat = FormatJPEG

// JPEGQuality is used for every JPEG export.
const JPEGQuality = 90

var ErrUnknownFormat = errors.New("unknown export format")

var formatInfo = map[Format]struct {
	ext         string
	contentType string
}{
	FormatJPEG: {"jpg", "image/jpeg"},
	FormatPNG:  {"png", "image/png"},
	FormatGIF:  {"gif", "image/gif"},
	FormatBMP:  {"bmp", "image/bmp"},
	FormatTIFF: {"tiff", "image/tiff"},
}

// ParseFormat accepts an extension or a MIME subtype, with or without a leading
// dot. The empty string selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, ".")
	s = strings.TrimPrefix(s, "image/")
	switch s {
	case "", "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return DefaultFormat, fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.ext
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// Ext is the file extension without the dot.
func (f Format) Ext() string { return f.String() }

func (f Format) ContentType() string {
	if info, ok := formatInfo[f]; ok {
		return info.contentType
	}
	return "application/octet-stream"
}

// Encode writes img to w in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatGIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("%w %d", ErrUnknownFormat, int(f))
}

// ExportName is the download name for an export taken at t: the Unix time in
// milliseconds followed by the format's extension.
func ExportName(t time.Time, f Format) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "." + f.Ext()
}
