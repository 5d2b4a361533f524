package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"

	"github.com/rook-computer/sketchpad/internal/surface"
)

const (
	maxCommandBytes = 4 << 10
	qrCodeSizePx    = 256
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type paletteResponse struct {
	Colors []string `json:"colors"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	hub := newEventHub(deps)
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/palette", func(w http.ResponseWriter, r *http.Request) { handlePalette(w, r, deps) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) { handleCommand(w, r, deps, "tool") })
	mux.HandleFunc("/color", func(w http.ResponseWriter, r *http.Request) { handleCommand(w, r, deps, "color") })
	mux.HandleFunc("/size", func(w http.ResponseWriter, r *http.Request) { handleCommand(w, r, deps, "size") })
	mux.HandleFunc("/pointer", func(w http.ResponseWriter, r *http.Request) { handleCommand(w, r, deps, "") })
	mux.HandleFunc("/clear", func(w http.ResponseWriter, r *http.Request) { handleCommand(w, r, deps, "clear") })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) { handleExport(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, deps) })
	mux.Handle("/events", hub)
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Drawing.State())
}

func handlePalette(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, paletteResponse{Colors: deps.Palette})
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, deps.Status.Snapshot())
}

// handleCommand decodes a command body and applies it. A non-empty fixedType
// overrides whatever type the body names, so /tool only ever selects tools.
// /pointer leaves fixedType empty and requires down, move or up.
func handleCommand(w http.ResponseWriter, r *http.Request, deps APIV1Deps, fixedType string) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var cmd command
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes+1))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if len(body) > maxCommandBytes {
		writeAPIError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &cmd); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
	}

	if fixedType != "" {
		cmd.Type = fixedType
	} else {
		switch surface.EventType(cmd.Type) {
		case surface.EventDown, surface.EventMove, surface.EventUp:
		default:
			writeAPIError(w, http.StatusBadRequest, "invalid_event", "type must be down, move or up")
			return
		}
	}

	if err := cmd.apply(deps.Drawing); err != nil {
		status, code := commandStatus(err)
		writeAPIError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deps.Drawing.State())
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	etag := `"` + strconv.FormatUint(deps.Drawing.Version(), 10) + `"`
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	snap := deps.Drawing.Snapshot()
	if snap == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "surface_unavailable", surface.ErrSurfaceUnavailable.Error())
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, snap); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handleExport encodes the whole surface before writing any header so a failed
// export still answers with a JSON error instead of a truncated download.
func handleExport(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	format, err := surface.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := deps.Drawing.Export(&buf, format); err != nil {
		if errors.Is(err, surface.ErrSurfaceUnavailable) {
			writeAPIError(w, http.StatusServiceUnavailable, "surface_unavailable", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	name := deps.Drawing.ExportName(format)
	deps.Logger.Infof("web", "export %s (%d bytes)", name, buf.Len())
	setDownloadHeaders(w, name, format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func handleQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	url := deps.Status.Snapshot().Network.URL
	if url == "" {
		writeAPIError(w, http.StatusNotFound, "no_share_url", "share url not known yet")
		return
	}
	pngBytes, err := qrcode.Encode(url, qrcode.Medium, qrCodeSizePx)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(pngBytes)
}

func setDownloadHeaders(w http.ResponseWriter, filename, contentType string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	cd := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	w.Header().Set("Content-Disposition", cd)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
