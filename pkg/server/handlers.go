package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/chordsheet/pkg/adapter"
	"github.com/matzehuels/chordsheet/pkg/buildinfo"
	"github.com/matzehuels/chordsheet/pkg/chord"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	pkgio "github.com/matzehuels/chordsheet/pkg/io"
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// ContentTypes maps each output format to its MIME type.
var ContentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// Artifact is one rendered format in a render response. Binary formats are
// base64 encoded.
type Artifact struct {
	ContentType string `json:"content_type"`
	Encoding    string `json:"encoding"` // "utf-8" or "base64"
	Data        string `json:"data"`
}

// RenderResponse is the body of a successful render.
type RenderResponse struct {
	ID        string              `json:"id"`
	Adapter   string              `json:"adapter"`
	SongHash  string              `json:"song_hash"`
	Sheet     layout.Sheet        `json:"sheet"`
	Artifacts map[string]Artifact `json:"artifacts"`
	Cache     pipeline.CacheInfo  `json:"cache"`
}

// TransposeRequest asks for a song to be shifted by Delta semitones.
type TransposeRequest struct {
	Song  json.RawMessage `json:"song"`
	Delta int             `json:"delta"`
}

// TransposeResponse holds the transposed song and its resolved key.
type TransposeResponse struct {
	Song json.RawMessage `json:"song"`
	Key  string          `json:"key"`
}

// KeyRequest carries either a song or a raw chord frequency table.
type KeyRequest struct {
	Song   json.RawMessage `json:"song,omitempty"`
	Chords map[string]int  `json:"chords,omitempty"`
}

// KeyResponse reports the key and whether it was detected from chords.
type KeyResponse struct {
	Key         string         `json:"key"`
	Detected    bool           `json:"detected"`
	Occurrences map[string]int `json:"occurrences,omitempty"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleAdapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"adapters": adapter.Names()})
}

// handleRender runs the pipeline. The API never reads server-side files, so
// source must be a URL unless html or song is supplied. With ?download and a
// single format the artifact is returned as an attachment.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	if len(opts.Song) == 0 && opts.HTML == "" && opts.Source != "" && !errs.IsURL(opts.Source) {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "source must be an http(s) URL"))
		return
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, ok := r.URL.Query()["download"]; ok && len(result.Artifacts) == 1 {
		for format, data := range result.Artifacts {
			w.Header().Set("Content-Type", ContentTypes[format])
			w.Header().Set("Content-Disposition", `attachment; filename="`+filename(result.Sheet.Title, format)+`"`)
			w.WriteHeader(http.StatusOK)
			w.Write(data)
		}
		return
	}

	resp := RenderResponse{
		ID:        uuid.NewString(),
		Adapter:   result.Adapter,
		SongHash:  result.SongHash,
		Sheet:     result.Sheet,
		Artifacts: make(map[string]Artifact, len(result.Artifacts)),
		Cache:     result.CacheInfo,
	}
	for format, data := range result.Artifacts {
		a := Artifact{ContentType: ContentTypes[format], Encoding: "utf-8", Data: string(data)}
		if format == pipeline.FormatPDF || format == pipeline.FormatPNG {
			a.Encoding = "base64"
			a.Data = base64.StdEncoding.EncodeToString(data)
		}
		resp.Artifacts[format] = a
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	var req TransposeRequest
	if !s.decode(w, r, &req) {
		return
	}
	sg, err := readSong(req.Song)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := sg.Transpose(req.Delta)
	var buf bytes.Buffer
	if err := pkgio.WriteSong(out, &buf); err != nil {
		s.fail(w, r, errs.Wrap(errs.ErrCodeInternal, err, "encode song"))
		return
	}
	writeJSON(w, http.StatusOK, TransposeResponse{
		Song: json.RawMessage(bytes.TrimSpace(buf.Bytes())),
		Key:  song.ResolveKey(out),
	})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if !s.decode(w, r, &req) {
		return
	}

	switch {
	case len(req.Song) > 0:
		sg, err := readSong(req.Song)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		_, explicit := sg.Key.Value()
		writeJSON(w, http.StatusOK, KeyResponse{
			Key:         song.ResolveKey(sg),
			Detected:    !explicit,
			Occurrences: sg.Occurrences(),
		})
	case len(req.Chords) > 0:
		writeJSON(w, http.StatusOK, KeyResponse{
			Key:      chord.DetectKey(req.Chords),
			Detected: true,
		})
	default:
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "song or chords is required"))
	}
}

func readSong(raw json.RawMessage) (*song.Song, error) {
	if len(raw) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "song is required")
	}
	return pkgio.ReadSong(bytes.NewReader(raw))
}

// decode reads a JSON body into v, rejecting unknown fields. It writes the
// error response itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(errs.ErrCodeInvalidInput), "request body too large")
			return false
		}
		s.fail(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeError(w, r, status, code, errs.UserMessage(err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func filename(title, format string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, title)
	if name == "" {
		name = "chordsheet"
	}
	return name + pipeline.Extensions[format]
}
