package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/pipeline"
)

// maxScoreBytes bounds the request body; real scores are a few kilobytes.
const maxScoreBytes = 1 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// engraveResponse is the envelope returned when more than one format is
// requested. Artifact bytes are base64-encoded by encoding/json.
type engraveResponse struct {
	ScoreHash string            `json:"score_hash"`
	Measures  int               `json:"measures"`
	Notes     int               `json:"notes"`
	Artifacts map[string][]byte `json:"artifacts"`
}

// handleEngrave runs the pipeline on the posted TOML score. A single
// requested format is returned as the raw artifact with its content type;
// multiple formats come back as a JSON envelope.
func (s *Server) handleEngrave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScoreBytes))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	opts, err := optionsFromRequest(r, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = log.FromContext(r.Context())

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(engraveResponse{
		ScoreHash: result.ScoreHash,
		Measures:  result.Stats.MeasureCount,
		Notes:     result.Stats.NoteCount,
		Artifacts: result.Artifacts,
	})
}

// optionsFromRequest builds pipeline options from the body and the
// format/width/height/refresh query parameters.
func optionsFromRequest(r *http.Request, body []byte) (pipeline.Options, error) {
	opts := pipeline.Options{Source: string(body)}

	q := r.URL.Query()
	if formats := q.Get("format"); formats != "" {
		opts.Formats = strings.Split(formats, ",")
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}

	var err error
	if opts.Width, err = floatParam(q.Get("width"), "width"); err != nil {
		return pipeline.Options{}, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height"); err != nil {
		return pipeline.Options{}, err
	}
	opts.Background = q.Get("background")
	opts.Ink = q.Get("ink")
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScore, errors.ErrCodeInvalidNote,
		errors.ErrCodeInvalidKey, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
