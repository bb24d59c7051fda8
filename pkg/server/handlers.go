package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/mindlayout/pkg/buildinfo"
	"github.com/matzehuels/mindlayout/pkg/config"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/geometry"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mapio"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
	"github.com/matzehuels/mindlayout/pkg/observability"
	"github.com/matzehuels/mindlayout/pkg/render"
	"github.com/matzehuels/mindlayout/pkg/render/nodelink"
	"github.com/matzehuels/mindlayout/pkg/render/svg"
)

// Render types.
const (
	TypeBoxes    = "boxes"
	TypeNodeLink = "nodelink"
)

var mediaFormats = map[string]mapio.Format{
	"application/json":   mapio.FormatJSON,
	"application/yaml":   mapio.FormatYAML,
	"application/x-yaml": mapio.FormatYAML,
	"text/yaml":          mapio.FormatYAML,
	"application/toml":   mapio.FormatTOML,
}

var outputTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPDF: "application/pdf",
	render.FormatPNG: "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

// layoutRequest is what both layout endpoints parse from a request.
type layoutRequest struct {
	m           *mindmap.Map
	cfg         config.Config
	silhouettes bool
}

func (s *Server) parseLayoutRequest(r *http.Request) (*layoutRequest, error) {
	q := r.URL.Query()
	req := &layoutRequest{cfg: s.cfg}

	if v := q.Get("zoom"); v != "" {
		z, err := strconv.ParseFloat(v, 64)
		if err != nil || z <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "zoom must be a positive number, got %q", v)
		}
		req.cfg.Zoom = z
	}
	for name, dst := range map[string]*bool{
		"outline":     &req.cfg.Outline,
		"compact":     &req.cfg.Compact,
		"silhouettes": &req.silhouettes,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}

	format, err := requestFormat(r)
	if err != nil {
		return nil, err
	}
	m, err := mapio.Read(r.Body, format)
	if err != nil {
		return nil, err
	}
	req.m = m
	return req, nil
}

func requestFormat(r *http.Request) (mapio.Format, error) {
	if v := r.URL.Query().Get("format"); v != "" {
		return mapio.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return mapio.FormatJSON, nil
	}
	media, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed Content-Type %q", ct)
	}
	if f, ok := mediaFormats[media]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported Content-Type %q", media)
}

func (req *layoutRequest) scene(r *http.Request) geometry.Scene {
	e := layout.NewEngine(req.m, req.cfg.LayoutOptions()...)
	defer e.Close()
	e.ValidateContext(r.Context())

	var opts []geometry.Option
	if req.silhouettes {
		opts = append(opts, geometry.WithSilhouettes())
	}
	return geometry.Build(e, opts...)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseLayoutRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scene := req.scene(r)
	if len(scene.Diagnostics) > 0 {
		s.logger.Warn("Layout diagnostics", "id", RequestID(r.Context()), "kinds", scene.Diagnostics)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := geometry.Write(scene, w); err != nil {
		s.logger.Error("Write scene", "id", RequestID(r.Context()), "err", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := q.Get("type")
	if typ == "" {
		typ = TypeBoxes
	}
	if typ != TypeBoxes && typ != TypeNodeLink {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown render type %q", typ))
		return
	}
	output := render.FormatSVG
	if v := q.Get("output"); v != "" {
		var err error
		if output, err = errors.ValidateFormat(v, render.FormatSVG, render.FormatPDF, render.FormatPNG); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	req, err := s.parseLayoutRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var out []byte
	if typ == TypeNodeLink {
		out, err = nodelink.RenderSVG(r.Context(), nodelink.ToDOT(req.m, nodelink.Options{}))
	} else {
		var opts []svg.Option
		if req.silhouettes {
			opts = append(opts, svg.WithSilhouettes())
		}
		out = svg.Render(req.scene(r), opts...)
	}
	if err == nil {
		out, err = render.Convert(r.Context(), out, output, 1)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", outputTypes[output])
	_, _ = w.Write(out)
}

type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code, message string) errorPayload {
	var p errorPayload
	p.Error.Code = code
	p.Error.Message = message
	return p
}

func errNotFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

// writeError answers with the error's status. Errors without a code are
// internal; their details go to the log, not to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	message := errors.UserMessage(err)
	if code == "" {
		code, message = string(errors.ErrCodeInternal), "internal error"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "id", RequestID(r.Context()), "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, routeOf(r), err)
	writeJSON(w, status, errorBody(code, message))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
