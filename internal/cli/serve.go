package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/buildinfo"
	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/figure"
	dataio "github.com/matzehuels/oceanplot/pkg/io"
	"github.com/matzehuels/oceanplot/pkg/observability"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

const (
	// maxRequestBody caps render request bodies.
	maxRequestBody = 16 << 20

	// headerRequestID carries the request ID in both directions.
	headerRequestID = "X-Request-ID"

	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command running the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP render API",
		Long: `Serve figures over HTTP.

  POST /v1/render/{ts|profile|box}?format=svg
       body: {"table": {"columns": {...}}, "options": {...}}
  GET  /healthz

The response body is the rendered figure. Errors are JSON objects with a
machine-readable code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache, redisURL)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newAPIHandler(runner, c.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			printSuccess("Serving render API")
			printKeyValue("Address", StyleLink.Render("http://"+displayAddr(addr)))
			printKeyValue("Cache", cacheName(noCache, redisURL))
			printNextStep("Try", "curl -X POST --data @request.json 'http://"+displayAddr(addr)+"/v1/render/ts?format=png' -o ts.png")
			return runServer(ctx, srv, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&redisURL, "redis-url", os.Getenv(envRedisURL), "cache artifacts in Redis (default $"+envRedisURL+")")

	return cmd
}

// runServer serves until ctx is canceled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down render API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func cacheName(noCache bool, redisURL string) string {
	switch {
	case noCache:
		return "disabled"
	case redisURL != "":
		return "redis"
	}
	return "file"
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// =============================================================================
// Handlers
// =============================================================================

// renderBody is the JSON body of a render request.
type renderBody struct {
	Table   *dataio.Table    `json:"table"`
	Options pipeline.Options `json:"options"`
	Refresh bool             `json:"refresh,omitempty"`
}

// apiError is the JSON body of an error response.
type apiError struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

type api struct {
	runner *pipeline.Runner
}

// newAPIHandler returns the router of the render API.
func newAPIHandler(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	a := &api{runner: runner}

	r := chi.NewRouter()
	r.Use(requestID(logger))
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.health)
	r.Post("/v1/render/{kind}", a.render)
	return r
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Current(),
	})
}

func (a *api) render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := pipeline.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body renderBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if body.Table != nil {
		if err := body.Table.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
	}

	if f := r.URL.Query().Get("format"); f != "" {
		body.Options.Formats = []string{f}
	}
	switch len(body.Options.Formats) {
	case 0:
		body.Options.Formats = []string{figure.FormatSVG}
	case 1:
	default:
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "the API renders one format per request, got %v", body.Options.Formats))
		return
	}
	format, err := figure.ValidateFormat(body.Options.Formats[0])
	if err != nil {
		writeError(w, r, err)
		return
	}
	body.Options.Logger = loggerFromContext(ctx)

	res, err := a.runner.Execute(ctx, pipeline.Request{
		Kind:    kind,
		Table:   body.Table,
		Options: body.Options,
		Refresh: body.Refresh,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", figure.ContentType(format))
	w.Header().Set("X-Input-Hash", res.InputHash)
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Middleware
// =============================================================================

// requestID tags every request with an ID (the client's X-Request-ID or a
// fresh UUID) and attaches a logger carrying it to the request context.
func requestID(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)
			w.Header().Set("Server", buildinfo.UserAgent())
			ctx := withLogger(r.Context(), logger.With("request_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accessLog logs every response and reports it to the API hooks.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.API()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		d := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, d)
		loggerFromContext(ctx).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d.Round(time.Microsecond))
	})
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps input errors to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsInputError(err):
		status = http.StatusBadRequest
	case code == "":
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("render failed", "error", err)
	}
	writeJSON(w, status, apiError{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: w.Header().Get(headerRequestID),
	})
}
