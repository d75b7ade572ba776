package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textgraph/pkg/emit"
	"github.com/matzehuels/textgraph/pkg/observability"
)

const defaultPreviewAddr = "127.0.0.1:8080"

// previewCommand serves a rendered document and its engine bundle.
func (c *CLI) previewCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "preview [file.html]",
		Short: "Serve a rendered document over HTTP",
		Long: `Preview serves the directory holding a rendered document, so the document
and its lib/ bundle load the same way they would from any static host.
Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := defaultOutput
			if len(args) == 1 {
				doc = args[0]
			}
			if err := emit.CheckHTML(doc); err != nil {
				return err
			}
			if _, err := emit.Read(doc); err != nil {
				if errors.Is(err, emit.ErrNoDocument) {
					printWarning("No document at %s", doc)
					printNextStep("Render one first", fmt.Sprintf("%s render <tokens.txt> -o %s", appName, quoteArg(doc)))
				}
				return err
			}
			return c.runPreview(cmd.Context(), doc, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultPreviewAddr, "listen address")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, doc, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newPreviewRouter(filepath.Dir(doc), filepath.Base(doc), c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s", StyleHighlight.Render(doc))
	printKeyValue("URL", StyleLink.Render("http://"+ln.Addr().String()+"/"))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		printInfo("Stopped preview server")
		return nil
	}
}

// newPreviewRouter serves dir as static files. "/" redirects to the document
// and /healthz reports liveness.
func newPreviewRouter(dir, doc string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, path.Join("/", doc), http.StatusFound)
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	return r
}

// requestLogger logs each request at debug level and reports it to the
// registered HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
			logger.Debug("request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		})
	}
}
