// Package emit renders a network.Scene into a standalone HTML document for
// the vis-network engine.
//
// The document references the engine bundle under lib/<engine>/ next to the
// output file. [Emitter.Write] copies the bundle there on first use and
// writes the page atomically, so a failed write never clobbers the previous
// document.
package emit

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/network"
)

// EngineVersion names the bundled engine and its directory under lib/.
const EngineVersion = "vis-9.1.2"

// LibDir is the directory, relative to the document, holding engine bundles.
const LibDir = "lib"

// The embedded bundle is refreshed from the pinned npm release with
// go generate; without network access it is a loader for the same release.
//
//go:generate curl -fsSL -o assets/vis-9.1.2/vis-network.min.js https://unpkg.com/vis-network@9.1.2/standalone/umd/vis-network.min.js
//go:generate curl -fsSL -o assets/vis-9.1.2/vis-network.css https://unpkg.com/vis-network@9.1.2/styles/vis-network.min.css

//go:embed assets
var assetFS embed.FS

//go:embed templates/network.html
var pageTemplate string

var page = template.Must(template.New("network").Parse(pageTemplate))

// sceneNamespace seeds the name-based container ids.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/textgraph/scene"))

// ErrNoDocument is returned by Read when no document exists at the path.
var ErrNoDocument = terrors.New(terrors.ErrCodeNotFound, "no previous document found")

// Assets returns the embedded engine bundles, one directory per version.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// CheckHTML verifies that name ends in ".html".
func CheckHTML(name string) error {
	base := filepath.Base(name)
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return terrors.New(terrors.ErrCodeInvalidExtension, "invalid file type for %s", name)
	}
	if ext := base[dot+1:]; ext != "html" {
		return terrors.New(terrors.ErrCodeInvalidExtension, "%s is not a valid html file (extension %q)", name, ext)
	}
	return nil
}

// Emitter turns scenes into documents.
type Emitter struct {
	// Assets holds the engine bundles copied next to emitted documents.
	// Nil means the embedded bundles.
	Assets fs.FS
	// Engine selects the bundle directory within Assets. Empty means
	// EngineVersion.
	Engine string
	Logger *log.Logger
}

// New returns an Emitter using the embedded engine bundle.
func New(logger *log.Logger) *Emitter {
	return &Emitter{Logger: logger}
}

func (e *Emitter) assets() fs.FS {
	if e.Assets != nil {
		return e.Assets
	}
	return Assets()
}

// Offline reports whether the engine bundle works without network access:
// its script defines the network class and loads nothing remote.
func (e *Emitter) Offline() (bool, error) {
	js, err := fs.ReadFile(e.assets(), path.Join(e.engine(), "vis-network.min.js"))
	if err != nil {
		return false, terrors.Wrap(terrors.ErrCodeNotFound, err, "asset bundle %s", e.engine())
	}
	if !bytes.Contains(js, []byte("Network")) {
		return false, nil
	}
	return !bytes.Contains(js, []byte("src=\"http")) && !bytes.Contains(js, []byte("src=\"//")), nil
}

func (e *Emitter) engine() string {
	if e.Engine != "" {
		return e.Engine
	}
	return EngineVersion
}

func (e *Emitter) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}

type pageData struct {
	Heading     string
	Engine      string
	ContainerID string
	Width       string
	Height      string
	BGColor     string
	Nodes       template.JS
	Edges       template.JS
	Options     template.JS
	LinkTitles  bool
	Configure   bool
}

// ContainerID returns the element id used for the canvas of s. It is derived
// from the scene content, so identical scenes get identical ids.
func ContainerID(s network.Scene) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", terrors.Wrap(terrors.ErrCodeInternal, err, "encode scene")
	}
	return "textgraph-" + uuid.NewSHA1(sceneNamespace, data).String(), nil
}

// Generate renders s to HTML.
func (e *Emitter) Generate(s network.Scene) ([]byte, error) {
	nodes, err := marshalList(s.Nodes)
	if err != nil {
		return nil, err
	}
	edges, err := marshalList(s.Edges)
	if err != nil {
		return nil, err
	}
	opts := s.Options
	if opts == "" {
		opts = "{}"
	}
	var parsed struct {
		Configure struct {
			Enabled bool `json:"enabled"`
		} `json:"configure"`
	}
	if err := json.Unmarshal([]byte(opts), &parsed); err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInvalidOptions, err, "scene options")
	}
	id, err := ContainerID(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, pageData{
		Heading:     s.Heading,
		Engine:      e.engine(),
		ContainerID: id,
		Width:       s.Width,
		Height:      s.Height,
		BGColor:     s.BGColor,
		Nodes:       template.JS(nodes),
		Edges:       template.JS(edges),
		Options:     template.JS(opts),
		LinkTitles:  s.HasLinkTitles(),
		Configure:   parsed.Configure.Enabled,
	})
	if err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInternal, err, "render template")
	}
	return buf.Bytes(), nil
}

func marshalList(items []network.Attrs) ([]byte, error) {
	if items == nil {
		items = []network.Attrs{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInternal, err, "encode scene items")
	}
	return data, nil
}

// Write renders s and writes it to path, copying the engine bundle next to
// it if missing. path must end in ".html".
func (e *Emitter) Write(s network.Scene, path string) error {
	if err := CheckHTML(path); err != nil {
		return err
	}
	data, err := e.Generate(s)
	if err != nil {
		return err
	}
	if _, err := e.EnsureAssets(filepath.Dir(path)); err != nil {
		return err
	}
	if err := WriteDocument(path, data); err != nil {
		return err
	}
	e.logger().Info("emitted document", "path", path, "bytes", len(data), "nodes", len(s.Nodes), "edges", len(s.Edges))
	return nil
}

// Read returns the document previously written to path. A missing file
// yields an error matching ErrNoDocument.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoDocument)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
