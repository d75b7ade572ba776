package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/textgraph/pkg/emit"
	terrors "github.com/matzehuels/textgraph/pkg/errors"
	"github.com/matzehuels/textgraph/pkg/network"
	"github.com/matzehuels/textgraph/pkg/render"
	"github.com/matzehuels/textgraph/pkg/render/echarts"
	"github.com/matzehuels/textgraph/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. The emitter
// produces the html document; nil means the embedded engine bundle.
func Render(ctx context.Context, s network.Scene, e *emit.Emitter, opts Options) (map[string][]byte, error) {
	if e == nil {
		e = emit.New(opts.Logger)
	}
	artifacts := make(map[string][]byte, len(opts.Formats))

	// SVG is the source of PNG and PDF, so render it at most once.
	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		dot := nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed})
		out, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		svg = out
		return svg, nil
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatHTML:
			data, err = e.Generate(s)
		case FormatECharts:
			var buf bytes.Buffer
			err = echarts.Render(s, echarts.Options{
				Repulsion:  opts.Repulsion,
				EdgeLength: opts.EdgeLength,
			}, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed}))
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = json.MarshalIndent(s, "", "  ")
		default:
			return nil, terrors.New(terrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
