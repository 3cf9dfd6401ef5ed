package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chazu/bodysplit/internal/config"
	"github.com/chazu/bodysplit/pkg/engine"
	"github.com/chazu/bodysplit/pkg/kernel"
	"github.com/chazu/bodysplit/pkg/kernel/poly"
	"github.com/chazu/bodysplit/pkg/kernel/sdfx"
	"github.com/chazu/bodysplit/pkg/preview"
	"github.com/chazu/bodysplit/pkg/split"
	"github.com/chazu/bodysplit/pkg/stlio"
	"github.com/chazu/bodysplit/pkg/tessellate"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// summary describes one completed run.
type summary struct {
	Input       string
	Triangles   int
	Edges       int
	NonManifold int
	Bodies      []string // written STL paths, in body order
	Preview     string
	Elapsed     time.Duration
}

func (s *summary) log() {
	klog.Infof("%s: %d triangles, %d edges (%d non-manifold) -> %d bodies in %v",
		s.Input, s.Triangles, s.Edges, s.NonManifold, len(s.Bodies), s.Elapsed.Round(time.Millisecond))
	for _, p := range s.Bodies {
		klog.V(2).Infof("  wrote %s", p)
	}
	if s.Preview != "" {
		klog.Infof("preview: %s", s.Preview)
	}
}

// run loads input, splits it into bodies and writes the results.
func run(cfg config.Config, input string) (*summary, error) {
	start := time.Now()

	pos, err := loadSoup(cfg, input)
	if err != nil {
		return nil, err
	}

	res, err := split.SplitWithOptions(pos, split.Options{Workers: cfg.Workers})
	if err != nil {
		if cfg.Strict {
			return nil, errors.Wrap(err, input)
		}
		// Whole-triangle prefix only; a trailing partial triangle is dropped.
		klog.Warningf("%s: %v; dropping trailing floats", input, err)
		pos = pos[:len(pos)-len(pos)%split.FloatsPerTriangle]
		if res, err = split.SplitWithOptions(pos, split.Options{Workers: cfg.Workers}); err != nil {
			return nil, err
		}
	}
	if res.NonManifoldEdges > 0 {
		if cfg.Strict {
			return nil, errors.Errorf("%s: %d non-manifold edges", input, res.NonManifoldEdges)
		}
		klog.Warningf("%s: %d non-manifold edges; bodies touching there were split by angle", input, res.NonManifoldEdges)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}

	sum := &summary{
		Input:       input,
		Triangles:   res.TriangleCount,
		Edges:       res.EdgeCount,
		NonManifold: res.NonManifoldEdges,
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	for i, part := range res.Parts {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_body%d.stl", base, i+1))
		if err := writeSTL(path, fmt.Sprintf("%s body %d", base, i+1), part); err != nil {
			return nil, err
		}
		sum.Bodies = append(sum.Bodies, path)
	}

	if cfg.Preview != "" {
		view, ok := preview.NamedView(cfg.View)
		if !ok {
			return nil, errors.Errorf("unknown preview view %q", cfg.View)
		}
		img := preview.Render(res.Parts, preview.Options{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			View:        view,
		})
		if err := preview.Save(cfg.Preview, img); err != nil {
			return nil, err
		}
		sum.Preview = cfg.Preview
	}

	sum.Elapsed = time.Since(start)
	return sum, nil
}

// loadSoup reads an STL file directly or evaluates a scene script and
// tessellates every part into one merged soup.
func loadSoup(cfg config.Config, input string) ([]float32, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".stl":
		f, err := os.Open(input)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		m, err := stlio.Read(f)
		if err != nil {
			return nil, errors.Wrap(err, input)
		}
		return m.Positions, nil

	case ".zy":
		src, err := os.ReadFile(input)
		if err != nil {
			return nil, errors.Wrap(err, "read script")
		}
		meshes, err := evaluateScript(string(src), newKernel(cfg))
		if err != nil {
			return nil, errors.Wrap(err, input)
		}
		for _, m := range meshes {
			klog.V(2).Infof("part %q: %d triangles", m.PartName, m.TriangleCount())
		}
		return kernel.Merge(meshes), nil
	}
	return nil, errors.Errorf("%s: unsupported input (want .stl or .zy)", input)
}

func newKernel(cfg config.Config) kernel.Kernel {
	if cfg.Kernel == config.KernelSdfx {
		return sdfx.NewWithCells(cfg.MeshCells)
	}
	return poly.New()
}

// evaluateScript turns scene source into one mesh per part.
func evaluateScript(source string, k kernel.Kernel) ([]*kernel.Mesh, error) {
	s, evalErrs, err := engine.NewEngine().Evaluate(source)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs[1:] {
			klog.Errorf("%v", e)
		}
		return nil, evalErrs[0]
	}

	meshes, err := tessellate.Tessellate(s, k)
	if err != nil {
		return nil, errors.Wrap(err, "tessellate")
	}
	return meshes, nil
}

func writeSTL(path, name string, pos []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create body file")
	}
	if err := stlio.WriteBinary(f, name, pos); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return errors.Wrap(f.Close(), path)
}
