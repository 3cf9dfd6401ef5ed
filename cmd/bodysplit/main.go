// Command bodysplit splits a triangle soup into its connected bodies and
// writes one STL file per body.
//
// Usage:
//
//	bodysplit [flags] <input.stl|input.zy>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chazu/bodysplit/internal/config"
	"github.com/plan-systems/klog"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	fset := flag.NewFlagSet("bodysplit", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	defer klog.Flush()

	configFile := fset.String("config", "", "Path to a JSON config file")
	outputDir := fset.String("out", "", "Directory for the per-body STL files (default: .)")
	previewPath := fset.String("preview", "", "Write a preview image (.webp, .tga or .png)")
	size := fset.Int("size", 0, "Preview size in pixels (default: 512)")
	view := fset.String("view", "", "Preview view: iso or top (default: iso)")
	workers := fset.Int("workers", 0, "Goroutines used to copy bodies out (default: NumCPU)")
	kernelName := fset.String("kernel", "", "Geometry kernel for .zy scripts: poly or sdfx (default: poly)")
	strict := fset.Bool("strict", false, "Fail on malformed input or non-manifold edges")
	fset.Usage = func() {
		fmt.Fprintln(fset.Output(), "usage: bodysplit [flags] <input.stl|input.zy>")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return 2
	}
	if fset.NArg() != 1 {
		fset.Usage()
		return 2
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			klog.Errorf("%v", err)
			return 1
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Preview:     *previewPath,
		PreviewSize: *size,
		View:        *view,
		Workers:     *workers,
		Kernel:      *kernelName,
		Strict:      *strict,
	})
	if err := cfg.Validate(); err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	sum, err := run(cfg, fset.Arg(0))
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	sum.log()
	return 0
}
