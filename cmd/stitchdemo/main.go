// Command stitchdemo renders an embroidery design to PNG and, optionally,
// to a Tajima DST machine file.
//
// Without -design it renders a built-in sample:
//
//	stitchdemo -output sample.png -dst sample.dst
//	stitchdemo -design badge.toml -scale 2 -v
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/design"
	"github.com/gogpu/embroider/plan"
	"github.com/gogpu/embroider/plan/dst"
	"github.com/gogpu/embroider/stitch"
)

func main() {
	var (
		designPath = flag.String("design", "", "design file (.toml, .yaml); built-in sample if empty")
		output     = flag.String("output", "stitchdemo.png", "output PNG file")
		dstPath    = flag.String("dst", "", "also write a Tajima DST file")
		scale      = flag.Int("scale", 1, "super-sampling factor")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	embroider.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*designPath, *output, *dstPath, *scale); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(designPath, output, dstPath string, scale int) error {
	d := design.Sample()
	if designPath != "" {
		var err error
		if d, err = design.Load(designPath); err != nil {
			return err
		}
	}
	if scale > 1 {
		d.SuperSample = scale
	}

	res, err := design.Build(d, stitch.NewRegistry())
	if err != nil {
		return err
	}
	if err := res.Store.ComposeDisplay().SavePNG(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	pterm.Success.Printf("wrote %s (%dx%d)\n", output, d.Width, d.Height)

	full := res.Plan()
	if dstPath != "" {
		if err := writeDST(dstPath, full, d.Name); err != nil {
			return err
		}
		pterm.Success.Printf("wrote %s\n", dstPath)
	}
	return printSummary(res, full)
}

func writeDST(path string, p plan.Plan, name string) error {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dst.Encode(f, p, name); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(res *design.Result, full plan.Plan) error {
	data := pterm.TableData{{"Stitch", "Strategy", "Stitches", "Jumps", "Length (px)", "Mean (px)"}}
	for i, p := range res.Plans {
		s := plan.Summarize(p)
		data = append(data, []string{
			res.Stitches[i].ID,
			string(p.Info.Strategy),
			fmt.Sprint(s.Stitches),
			fmt.Sprint(s.Jumps),
			fmt.Sprintf("%.1f", s.TotalLength),
			fmt.Sprintf("%.2f", s.MeanLength),
		})
	}
	total := plan.Summarize(full)
	data = append(data, []string{
		"total", "",
		fmt.Sprint(total.Stitches),
		fmt.Sprint(total.Jumps),
		fmt.Sprintf("%.1f", total.TotalLength),
		fmt.Sprintf("%.2f", total.MeanLength),
	})
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if res.Skipped > 0 {
		pterm.Warning.Printf("%d stitches skipped\n", res.Skipped)
	}
	return nil
}
