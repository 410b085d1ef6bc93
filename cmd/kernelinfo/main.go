// Command kernelinfo builds an angular correlation kernel from a redshift
// distribution and prints its key quantities.
//
// Usage:
//
//	kernelinfo [flags]
//
// It constructs a redshift profile, wraps it in a pair of identical window
// functions (an autocorrelation), builds the requested kernel, and prints
// the derived ranges, peak redshift, and sampled kernel values. The sampled
// window function and kernel tables can be dumped to plain-text files, and
// the kernel curve plotted to a PNG.
//
// Examples:
//
//	kernelinfo
//	kernelinfo -shape maglim -a 2 -b 1.5 -z0 0.4
//	kernelinfo -window convergence -kernel gglensing
//	kernelinfo -dump-kernel kernel.dat -plot kernel.png
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-limber/cosmo"
	"github.com/cwbudde/algo-limber/limber/dndz"
	"github.com/cwbudde/algo-limber/limber/kernel"
	"github.com/cwbudde/algo-limber/limber/window"
)

func main() {
	shape := flag.String("shape", "gaussian", "redshift distribution shape (gaussian, maglim)")
	zMin := flag.Float64("zmin", 0, "minimum redshift of the distribution")
	zMax := flag.Float64("zmax", 2, "maximum redshift of the distribution")
	z0 := flag.Float64("z0", 0.5, "mean redshift (gaussian) or pivot redshift (maglim)")
	sigma := flag.Float64("sigma", 0.1, "standard deviation of the gaussian shape")
	powA := flag.Float64("a", 2, "power-law slope of the maglim shape")
	powB := flag.Float64("b", 1.5, "exponential decay slope of the maglim shape")
	winType := flag.String("window", "galaxy", "window function type (galaxy, convergence, flat, delta)")
	kernType := flag.String("kernel", "standard", "kernel type (standard, gglensing)")
	kthetaMin := flag.Float64("ktheta-min", 1e-4, "minimum k*theta in h/Mpc*radians")
	kthetaMax := flag.Float64("ktheta-max", 10, "maximum k*theta in h/Mpc*radians")
	omegaM := flag.Float64("omega-m", 0.3, "matter density parameter")
	omegaL := flag.Float64("omega-l", 0.7, "dark energy density parameter")
	forceQuad := flag.Bool("force-quad", false, "use fixed-order quadrature for the kernel integral")
	samples := flag.Int("samples", 10, "number of kernel samples to print")
	dumpWindow := flag.String("dump-window", "", "write the sampled window function table to this file")
	dumpKernel := flag.String("dump-kernel", "", "write the sampled kernel table to this file")
	plotFile := flag.String("plot", "", "write a kernel curve plot (PNG) to this file")
	verbose := flag.Bool("v", false, "enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kernelinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Builds an angular correlation kernel and prints its key quantities.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kernelinfo -shape maglim -a 2 -b 1.5 -z0 0.4\n")
		fmt.Fprintf(os.Stderr, "  kernelinfo -window convergence -kernel gglensing\n")
		fmt.Fprintf(os.Stderr, "  kernelinfo -dump-kernel kernel.dat -plot kernel.png\n")
	}
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: logger: %v\n", err)
			os.Exit(1)
		}

		logger = l
		defer func() { _ = logger.Sync() }()
	}

	profile, err := buildProfile(*shape, *zMin, *zMax, *z0, *sigma, *powA, *powB)
	if err != nil {
		fatal(err)
	}

	params := cosmo.Params{OmegaM0: *omegaM, OmegaL0: *omegaL}

	m, err := cosmo.NewWithParams(0, math.Max(*zMax, 0.1), params, cosmo.WithLogger(logger))
	if err != nil {
		fatal(err)
	}

	wa, err := buildWindow(*winType, profile, *zMin, *zMax, m, logger)
	if err != nil {
		fatal(err)
	}

	wb, err := buildWindow(*winType, profile, *zMin, *zMax, m, logger)
	if err != nil {
		fatal(err)
	}

	var kernOpts []kernel.Option
	if *forceQuad {
		kernOpts = append(kernOpts, kernel.WithForceQuad())
	}

	kernOpts = append(kernOpts, kernel.WithLogger(logger))

	var k *kernel.Kernel

	switch *kernType {
	case "standard":
		k, err = kernel.New(*kthetaMin, *kthetaMax, wa, wb, m, kernOpts...)
	case "gglensing":
		k, err = kernel.NewGalaxyGalaxyLensing(*kthetaMin, *kthetaMax, wa, wb, m, kernOpts...)
	default:
		err = fmt.Errorf("unknown kernel type %q", *kernType)
	}

	if err != nil {
		fatal(err)
	}

	if err := printSummary(k, *samples); err != nil {
		fatal(err)
	}

	if *dumpWindow != "" {
		if err := dumpTo(*dumpWindow, wa.Write); err != nil {
			fatal(err)
		}
	}

	if *dumpKernel != "" {
		if err := dumpTo(*dumpKernel, k.Write); err != nil {
			fatal(err)
		}
	}

	if *plotFile != "" {
		if err := plotKernel(k, *plotFile); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func buildProfile(shape string, zMin, zMax, z0, sigma, a, b float64) (dndz.Profile, error) {
	switch shape {
	case "gaussian":
		return dndz.NewGaussian(zMin, zMax, z0, sigma)
	case "maglim":
		if zMin == 0 && a < 0 {
			zMin = 1e-4
		}

		return dndz.NewMagLim(zMin, zMax, a, z0, b)
	default:
		return nil, fmt.Errorf("unknown shape %q (use gaussian or maglim)", shape)
	}
}

func buildWindow(typ string, profile dndz.Profile, zMin, zMax float64, m *cosmo.MultiEpoch, logger *zap.Logger) (window.Function, error) {
	opts := []window.Option{window.WithLogger(logger)}

	switch typ {
	case "galaxy":
		return window.NewGalaxy(profile, m, opts...)
	case "convergence":
		return window.NewConvergence(profile, m, opts...)
	case "flat":
		return window.NewFlatConvergence(zMin, zMax, m, opts...)
	case "delta":
		return window.NewConvergenceDelta(zMax, m, opts...)
	default:
		return nil, fmt.Errorf("unknown window type %q (use galaxy, convergence, flat, or delta)", typ)
	}
}

func printSummary(k *kernel.Kernel, samples int) error {
	zMin, zMax := k.ZRange()
	chiMin, chiMax := k.ChiRange()
	lnMin, lnMax := k.LnKThetaRange()

	fmt.Printf("bessel order:   J_%d\n", k.Order())
	fmt.Printf("redshift range: [%.4f, %.4f]\n", zMin, zMax)
	fmt.Printf("chi range:      [%.4f, %.4f] Mpc/h\n", chiMin, chiMax)
	fmt.Printf("peak redshift:  %.4f\n", k.PeakRedshift())
	fmt.Printf("normalization:  %.6e\n", k.Normalization())
	fmt.Println()

	if samples < 2 {
		samples = 2
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "k*theta [h/Mpc*rad]\tkernel [(h/Mpc)^2]\n"); err != nil {
		return err
	}

	step := (lnMax - lnMin) / float64(samples-1)
	for i := range samples {
		ln := lnMin + float64(i)*step

		v, err := k.KernelAt(ln)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "%.6e\t%.6e\n", math.Exp(ln), v); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func dumpTo(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func plotKernel(k *kernel.Kernel, name string) error {
	lnMin, lnMax := k.LnKThetaRange()

	const points = 200

	xys := make(plotter.XYs, points)
	step := (lnMax - lnMin) / float64(points-1)

	for i := range points {
		ln := lnMin + float64(i)*step

		v, err := k.KernelAt(ln)
		if err != nil {
			return err
		}

		xys[i].X = ln / math.Ln10
		xys[i].Y = v
	}

	p := plot.New()
	p.Title.Text = "Angular correlation kernel"
	p.X.Label.Text = "log10(k*theta) [h/Mpc*rad]"
	p.Y.Label.Text = "kernel [(h/Mpc)^2]"

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}

	p.Add(line)
	p.Add(plotter.NewGrid())

	return p.Save(6*vg.Inch, 4*vg.Inch, name)
}
