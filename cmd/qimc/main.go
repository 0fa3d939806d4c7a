// Command qimc converts images to and from the QIM quadtree-compressed
// format.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gabrielmougard/qimc/internal/logging"
	"github.com/gabrielmougard/qimc/pkg/config"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "inspect" {
		os.Exit(runInspect(os.Args[2:]))
	}
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("qimc", flag.ContinueOnError)
	into := fs.Bool("into", false, "convert the input file from PNG or JFIF to QIM")
	from := fs.Bool("from", false, "convert the input file from QIM to PNG")
	fs.BoolVar(into, "i", false, "alias for --into")
	fs.BoolVar(from, "f", false, "alias for --from")
	dedup := fs.Uint("dedup", 0, "color distance threshold for palette deduplication (--into only); defaults to 256")
	fs.UintVar(dedup, "d", 0, "alias for --dedup")
	blur := fs.Float64("blur", -1, "amount of precompression blur (--into only); defaults to 1")
	fs.Float64Var(blur, "b", -1, "alias for --blur")
	sensitivity := fs.Uint("sensitivity", 0, "noise sensitivity as a fraction S/(S+1) (--into only); defaults to 63")
	fs.UintVar(sensitivity, "s", 0, "alias for --sensitivity")
	trim := fs.Int("trim", -1, "number of times to trim output (--into only); defaults to 0")
	fs.IntVar(trim, "t", -1, "alias for --trim")
	width := fs.Int("width", 0, "output image width, a power of two (--from only); defaults to 512")
	fs.IntVar(width, "w", 0, "alias for --width")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.BoolVar(verbose, "v", false, "alias for --verbose")
	quiet := fs.Bool("quiet", false, "suppress informational logging")
	fs.BoolVar(quiet, "q", false, "alias for --quiet")
	showVersion := fs.Bool("version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Printf("qimc version %s (built %s)\n", Version, BuildTime)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	if !flagWasSet(fs, "dedup", "d") {
		*dedup = uint(cfg.Dedup)
	}
	if *blur < 0 {
		*blur = cfg.Blur
	}
	if !flagWasSet(fs, "sensitivity", "s") {
		*sensitivity = uint(cfg.Sensitivity)
	}
	if *trim < 0 {
		*trim = cfg.Trim
	}
	if *width == 0 {
		*width = cfg.Width
	}

	logger := logging.New(*verbose, *quiet)

	positional := fs.Args()
	if len(positional) < 1 {
		fmt.Fprintln(os.Stderr, "missing required <INPUT> argument")
		return 2
	}
	input := positional[0]
	var output string
	if len(positional) >= 2 {
		output = positional[1]
	}

	switch {
	case *into && *from:
		fmt.Fprintln(os.Stderr, "only one of -i/--into and -f/--from must be present")
		return 2
	case *into:
		return runInto(logger, input, output, uint32(*dedup), *blur, uint32(*sensitivity), *trim)
	case *from:
		return runFrom(logger, input, output, *width)
	default:
		fmt.Fprintln(os.Stderr, "one of -i/--into and -f/--from must be present")
		return 2
	}
}

// flagWasSet reports whether any of the given flag names was explicitly
// passed on the command line.
func flagWasSet(fs *flag.FlagSet, names ...string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	found := false
	fs.Visit(func(f *flag.Flag) {
		if set[f.Name] {
			found = true
		}
	})
	return found
}
