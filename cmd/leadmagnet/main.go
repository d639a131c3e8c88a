package main

import (
	goflag "flag"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
	"k8s.io/klog/v2"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	verbose := wantsVerbose(os.Args[1:])
	initLogging(verbose)

	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default applies.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(klog.Infof))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	code := runMain(os.Args[1:], DefaultEnv())
	klog.Flush()
	os.Exit(code)
}

// wantsVerbose reports whether -v or --verbose appears in args. klog is
// configured before command flags are parsed.
func wantsVerbose(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-v" || a == "--verbose"
	})
}

// initLogging routes klog to stderr. Verbose runs log at V(4).
func initLogging(verbose bool) {
	fs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("logtostderr", "true")
	if verbose {
		_ = fs.Set("v", "4")
	}
}
