package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

const helpBanner = `
┌┬┐┬─┐┬┌─┐┌─┐┌─┐┌─┐
 │ ├┬┘│├┤ ├─┤│  ├┤
 ┴ ┴└─┴└  ┴ ┴└─┘└─┘

Triplet-interpolated-feature shape predictor.
    Version: %s

`

// Version indicates the current build version, set via -ldflags at release time.
var Version = "dev"

// pipeName is the conventional "-" name for stdin/stdout. No subcommand
// reads or writes through it: every -in, -out and -model value is opened
// as a file path.
const pipeName = "-"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "align":
		err = runAlign(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "triface: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("triface: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, helpBanner, Version)
	fmt.Fprintln(os.Stderr, "Usage: triface <train|predict|eval|align> [flags]")
	fmt.Fprintln(os.Stderr, "\nRun 'triface <subcommand> -h' for subcommand flags.")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: triface %s [flags]\n", name)
		fs.PrintDefaults()
	}
	return fs
}
