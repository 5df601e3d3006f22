// Command deppth is the CLI collaborator over the package I/O engine:
// list, extract, pack, and patch subcommands.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/quaerus/deppth"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	action := os.Args[1]
	args := os.Args[2:]

	logger := log.New(os.Stderr, "", 0)
	logFn := func(s string) { logger.Println(s) }

	var err error
	switch action {
	case "list", "ls":
		err = runList(args, logFn)
	case "extract", "ex":
		err = runExtract(args, logFn)
	case "pack", "pk":
		err = runPack(args, logFn)
	case "patch", "pt":
		err = runPatch(args, logFn)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: deppth <list|extract|pack|patch> ...")
}

func runList(args []string, logFn func(string)) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("list requires a package path")
	}

	return deppth.List(rest[0], rest[1:], logFn)
}

func runExtract(args []string, logFn func(string)) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	target := fs.String("target", "", "where to extract the package")
	fs.StringVar(target, "t", "", "where to extract the package (shorthand)")
	entries := fs.String("entries", "", "comma-separated entry patterns to extract")
	fs.StringVar(entries, "e", "", "comma-separated entry patterns to extract (shorthand)")
	subtextures := fs.Bool("subtextures", false, "export subtextures instead of full atlases")
	fs.BoolVar(subtextures, "s", false, "export subtextures instead of full atlases (shorthand)")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("extract requires a source package path")
	}

	source := rest[0]
	dest := *target
	if dest == "" {
		dest = source
	}

	return deppth.Extract(source, dest, splitCSV(*entries), *subtextures, logFn)
}

func runPack(args []string, logFn func(string)) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	source := fs.String("source", "", "source directory to pack")
	fs.StringVar(source, "s", "", "source directory to pack (shorthand)")
	target := fs.String("target", "", "output package path")
	fs.StringVar(target, "t", "", "output package path (shorthand)")
	entries := fs.String("entries", "", "comma-separated entry patterns to pack")
	fs.StringVar(entries, "e", "", "comma-separated entry patterns to pack (shorthand)")
	fs.Parse(args)

	src := *source
	if src == "" {
		var err error
		src, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	return deppth.Pack(src, *target, splitCSV(*entries), logFn)
}

func runPatch(args []string, logFn func(string)) error {
	fs := flag.NewFlagSet("patch", flag.ExitOnError)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("patch requires a package path")
	}

	return deppth.Patch(rest[0], rest[1:], logFn)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
