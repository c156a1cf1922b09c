// Command flagdump prints the raised flags in a flag file, one per line.
// With -catalog, identifiers are resolved to names; with -diff, two files
// are compared and changes printed as +flag / -flag lines.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/damus-io/flagbit"
	"github.com/damus-io/flagbit/catalog"
	"github.com/damus-io/flagbit/flagfile"
)

var (
	catalogPath = flag.String("catalog", "", "YAML flag catalog for resolving identifiers to names")
	diffPath    = flag.String("diff", "", "earlier flag file to diff against")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-catalog names.yaml] [-diff old.sav] file.sav\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var names *catalog.Catalog
	if *catalogPath != "" {
		var err error
		names, err = catalog.LoadFile(*catalogPath)
		if err != nil {
			logger.Error("loading catalog", "error", err)
			os.Exit(1)
		}
	}

	words, err := flagfile.Load(flag.Arg(0))
	if err != nil {
		logger.Error("loading flag file", "error", err)
		os.Exit(1)
	}

	label := func(id uint32) string {
		if names != nil {
			if name, ok := names.Name(id); ok {
				return name
			}
			logger.Warn("flag not in catalog", "id", fmt.Sprintf("0x%04X", id))
		}
		return fmt.Sprintf("0x%04X", id)
	}

	if *diffPath != "" {
		prev, err := flagfile.Load(*diffPath)
		if err != nil {
			logger.Error("loading diff base", "error", err)
			os.Exit(1)
		}
		raised, cleared, err := flagbit.Diff(prev, words)
		if err != nil {
			logger.Error("diffing flag files", "error", err)
			os.Exit(1)
		}
		printEach(raised, "+", label)
		printEach(cleared, "-", label)
		return
	}

	printEach(flagbit.Raised(words), "", label)
}

func printEach(ids *roaring.Bitmap, prefix string, label func(uint32) string) {
	it := ids.Iterator()
	for it.HasNext() {
		fmt.Printf("%s%s\n", prefix, label(it.Next()))
	}
}
