// Command shipcsv converts the legacy comma separated ship table into the
// YAML ship data read by trek.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"trek/internal/factory"
)

var encodings = map[string]encoding.Encoding{
	"utf-8":  unicode.UTF8,
	"cp1252": charmap.Windows1252,
	"cp437":  charmap.CodePage437,
	"latin1": charmap.ISO8859_1,
}

func main() {
	var (
		input      = flag.String("in", "ships.csv", "Path to the legacy ship table")
		outputFile = flag.String("output", "", "Output YAML file path (prints to stdout if not specified)")
		charset    = flag.String("encoding", "cp1252", "Character set of the table: utf-8, cp1252, cp437 or latin1")
		check      = flag.Bool("check", false, "Validate the table without writing YAML")
	)
	flag.Parse()

	classes, err := convert(*input, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ship table: %v\n", err)
		os.Exit(1)
	}

	// The catalog rejects duplicate and inconsistent classes
	if _, err := factory.NewCatalog(classes); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid ship table: %v\n", err)
		os.Exit(1)
	}
	if *check {
		fmt.Printf("%d ship classes OK\n", len(classes))
		return
	}

	data, err := factory.EncodeCatalog(classes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ship data: %v\n", err)
		os.Exit(1)
	}

	if *outputFile == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outputFile, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ship data: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d ship classes to %s\n", len(classes), *outputFile)
}

func convert(path, charset string) ([]factory.ShipClass, error) {
	enc, ok := encodings[strings.ToLower(charset)]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", charset)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = enc.NewDecoder().Reader(f)
	return factory.ParseShipCSV(r)
}
