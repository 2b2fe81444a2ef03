// view.go implements the CLI "view" command that displays a summary of an
// eligibility file without writing any output.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roadmaphealthcare/ediot/formats"
	"github.com/roadmaphealthcare/ediot/formats/eligibility"
)

// cmdView parses an eligibility file and prints record and segment counts.
func cmdView(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	conv := formats.Detect(filepath.Base(path), data)
	if conv == nil {
		fmt.Fprintf(os.Stderr, "Unsupported file format: %s\n", filepath.Base(path))
		os.Exit(1)
	}
	if fi, err := os.Stat(path); err == nil {
		fmt.Printf("File:        %s (%s)\n", filepath.Base(path), humanSize(int(fi.Size())))
	} else {
		fmt.Printf("File:        %s\n", filepath.Base(path))
	}
	fmt.Printf("Format:      %s\n", conv.Name())
	fmt.Println(strings.Repeat("─", 60))

	records, segments, err := eligibility.Summary(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Records:     %d\n", records)
	if len(segments) == 0 {
		return
	}
	fmt.Println("Segments:")
	keys := make([]string, 0, len(segments))
	for key := range segments {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %-6s %d\n", key, segments[key])
	}
}
