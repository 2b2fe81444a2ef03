// convert.go implements the CLI commands that run a file through the
// format registry and print dictionary metadata.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/roadmaphealthcare/ediot/formats"
	"github.com/roadmaphealthcare/ediot/parsers/eligibility"
)

// convertFile reads a file, auto-detects its format, and returns the
// converted output files. Exits on error.
func convertFile(path string) []formats.ConvertedFile {
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
	files, err := conv.Convert(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", path, err)
		os.Exit(1)
	}
	return files
}

// cmdConvert converts a file and writes every produced output to outDir.
func cmdConvert(path, outDir string) {
	files := convertFile(path)
	if len(files) == 0 {
		fmt.Println("No output produced.")
		return
	}
	for _, f := range files {
		if err := writeFile(outDir, formats.SanitizeFilename(f.Name), f.Data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// cmdColumns prints the expanded output column layout of a dictionary.
func cmdColumns(args []string) {
	key := eligibility.DefaultDictionaryKey
	if len(args) > 0 {
		key = args[0]
	}
	dict, err := eligibility.GetDictionary(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dictionary:  %s\n", key)
	fmt.Printf("Header key:  %s\n", dict.HeaderKey())
	for i, col := range dict.Columns() {
		fmt.Printf("  %3d. %s\n", i+1, col)
	}
}

// cmdDictionaries lists the built-in segment dictionaries.
func cmdDictionaries() {
	list := eligibility.DictionaryList()
	keys := make([]string, 0, len(list))
	for key := range list {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%-12s %s\n", key, list[key])
	}
}
