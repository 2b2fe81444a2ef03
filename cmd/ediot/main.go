// Ediot is a CLI tool and HTTP server that converts 384 eligibility files
// into flat tabular output (CSV, Excel, JSON).
package main

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/roadmaphealthcare/ediot/formats/eligibility"
)

// version is the application version, embedded in API responses.
const version = "1.0.0"

// usage prints command-line help to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, `ediot v%s
384 eligibility file converter

Usage:
  ediot view    <file>                 Show eligibility file summary
  ediot convert <file> [output_dir]    Convert to CSV and Excel
  ediot columns [dictionary]           Print the output column layout
  ediot dictionaries                   List built-in segment dictionaries
  ediot serve   [port]                 Start the HTTP API (default port 8080)
  ediot healthcheck [port]             Check a running server
  ediot help                           Show this help message

Examples:
  ediot view eligibility.384
  ediot convert eligibility.384 ./output
  ediot columns 384
  ediot serve 9090
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]

	switch cmd {
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		fmt.Println(version)
	case "healthcheck":
		cmdHealthcheck(args)
	case "view":
		requireFile(args)
		cmdView(args[0])
	case "convert":
		requireFile(args)
		cmdConvert(args[0], outputDir(args))
	case "columns":
		cmdColumns(args)
	case "dictionaries":
		cmdDictionaries()
	case "serve", "server":
		port := "8080"
		if len(args) > 0 {
			port = args[0]
		}
		cmdServe(port)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// requireFile exits with an error if no file argument was provided.
func requireFile(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: file path required")
		usage()
		os.Exit(1)
	}
}

// outputDir returns the output directory from args, defaulting to ".".
func outputDir(args []string) string {
	if len(args) >= 2 {
		return args[1]
	}
	return "."
}
