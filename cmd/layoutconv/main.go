// layoutconv parses a raw layout file and writes its canonical re-encoding
// next to the input.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/layoutforge/backend/internal/kle"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <layout-file>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	input := os.Args[1]

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", input, err)
		os.Exit(1)
	}

	kb, err := kle.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing %s: %v\n", input, err)
		os.Exit(1)
	}

	output := outputPath(input)
	if err := os.WriteFile(output, []byte(kle.ToRawFormat(kb)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d keys", input, len(kb.Keys))
	if kb.Metadata != nil && kb.Metadata.Name != nil {
		fmt.Printf(" (%s)", *kb.Metadata.Name)
	}
	fmt.Printf(" -> %s\n", output)
}

// outputPath derives the output file name from the input name, inserting
// "_output" before the extension.
func outputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_output" + ext
}
