// # internal/engine/parser/generated.go
package parser

import (
	"bufio"
	"bytes"
	"strings"
)

var generatedMarkers = []string{
	"do not edit",
	"@generated",
	"generated by",
	"autogenerated",
}

const generatedHeaderLines = 5

// IsGeneratedFile reports whether the first few lines carry a code
// generator's marker comment.
func IsGeneratedFile(content []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for i := 0; i < generatedHeaderLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}
		lower := strings.ToLower(line)
		for _, marker := range generatedMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
