//go:build integration
// +build integration

package main

import (
	"os"
	"strings"
	"testing"

	"boscoin.io/ballot/cmd/ballot/cmd"
)

// Run the program as a test, so the coverage of the integration tests can be
// gathered. The test arguments are filtered out.
func TestIntegration(t *testing.T) {
	var filteredArgs []string
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") ||
			strings.HasPrefix(arg, "-httptest.") {
			continue
		}
		filteredArgs = append(filteredArgs, arg)
	}
	cmd.SetArgs(filteredArgs)
	main()
}
