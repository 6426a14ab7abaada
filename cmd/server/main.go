// Package main is the entry point for the chordkey API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/james-see/chordkey/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	flag.Parse()

	fmt.Printf("Starting chordkey API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)
	fmt.Println("Routes:")
	for _, r := range api.Routes() {
		fmt.Printf("  %-6s %s\n", r.Method, r.Path)
	}

	if err := api.StartServer(*port); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
