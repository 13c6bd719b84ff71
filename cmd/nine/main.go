// Command nine is the CLI for the nine number puzzle.
package main

import "github.com/mesh-intelligence/nine/internal/cli"

func main() {
	cli.Execute()
}
