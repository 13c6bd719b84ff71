// Package nine holds build-level facts about the nine module.
package nine

// Version is the release version of the nine module and CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/nine"
