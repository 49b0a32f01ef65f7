// Package gamecatalog holds build metadata for the game catalog.
package gamecatalog

// Version is the release version. Overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/gamecatalog/pkg/gamecatalog.Version=...".
var Version = "0.1.0"

// ModulePath is the Go module path of this project.
const ModulePath = "github.com/mesh-intelligence/gamecatalog"
