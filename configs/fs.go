// Package configs embeds the seed files copied into the runtime directory
// during installation.
package configs

import "embed"

//go:embed PERSONA.md
var FS embed.FS
