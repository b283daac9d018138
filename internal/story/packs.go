package story

import (
	_ "embed"

	"github.com/vovakirdan/chimera/internal/registry"
)

//go:embed content/chimera.yaml
var chimeraYAML []byte

func init() {
	registry.Register("chimera", func() (registry.Story, error) {
		return Parse(chimeraYAML)
	})
}
