package spores

import (
	"github.com/mga4all/spores-go/internal/engines/deployment"
	"github.com/mga4all/spores-go/pkg/core"
	"github.com/mga4all/spores-go/pkg/network"
)

// ExtractDeployment reads the realized capacities of every technology in
// spec from a solved network, summed across physical units sharing a
// technology identifier. Technologies with no deployed units read as 0.
func ExtractDeployment(n network.Network, spec *core.GroupSpec) *core.Snapshot {
	return deployment.Extract(n, spec)
}
