package domain

import (
	"fmt"
	"strings"
)

// Aggregated health projections for the presentation layer. These are
// pure reads; entity state is never touched.

type LinkHealth string

const (
	HealthAllUp   LinkHealth = "all_up"
	HealthPartial LinkHealth = "partial"
	HealthDown    LinkHealth = "down"
	HealthNoPeers LinkHealth = "no_peers"
)

func (v *VPNConnection) TunnelsUp() int {
	up := 0
	for _, t := range v.Tunnels {
		if t.Status == "UP" {
			up++
		}
	}
	return up
}

func (v *VPNConnection) TunnelHealth() LinkHealth {
	up := v.TunnelsUp()
	switch {
	case up == len(v.Tunnels):
		return HealthAllUp
	case up > 0:
		return HealthPartial
	default:
		return HealthDown
	}
}

func (v *VPNConnection) TunnelSummary() string {
	return fmt.Sprintf("%d/%d tunnels UP", v.TunnelsUp(), len(v.Tunnels))
}

func (vif *DXVirtualInterface) BGPPeersUp() int {
	up := 0
	for _, p := range vif.BGPPeers {
		if strings.EqualFold(p.Status, "up") {
			up++
		}
	}
	return up
}

func (vif *DXVirtualInterface) BGPHealth() LinkHealth {
	if len(vif.BGPPeers) == 0 {
		return HealthNoPeers
	}
	up := vif.BGPPeersUp()
	switch {
	case up == len(vif.BGPPeers):
		return HealthAllUp
	case up > 0:
		return HealthPartial
	default:
		return HealthDown
	}
}

func (vif *DXVirtualInterface) BGPSummary() string {
	return fmt.Sprintf("%d/%d BGP UP", vif.BGPPeersUp(), len(vif.BGPPeers))
}
