// Package analyze inspects a completed catalog for configuration and
// health defects. Checks are independent: each emits its own contiguous
// block of findings and no check suppresses another's output.
package analyze

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mkanyo/topograph/internal/domain"
)

type Analyzer struct {
	cat *domain.Catalog
}

func New(cat *domain.Catalog) *Analyzer {
	return &Analyzer{cat: cat}
}

// FindIssues runs every check and concatenates their findings in fixed
// check order. Checks only read the catalog, so they run concurrently;
// ordering within each block is stable.
func (a *Analyzer) FindIssues() []domain.Finding {
	checks := []func() []domain.Finding{
		a.checkBlackholes,
		a.checkAsymmetricRouting,
		a.checkPeerings,
		a.checkCIDROverlaps,
		a.checkMissingRoutes,
		a.checkVPNTunnels,
		a.checkDirectConnect,
	}

	blocks := make([][]domain.Finding, len(checks))
	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			blocks[i] = check()
			return nil
		})
	}
	g.Wait()

	var findings []domain.Finding
	for _, block := range blocks {
		findings = append(findings, block...)
	}
	return findings
}

func (a *Analyzer) checkBlackholes() []domain.Finding {
	var findings []domain.Finding
	for _, rt := range a.cat.TGWRouteTables.All() {
		for i := range rt.Routes {
			route := &rt.Routes[i]
			if !route.IsBlackhole() {
				continue
			}
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingBlackhole,
				Severity: domain.SeverityWarning,
				Location: rt.Name,
				Message:  fmt.Sprintf("Blackhole route to %s in %s", route.Destination(), rt.Name),
			})
		}
	}
	return findings
}

func (a *Analyzer) checkAsymmetricRouting() []domain.Finding {
	var findings []domain.Finding
	for _, tgw := range a.cat.TGWs.All() {
		var atts []*domain.TGWAttachment
		for _, att := range a.cat.TGWAttachments.All() {
			if att.TGWID == tgw.ID {
				atts = append(atts, att)
			}
		}
		for _, src := range atts {
			for _, dst := range atts {
				if src.ID == dst.ID {
					continue
				}
				if a.canReach(src, dst) && !a.canReach(dst, src) {
					findings = append(findings, domain.Finding{
						Kind:     domain.FindingAsymmetric,
						Severity: domain.SeverityWarning,
						Location: fmt.Sprintf("%s → %s", src.Name, dst.Name),
						Message:  fmt.Sprintf("Asymmetric routing: %s can reach %s but not vice versa", src.Name, dst.Name),
					})
				}
			}
		}
	}
	return findings
}

// canReach is deliberately single-hop: it consults only the source
// attachment's associated route table, never an intermediate one.
func (a *Analyzer) canReach(src, dst *domain.TGWAttachment) bool {
	if src.AssociatedRouteTableID == "" {
		return false
	}
	rt, ok := a.cat.TGWRouteTables.Get(src.AssociatedRouteTableID)
	if !ok {
		return false
	}
	for _, cidr := range dst.CIDRs {
		for i := range rt.Routes {
			route := &rt.Routes[i]
			if route.IsBlackhole() {
				continue
			}
			if route.AttachmentID != dst.ID {
				continue
			}
			if RouteMatches(route.DestinationCIDR, cidr) {
				return true
			}
		}
	}
	return false
}

func (a *Analyzer) checkPeerings() []domain.Finding {
	var findings []domain.Finding
	for _, pcx := range a.cat.Peerings.All() {
		if pcx.Status == "active" {
			continue
		}
		findings = append(findings, domain.Finding{
			Kind:     domain.FindingPeering,
			Severity: domain.SeverityWarning,
			Location: pcx.Name,
			Message:  fmt.Sprintf("VPC Peering %s is not active (status: %s)", pcx.Name, pcx.Status),
		})
	}
	return findings
}

func (a *Analyzer) checkCIDROverlaps() []domain.Finding {
	var findings []domain.Finding
	vpcs := a.cat.VPCs.All()
	for i, vpc1 := range vpcs {
		for _, vpc2 := range vpcs[i+1:] {
			for _, cidr1 := range vpc1.CIDRs {
				for _, cidr2 := range vpc2.CIDRs {
					if !CIDROverlaps(cidr1, cidr2) {
						continue
					}
					findings = append(findings, domain.Finding{
						Kind:     domain.FindingOverlap,
						Severity: domain.SeverityWarning,
						Location: fmt.Sprintf("%s / %s", vpc1.Name, vpc2.Name),
						Message:  fmt.Sprintf("CIDR overlap: %s (%s) overlaps with %s (%s)", vpc1.Name, cidr1, vpc2.Name, cidr2),
					})
				}
			}
		}
	}
	return findings
}

func (a *Analyzer) checkMissingRoutes() []domain.Finding {
	var findings []domain.Finding
	for _, vpc := range a.cat.VPCs.All() {
		if vpc.TGWAttachmentID == "" {
			continue
		}
		hasTGWRoute := false
		for _, rt := range a.cat.VPCRouteTables.All() {
			if rt.VPCID != vpc.ID {
				continue
			}
			for i := range rt.Routes {
				if rt.Routes[i].TargetType == domain.TargetTGW {
					hasTGWRoute = true
					break
				}
			}
		}
		if !hasTGWRoute {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingMissingRoute,
				Severity: domain.SeverityInfo,
				Location: vpc.Name,
				Message:  fmt.Sprintf("VPC %s is attached to TGW but has no TGW routes in any route table", vpc.Name),
			})
		}
	}
	return findings
}

func (a *Analyzer) checkVPNTunnels() []domain.Finding {
	var findings []domain.Finding
	for _, vpn := range a.cat.VPNConnections.All() {
		var down []domain.VPNTunnel
		for _, t := range vpn.Tunnels {
			if t.Status != "UP" {
				down = append(down, t)
			}
		}
		if len(down) == len(vpn.Tunnels) && len(vpn.Tunnels) > 0 {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingVPNDown,
				Severity: domain.SeverityError,
				Location: vpn.Name,
				Message:  fmt.Sprintf("All tunnels DOWN for VPN %s", vpn.Name),
			})
			continue
		}
		for _, tunnel := range down {
			msg := tunnel.StatusMessage
			if msg == "" {
				msg = "No message"
			}
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingVPNPartial,
				Severity: domain.SeverityWarning,
				Location: vpn.Name,
				Message:  fmt.Sprintf("Tunnel %s DOWN for %s: %s", tunnel.OutsideIP, vpn.Name, msg),
			})
		}
	}
	return findings
}

func (a *Analyzer) checkDirectConnect() []domain.Finding {
	var findings []domain.Finding
	for _, conn := range a.cat.DXConnections.All() {
		switch conn.State {
		case "down":
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingDXDown,
				Severity: domain.SeverityError,
				Location: conn.Name,
				Message:  fmt.Sprintf("Direct Connect connection %s is DOWN at %s", conn.Name, conn.Location),
			})
		case "available", "ordering", "requested":
		default:
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingDXDegraded,
				Severity: domain.SeverityWarning,
				Location: conn.Name,
				Message:  fmt.Sprintf("Direct Connect connection %s is in state: %s", conn.Name, conn.State),
			})
		}
	}

	for _, vif := range a.cat.DXVIFs.All() {
		if vif.State != "available" {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingVIFDown,
				Severity: domain.SeverityError,
				Location: vif.Name,
				Message:  fmt.Sprintf("VIF %s is in state: %s", vif.Name, vif.State),
			})
		}

		var down []domain.BGPPeer
		for _, p := range vif.BGPPeers {
			if !strings.EqualFold(p.Status, "up") {
				down = append(down, p)
			}
		}
		if len(down) == len(vif.BGPPeers) && len(vif.BGPPeers) > 0 {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingBGPDown,
				Severity: domain.SeverityError,
				Location: vif.Name,
				Message:  fmt.Sprintf("All BGP peers DOWN for VIF %s", vif.Name),
			})
			continue
		}
		for _, peer := range down {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingBGPPartial,
				Severity: domain.SeverityWarning,
				Location: vif.Name,
				Message:  fmt.Sprintf("BGP peer ASN %d (%s) DOWN on %s", peer.ASN, peer.CustomerAddress, vif.Name),
			})
		}
	}
	return findings
}
