// Package classify derives each subnet's internet-reachability class
// from the default route of its effective route table.
package classify

import "github.com/mkanyo/topograph/internal/domain"

// Subnets annotates every catalog subnet. A subnet without a resolvable
// route table, or whose table has no recognizable default route, stays
// isolated. The scan stops at the first default-route entry; a table is
// never read as having two simultaneous default routes.
func Subnets(cat *domain.Catalog) {
	for _, subnet := range cat.Subnets.All() {
		subnet.Class = classify(cat, subnet)
	}
}

func classify(cat *domain.Catalog, subnet *domain.Subnet) domain.SubnetClass {
	rtID := subnet.RouteTableID
	if rtID == "" {
		if vpc, ok := cat.VPCs.Get(subnet.VPCID); ok {
			rtID = vpc.MainRouteTableID
		}
	}
	if rtID == "" {
		return domain.SubnetIsolated
	}
	rt, ok := cat.VPCRouteTables.Get(rtID)
	if !ok {
		return domain.SubnetIsolated
	}

	for _, route := range rt.Routes {
		if route.Destination != "0.0.0.0/0" && route.Destination != "::/0" {
			continue
		}
		switch route.TargetType {
		case domain.TargetIGW:
			return domain.SubnetPublic
		case domain.TargetNAT:
			return domain.SubnetPrivate
		case domain.TargetTGW:
			return domain.SubnetTGWAttached
		default:
			return domain.SubnetIsolated
		}
	}
	return domain.SubnetIsolated
}
