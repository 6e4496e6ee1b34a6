package analyze

import "net"

// RouteMatches reports whether a route destined for routeCIDR covers
// targetCIDR. The IPv4 default route covers everything. A string that
// does not parse as a network degrades to exact string equality.
func RouteMatches(routeCIDR, targetCIDR string) bool {
	if routeCIDR == "0.0.0.0/0" {
		return true
	}
	_, routeNet, errRoute := net.ParseCIDR(routeCIDR)
	_, targetNet, errTarget := net.ParseCIDR(targetCIDR)
	if errRoute != nil || errTarget != nil {
		return routeCIDR == targetCIDR
	}
	routeOnes, routeBits := routeNet.Mask.Size()
	targetOnes, targetBits := targetNet.Mask.Size()
	if routeBits != targetBits {
		return false
	}
	return routeOnes <= targetOnes && routeNet.Contains(targetNet.IP)
}

// CIDROverlaps reports whether two networks share any addresses.
// Malformed input is a non-overlap, never an error.
func CIDROverlaps(cidr1, cidr2 string) bool {
	_, net1, err1 := net.ParseCIDR(cidr1)
	_, net2, err2 := net.ParseCIDR(cidr2)
	if err1 != nil || err2 != nil {
		return false
	}
	return net1.Contains(net2.IP) || net2.Contains(net1.IP)
}
