package correlate

import (
	"strings"

	"github.com/mkanyo/topograph/internal/domain"
)

// RawRouteTarget carries the mutually exclusive target fields of a raw
// VPC route record.
type RawRouteTarget struct {
	GatewayID        string
	NATGatewayID     string
	TransitGatewayID string
	VPCPeeringID     string
	ENIID            string
}

// ResolveRouteTarget classifies a raw VPC route target. Fields are
// consulted in fixed priority order and only the first match wins; a
// gateway id with an unrecognized prefix falls through to the later
// fields.
func ResolveRouteTarget(raw RawRouteTarget) (domain.RouteTargetType, string) {
	if gw := raw.GatewayID; gw != "" {
		switch {
		case gw == "local":
			return domain.TargetLocal, "local"
		case strings.HasPrefix(gw, "igw-"):
			return domain.TargetIGW, gw
		case strings.HasPrefix(gw, "vgw-"):
			return domain.TargetVGW, gw
		case strings.HasPrefix(gw, "eigw-"):
			return domain.TargetEgressIGW, gw
		case strings.HasPrefix(gw, "vpce-"):
			return domain.TargetVPCEndpoint, gw
		}
	}
	if raw.NATGatewayID != "" {
		return domain.TargetNAT, raw.NATGatewayID
	}
	if raw.TransitGatewayID != "" {
		return domain.TargetTGW, raw.TransitGatewayID
	}
	if raw.VPCPeeringID != "" {
		return domain.TargetVPCPeering, raw.VPCPeeringID
	}
	if raw.ENIID != "" {
		return domain.TargetENI, raw.ENIID
	}
	return domain.TargetUnknown, ""
}
