package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	dxtypes "github.com/aws/aws-sdk-go-v2/service/directconnect/types"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/mkanyo/topograph/internal/correlate"
	"github.com/mkanyo/topograph/internal/domain"
)

func tagName(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func dxTagName(tags []dxtypes.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func fallback(name, alt string) string {
	if name != "" {
		return name
	}
	return alt
}

func toTransitGateway(tgw *ec2types.TransitGateway) *domain.TransitGateway {
	id := aws.ToString(tgw.TransitGatewayId)
	var asn int64
	if tgw.Options != nil {
		asn = aws.ToInt64(tgw.Options.AmazonSideAsn)
	}
	return &domain.TransitGateway{
		ID:      id,
		Name:    fallback(tagName(tgw.Tags), id),
		OwnerID: aws.ToString(tgw.OwnerId),
		ASN:     asn,
		State:   string(tgw.State),
	}
}

func toTGWAttachment(att *ec2types.TransitGatewayAttachment, localAccountID string) *domain.TGWAttachment {
	id := aws.ToString(att.TransitGatewayAttachmentId)
	resourceOwner := aws.ToString(att.ResourceOwnerId)
	tgwOwner := aws.ToString(att.TransitGatewayOwnerId)
	resourceID := aws.ToString(att.ResourceId)

	crossAccount := false
	if tgwOwner != "" && resourceOwner != "" {
		crossAccount = resourceOwner != tgwOwner
	} else if localAccountID != "" && resourceOwner != "" {
		crossAccount = resourceOwner != localAccountID
	}

	return &domain.TGWAttachment{
		ID:              id,
		TGWID:           aws.ToString(att.TransitGatewayId),
		Type:            domain.ParseAttachmentType(string(att.ResourceType)),
		ResourceID:      resourceID,
		ResourceOwnerID: resourceOwner,
		Name:            fallback(tagName(att.Tags), resourceID),
		State:           string(att.State),
		CrossAccount:    crossAccount,
		TGWOwnerID:      tgwOwner,
	}
}

func toTGWRouteTable(rt *ec2types.TransitGatewayRouteTable) *domain.TGWRouteTable {
	id := aws.ToString(rt.TransitGatewayRouteTableId)
	return &domain.TGWRouteTable{
		ID:                 id,
		TGWID:              aws.ToString(rt.TransitGatewayId),
		Name:               fallback(tagName(rt.Tags), id),
		DefaultAssociation: aws.ToBool(rt.DefaultAssociationRouteTable),
		DefaultPropagation: aws.ToBool(rt.DefaultPropagationRouteTable),
	}
}

func toTGWRoute(route *ec2types.TransitGatewayRoute) domain.TGWRoute {
	state := domain.RouteActive
	if route.State == ec2types.TransitGatewayRouteStateBlackhole {
		state = domain.RouteBlackhole
	}
	origin := domain.RouteStatic
	if route.Type == ec2types.TransitGatewayRouteTypePropagated {
		origin = domain.RoutePropagated
	}

	var attID, resourceID, resourceType string
	if len(route.TransitGatewayAttachments) > 0 {
		att := route.TransitGatewayAttachments[0]
		attID = aws.ToString(att.TransitGatewayAttachmentId)
		resourceID = aws.ToString(att.ResourceId)
		resourceType = string(att.ResourceType)
	}

	return domain.TGWRoute{
		DestinationCIDR: aws.ToString(route.DestinationCidrBlock),
		PrefixListID:    aws.ToString(route.PrefixListId),
		AttachmentID:    attID,
		ResourceID:      resourceID,
		ResourceType:    resourceType,
		Origin:          origin,
		State:           state,
	}
}

func toVPC(vpc *ec2types.Vpc) *domain.VPC {
	id := aws.ToString(vpc.VpcId)
	cidrs := []string{aws.ToString(vpc.CidrBlock)}
	for _, assoc := range vpc.CidrBlockAssociationSet {
		cidr := aws.ToString(assoc.CidrBlock)
		if cidr != "" && !containsString(cidrs, cidr) {
			cidrs = append(cidrs, cidr)
		}
	}
	return &domain.VPC{
		ID:      id,
		Name:    fallback(tagName(vpc.Tags), id),
		CIDRs:   cidrs,
		OwnerID: aws.ToString(vpc.OwnerId),
		Default: aws.ToBool(vpc.IsDefault),
	}
}

func toSubnet(subnet *ec2types.Subnet) *domain.Subnet {
	id := aws.ToString(subnet.SubnetId)
	return &domain.Subnet{
		ID:    id,
		VPCID: aws.ToString(subnet.VpcId),
		CIDR:  aws.ToString(subnet.CidrBlock),
		AZ:    aws.ToString(subnet.AvailabilityZone),
		Name:  fallback(tagName(subnet.Tags), id),
		Class: domain.SubnetIsolated,
	}
}

func toVPCRouteTable(rt *ec2types.RouteTable) (*domain.VPCRouteTable, []domain.SubnetAssociationRecord) {
	id := aws.ToString(rt.RouteTableId)
	table := &domain.VPCRouteTable{
		ID:    id,
		VPCID: aws.ToString(rt.VpcId),
		Name:  fallback(tagName(rt.Tags), id),
	}

	var assocs []domain.SubnetAssociationRecord
	for _, assoc := range rt.Associations {
		assocs = append(assocs, domain.SubnetAssociationRecord{
			RouteTableID: id,
			SubnetID:     aws.ToString(assoc.SubnetId),
			Main:         aws.ToBool(assoc.Main),
		})
	}

	for _, route := range rt.Routes {
		dest := aws.ToString(route.DestinationCidrBlock)
		if dest == "" {
			dest = aws.ToString(route.DestinationPrefixListId)
		}
		targetType, targetID := correlate.ResolveRouteTarget(correlate.RawRouteTarget{
			GatewayID:        aws.ToString(route.GatewayId),
			NATGatewayID:     aws.ToString(route.NatGatewayId),
			TransitGatewayID: aws.ToString(route.TransitGatewayId),
			VPCPeeringID:     aws.ToString(route.VpcPeeringConnectionId),
			ENIID:            aws.ToString(route.NetworkInterfaceId),
		})
		state := domain.RouteActive
		if route.State == ec2types.RouteStateBlackhole {
			state = domain.RouteBlackhole
		}
		table.Routes = append(table.Routes, domain.VPCRoute{
			Destination: dest,
			TargetType:  targetType,
			TargetID:    targetID,
			State:       state,
		})
	}

	return table, assocs
}

func toNATGateway(nat *ec2types.NatGateway) *domain.NATGateway {
	id := aws.ToString(nat.NatGatewayId)
	return &domain.NATGateway{
		ID:       id,
		VPCID:    aws.ToString(nat.VpcId),
		SubnetID: aws.ToString(nat.SubnetId),
		State:    string(nat.State),
		Name:     fallback(tagName(nat.Tags), id),
	}
}

func toVPCPeering(pcx *ec2types.VpcPeeringConnection) *domain.VPCPeering {
	id := aws.ToString(pcx.VpcPeeringConnectionId)
	peering := &domain.VPCPeering{
		ID:   id,
		Name: fallback(tagName(pcx.Tags), id),
	}
	if pcx.Status != nil {
		peering.Status = string(pcx.Status.Code)
	}
	if pcx.RequesterVpcInfo != nil {
		peering.RequesterVPCID = aws.ToString(pcx.RequesterVpcInfo.VpcId)
		peering.RequesterCIDR = aws.ToString(pcx.RequesterVpcInfo.CidrBlock)
	}
	if pcx.AccepterVpcInfo != nil {
		peering.AccepterVPCID = aws.ToString(pcx.AccepterVpcInfo.VpcId)
		peering.AccepterCIDR = aws.ToString(pcx.AccepterVpcInfo.CidrBlock)
	}
	return peering
}

func toVPNConnection(vpn *ec2types.VpnConnection) *domain.VPNConnection {
	id := aws.ToString(vpn.VpnConnectionId)

	var tunnels []domain.VPNTunnel
	for _, telem := range vpn.VgwTelemetry {
		status := string(telem.Status)
		if status == "" {
			status = "DOWN"
		}
		var lastChange string
		if telem.LastStatusChange != nil {
			lastChange = telem.LastStatusChange.Format(time.RFC3339)
		}
		tunnels = append(tunnels, domain.VPNTunnel{
			OutsideIP:          aws.ToString(telem.OutsideIpAddress),
			Status:             status,
			StatusMessage:      aws.ToString(telem.StatusMessage),
			AcceptedRouteCount: int(aws.ToInt32(telem.AcceptedRouteCount)),
			LastStatusChange:   lastChange,
		})
	}

	conn := &domain.VPNConnection{
		ID:                id,
		Name:              fallback(tagName(vpn.Tags), id),
		State:             string(vpn.State),
		CustomerGatewayID: aws.ToString(vpn.CustomerGatewayId),
		TGWID:             aws.ToString(vpn.TransitGatewayId),
		VPNGatewayID:      aws.ToString(vpn.VpnGatewayId),
		Tunnels:           tunnels,
		LocalCIDR:         "0.0.0.0/0",
		RemoteCIDR:        "0.0.0.0/0",
	}
	if vpn.Options != nil {
		conn.StaticRoutesOnly = aws.ToBool(vpn.Options.StaticRoutesOnly)
		conn.EnableAcceleration = aws.ToBool(vpn.Options.EnableAcceleration)
		if cidr := aws.ToString(vpn.Options.LocalIpv4NetworkCidr); cidr != "" {
			conn.LocalCIDR = cidr
		}
		if cidr := aws.ToString(vpn.Options.RemoteIpv4NetworkCidr); cidr != "" {
			conn.RemoteCIDR = cidr
		}
	}
	for _, route := range vpn.Routes {
		conn.Routes = append(conn.Routes, aws.ToString(route.DestinationCidrBlock))
	}
	return conn
}

func toCustomerGateway(cgw *ec2types.CustomerGateway) *domain.CustomerGateway {
	id := aws.ToString(cgw.CustomerGatewayId)
	return &domain.CustomerGateway{
		ID:         id,
		Name:       fallback(tagName(cgw.Tags), id),
		IPAddress:  aws.ToString(cgw.IpAddress),
		BGPASN:     aws.ToString(cgw.BgpAsn),
		State:      aws.ToString(cgw.State),
		DeviceName: aws.ToString(cgw.DeviceName),
	}
}

func toDXConnection(conn *dxtypes.Connection) *domain.DXConnection {
	id := aws.ToString(conn.ConnectionId)
	awsDevice := aws.ToString(conn.AwsDeviceV2)
	if awsDevice == "" {
		awsDevice = aws.ToString(conn.AwsDevice)
	}
	return &domain.DXConnection{
		ID:                id,
		Name:              fallback(fallback(aws.ToString(conn.ConnectionName), dxTagName(conn.Tags)), id),
		State:             string(conn.ConnectionState),
		Location:          aws.ToString(conn.Location),
		Bandwidth:         aws.ToString(conn.Bandwidth),
		VLAN:              int(conn.Vlan),
		PartnerName:       aws.ToString(conn.PartnerName),
		ProviderName:      aws.ToString(conn.ProviderName),
		LogicalRedundancy: conn.HasLogicalRedundancy == dxtypes.HasLogicalRedundancyYes,
		AWSDevice:         awsDevice,
	}
}

func toDXGateway(gw *dxtypes.DirectConnectGateway) *domain.DXGateway {
	id := aws.ToString(gw.DirectConnectGatewayId)
	return &domain.DXGateway{
		ID:           id,
		Name:         fallback(aws.ToString(gw.DirectConnectGatewayName), id),
		AmazonASN:    aws.ToInt64(gw.AmazonSideAsn),
		OwnerAccount: aws.ToString(gw.OwnerAccount),
		State:        string(gw.DirectConnectGatewayState),
	}
}

func toDXVirtualInterface(vif *dxtypes.VirtualInterface) *domain.DXVirtualInterface {
	id := aws.ToString(vif.VirtualInterfaceId)

	var peers []domain.BGPPeer
	for _, peer := range vif.BgpPeers {
		status := string(peer.BgpStatus)
		if status == "" {
			status = "down"
		}
		peers = append(peers, domain.BGPPeer{
			PeerID:          aws.ToString(peer.BgpPeerId),
			ASN:             int64(peer.Asn),
			AmazonAddress:   aws.ToString(peer.AmazonAddress),
			CustomerAddress: aws.ToString(peer.CustomerAddress),
			State:           string(peer.BgpPeerState),
			Status:          status,
		})
	}

	var prefixes []string
	for _, p := range vif.RouteFilterPrefixes {
		prefixes = append(prefixes, aws.ToString(p.Cidr))
	}

	mtu := int(aws.ToInt32(vif.Mtu))
	if mtu == 0 {
		mtu = 1500
	}

	return &domain.DXVirtualInterface{
		ID:                  id,
		Name:                fallback(fallback(aws.ToString(vif.VirtualInterfaceName), dxTagName(vif.Tags)), id),
		Type:                aws.ToString(vif.VirtualInterfaceType),
		State:               string(vif.VirtualInterfaceState),
		ConnectionID:        aws.ToString(vif.ConnectionId),
		VLAN:                int(vif.Vlan),
		CustomerASN:         int64(vif.Asn),
		AmazonASN:           aws.ToInt64(vif.AmazonSideAsn),
		AmazonAddress:       aws.ToString(vif.AmazonAddress),
		CustomerAddress:     aws.ToString(vif.CustomerAddress),
		MTU:                 mtu,
		JumboCapable:        aws.ToBool(vif.JumboFrameCapable),
		BGPPeers:            peers,
		DXGatewayID:         aws.ToString(vif.DirectConnectGatewayId),
		VirtualGatewayID:    aws.ToString(vif.VirtualGatewayId),
		RouteFilterPrefixes: prefixes,
	}
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
