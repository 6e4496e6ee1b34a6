package ingest

import (
	"github.com/mkanyo/topograph/internal/correlate"
	"github.com/mkanyo/topograph/internal/domain"
)

// Build maps the loaded field maps into a snapshot, applying the
// per-field defaulting rules (missing tag → empty name falls back to
// the id, missing state → empty string, missing ASN → 0). It never
// fails; absent batches simply leave their collections empty.
func Build(in *Input) *domain.Snapshot {
	snap := &domain.Snapshot{Catalog: domain.NewCatalog()}
	cat := snap.Catalog

	cat.LocalAccountID = str(in.Metadata, "aws_account_id")

	buildTGWs(cat, in)
	buildTGWAttachments(cat, in)
	buildTGWRouteTables(cat, in)
	buildTGWRouteDetails(snap, in)
	buildVPCs(cat, in)
	buildSubnets(cat, in)
	buildVPCRouteTables(snap, in)
	buildIGWs(cat, in)
	buildNATGateways(cat, in)
	buildPeerings(cat, in)
	buildVPNConnections(cat, in)
	buildCustomerGateways(cat, in)
	buildDXConnections(cat, in)
	buildDXGateways(cat, in)
	buildDXVIFs(cat, in)
	buildPrefixLists(cat, in)

	return snap
}

func buildTGWs(cat *domain.Catalog, in *Input) {
	for _, tgw := range list(in.TGWs, "TransitGateways") {
		id := str(tgw, "TransitGatewayId")
		if id == "" {
			continue
		}
		cat.TGWs.Put(id, &domain.TransitGateway{
			ID:      id,
			Name:    nameOr(nameFromTags(tgw, "Tags"), id),
			OwnerID: str(tgw, "OwnerId"),
			ASN:     integer(object(tgw, "Options"), "AmazonSideAsn"),
			State:   str(tgw, "State"),
		})
	}
}

func buildTGWAttachments(cat *domain.Catalog, in *Input) {
	for _, att := range list(in.TGWAttachments, "TransitGatewayAttachments") {
		id := str(att, "TransitGatewayAttachmentId")
		if id == "" {
			continue
		}
		resourceOwner := str(att, "ResourceOwnerId")
		tgwOwner := str(att, "TransitGatewayOwnerId")
		resourceID := str(att, "ResourceId")

		cat.TGWAttachments.Put(id, &domain.TGWAttachment{
			ID:              id,
			TGWID:           str(att, "TransitGatewayId"),
			Type:            domain.ParseAttachmentType(str(att, "ResourceType")),
			ResourceID:      resourceID,
			ResourceOwnerID: resourceOwner,
			Name:            nameOr(nameFromTags(att, "Tags"), resourceID),
			State:           str(att, "State"),
			CrossAccount:    isCrossAccount(resourceOwner, tgwOwner, cat.LocalAccountID),
			TGWOwnerID:      tgwOwner,
		})
	}
}

// isCrossAccount holds the invariant: the resource owner differs from
// the TGW owner, falling back to the local account id when the TGW
// owner is not visible.
func isCrossAccount(resourceOwner, tgwOwner, localAccount string) bool {
	if tgwOwner != "" && resourceOwner != "" {
		return resourceOwner != tgwOwner
	}
	if localAccount != "" && resourceOwner != "" {
		return resourceOwner != localAccount
	}
	return false
}

func buildTGWRouteTables(cat *domain.Catalog, in *Input) {
	for _, rt := range list(in.TGWRouteTables, "TransitGatewayRouteTables") {
		id := str(rt, "TransitGatewayRouteTableId")
		if id == "" {
			continue
		}
		cat.TGWRouteTables.Put(id, &domain.TGWRouteTable{
			ID:                 id,
			TGWID:              str(rt, "TransitGatewayId"),
			Name:               nameOr(nameFromTags(rt, "Tags"), id),
			DefaultAssociation: boolean(rt, "DefaultAssociationRouteTable"),
			DefaultPropagation: boolean(rt, "DefaultPropagationRouteTable"),
		})
	}
}

func buildTGWRouteDetails(snap *domain.Snapshot, in *Input) {
	cat := snap.Catalog

	for rtID, doc := range in.Associations {
		if _, ok := cat.TGWRouteTables.Get(rtID); !ok {
			continue
		}
		for _, assoc := range list(doc, "Associations") {
			snap.Associations = append(snap.Associations, domain.AssociationRecord{
				RouteTableID: rtID,
				AttachmentID: str(assoc, "TransitGatewayAttachmentId"),
				State:        str(assoc, "State"),
			})
		}
	}

	for rtID, doc := range in.Propagations {
		if _, ok := cat.TGWRouteTables.Get(rtID); !ok {
			continue
		}
		for _, prop := range list(doc, "TransitGatewayRouteTablePropagations") {
			snap.Propagations = append(snap.Propagations, domain.PropagationRecord{
				RouteTableID: rtID,
				AttachmentID: str(prop, "TransitGatewayAttachmentId"),
				State:        str(prop, "State"),
			})
		}
	}

	for rtID, doc := range in.Routes {
		rt, ok := cat.TGWRouteTables.Get(rtID)
		if !ok {
			continue
		}
		for _, route := range list(doc, "Routes") {
			state := domain.RouteActive
			if str(route, "State") == "blackhole" {
				state = domain.RouteBlackhole
			}
			origin := domain.RouteStatic
			if str(route, "Type") == "propagated" {
				origin = domain.RoutePropagated
			}

			var attID, resourceID, resourceType string
			if atts := list(route, "TransitGatewayAttachments"); len(atts) > 0 {
				attID = str(atts[0], "TransitGatewayAttachmentId")
				resourceID = str(atts[0], "ResourceId")
				resourceType = str(atts[0], "ResourceType")
			}

			rt.Routes = append(rt.Routes, domain.TGWRoute{
				DestinationCIDR: str(route, "DestinationCidrBlock"),
				PrefixListID:    str(route, "PrefixListId"),
				AttachmentID:    attID,
				ResourceID:      resourceID,
				ResourceType:    resourceType,
				Origin:          origin,
				State:           state,
			})
		}
	}
}

func buildVPCs(cat *domain.Catalog, in *Input) {
	for _, vpc := range list(in.VPCs, "Vpcs") {
		id := str(vpc, "VpcId")
		if id == "" {
			continue
		}
		cidrs := []string{str(vpc, "CidrBlock")}
		for _, assoc := range list(vpc, "CidrBlockAssociationSet") {
			cidr := str(assoc, "CidrBlock")
			if cidr != "" && !contains(cidrs, cidr) {
				cidrs = append(cidrs, cidr)
			}
		}
		cat.VPCs.Put(id, &domain.VPC{
			ID:      id,
			Name:    nameOr(nameFromTags(vpc, "Tags"), id),
			CIDRs:   cidrs,
			OwnerID: str(vpc, "OwnerId"),
			Default: boolean(vpc, "IsDefault"),
		})
	}
}

func buildSubnets(cat *domain.Catalog, in *Input) {
	for _, subnet := range list(in.Subnets, "Subnets") {
		id := str(subnet, "SubnetId")
		if id == "" {
			continue
		}
		cat.Subnets.Put(id, &domain.Subnet{
			ID:    id,
			VPCID: str(subnet, "VpcId"),
			CIDR:  str(subnet, "CidrBlock"),
			AZ:    str(subnet, "AvailabilityZone"),
			Name:  nameOr(nameFromTags(subnet, "Tags"), id),
			Class: domain.SubnetIsolated,
		})
	}
}

func buildVPCRouteTables(snap *domain.Snapshot, in *Input) {
	for _, rt := range list(in.VPCRouteTables, "RouteTables") {
		id := str(rt, "RouteTableId")
		if id == "" {
			continue
		}
		table := &domain.VPCRouteTable{
			ID:    id,
			VPCID: str(rt, "VpcId"),
			Name:  nameOr(nameFromTags(rt, "Tags"), id),
		}

		for _, assoc := range list(rt, "Associations") {
			snap.SubnetAssociations = append(snap.SubnetAssociations, domain.SubnetAssociationRecord{
				RouteTableID: id,
				SubnetID:     str(assoc, "SubnetId"),
				Main:         boolean(assoc, "Main"),
			})
		}

		for _, route := range list(rt, "Routes") {
			dest := str(route, "DestinationCidrBlock")
			if dest == "" {
				dest = str(route, "DestinationPrefixListId")
			}
			targetType, targetID := correlate.ResolveRouteTarget(correlate.RawRouteTarget{
				GatewayID:        str(route, "GatewayId"),
				NATGatewayID:     str(route, "NatGatewayId"),
				TransitGatewayID: str(route, "TransitGatewayId"),
				VPCPeeringID:     str(route, "VpcPeeringConnectionId"),
				ENIID:            str(route, "NetworkInterfaceId"),
			})
			state := domain.RouteActive
			if str(route, "State") == "blackhole" {
				state = domain.RouteBlackhole
			}
			table.Routes = append(table.Routes, domain.VPCRoute{
				Destination: dest,
				TargetType:  targetType,
				TargetID:    targetID,
				State:       state,
			})
		}

		snap.Catalog.VPCRouteTables.Put(id, table)
	}
}

func buildIGWs(cat *domain.Catalog, in *Input) {
	for _, igw := range list(in.IGWs, "InternetGateways") {
		igwID := str(igw, "InternetGatewayId")
		if igwID == "" {
			continue
		}
		for _, att := range list(igw, "Attachments") {
			if str(att, "State") != "available" {
				continue
			}
			vpcID := str(att, "VpcId")
			cat.IGWs[igwID] = vpcID
			if vpc, ok := cat.VPCs.Get(vpcID); ok {
				vpc.IGWID = igwID
			}
		}
	}
}

func buildNATGateways(cat *domain.Catalog, in *Input) {
	for _, nat := range list(in.NATGateways, "NatGateways") {
		id := str(nat, "NatGatewayId")
		if id == "" {
			continue
		}
		vpcID := str(nat, "VpcId")
		cat.NATGateways.Put(id, &domain.NATGateway{
			ID:       id,
			VPCID:    vpcID,
			SubnetID: str(nat, "SubnetId"),
			State:    str(nat, "State"),
			Name:     nameOr(nameFromTags(nat, "Tags"), id),
		})
		if vpc, ok := cat.VPCs.Get(vpcID); ok {
			vpc.NATGatewayIDs = append(vpc.NATGatewayIDs, id)
		}
	}
}

func buildPeerings(cat *domain.Catalog, in *Input) {
	for _, pcx := range list(in.Peerings, "VpcPeeringConnections") {
		id := str(pcx, "VpcPeeringConnectionId")
		if id == "" {
			continue
		}
		req := object(pcx, "RequesterVpcInfo")
		acc := object(pcx, "AccepterVpcInfo")
		cat.Peerings.Put(id, &domain.VPCPeering{
			ID:             id,
			Name:           nameOr(nameFromTags(pcx, "Tags"), id),
			Status:         str(object(pcx, "Status"), "Code"),
			RequesterVPCID: str(req, "VpcId"),
			RequesterCIDR:  str(req, "CidrBlock"),
			AccepterVPCID:  str(acc, "VpcId"),
			AccepterCIDR:   str(acc, "CidrBlock"),
		})
	}
}

func buildVPNConnections(cat *domain.Catalog, in *Input) {
	for _, vpn := range list(in.VPNConnections, "VpnConnections") {
		id := str(vpn, "VpnConnectionId")
		if id == "" {
			continue
		}

		var tunnels []domain.VPNTunnel
		for _, telem := range list(vpn, "VgwTelemetry") {
			status := str(telem, "Status")
			if status == "" {
				status = "DOWN"
			}
			tunnels = append(tunnels, domain.VPNTunnel{
				OutsideIP:          str(telem, "OutsideIpAddress"),
				Status:             status,
				StatusMessage:      str(telem, "StatusMessage"),
				AcceptedRouteCount: int(integer(telem, "AcceptedRouteCount")),
				LastStatusChange:   str(telem, "LastStatusChange"),
			})
		}

		options := object(vpn, "Options")
		localCIDR := str(options, "LocalIpv4NetworkCidr")
		if localCIDR == "" {
			localCIDR = "0.0.0.0/0"
		}
		remoteCIDR := str(options, "RemoteIpv4NetworkCidr")
		if remoteCIDR == "" {
			remoteCIDR = "0.0.0.0/0"
		}

		var routes []string
		for _, r := range list(vpn, "Routes") {
			routes = append(routes, str(r, "DestinationCidrBlock"))
		}

		cat.VPNConnections.Put(id, &domain.VPNConnection{
			ID:                 id,
			Name:               nameOr(nameFromTags(vpn, "Tags"), id),
			State:              str(vpn, "State"),
			CustomerGatewayID:  str(vpn, "CustomerGatewayId"),
			TGWID:              str(vpn, "TransitGatewayId"),
			VPNGatewayID:       str(vpn, "VpnGatewayId"),
			Tunnels:            tunnels,
			StaticRoutesOnly:   boolean(options, "StaticRoutesOnly"),
			EnableAcceleration: boolean(options, "EnableAcceleration"),
			LocalCIDR:          localCIDR,
			RemoteCIDR:         remoteCIDR,
			Routes:             routes,
		})
	}
}

func buildCustomerGateways(cat *domain.Catalog, in *Input) {
	for _, cgw := range list(in.CustomerGateways, "CustomerGateways") {
		id := str(cgw, "CustomerGatewayId")
		if id == "" {
			continue
		}
		cat.CustomerGateways.Put(id, &domain.CustomerGateway{
			ID:         id,
			Name:       nameOr(nameFromTags(cgw, "Tags"), id),
			IPAddress:  str(cgw, "IpAddress"),
			BGPASN:     numeric(cgw, "BgpAsn"),
			State:      str(cgw, "State"),
			DeviceName: str(cgw, "DeviceName"),
		})
	}
}

func buildDXConnections(cat *domain.Catalog, in *Input) {
	for _, conn := range list(in.DXConnections, "connections") {
		id := str(conn, "connectionId")
		if id == "" {
			continue
		}
		awsDevice := str(conn, "awsDeviceV2")
		if awsDevice == "" {
			awsDevice = str(conn, "awsDevice")
		}
		cat.DXConnections.Put(id, &domain.DXConnection{
			ID:                id,
			Name:              nameOr(nameOr(str(conn, "connectionName"), nameFromTags(conn, "tags")), id),
			State:             str(conn, "connectionState"),
			Location:          str(conn, "location"),
			Bandwidth:         str(conn, "bandwidth"),
			VLAN:              int(integer(conn, "vlan")),
			PartnerName:       str(conn, "partnerName"),
			ProviderName:      str(conn, "providerName"),
			LogicalRedundancy: str(conn, "hasLogicalRedundancy") == "yes",
			AWSDevice:         awsDevice,
		})
	}
}

func buildDXGateways(cat *domain.Catalog, in *Input) {
	for _, gw := range list(in.DXGateways, "directConnectGateways") {
		id := str(gw, "directConnectGatewayId")
		if id == "" {
			continue
		}
		cat.DXGateways.Put(id, &domain.DXGateway{
			ID:           id,
			Name:         nameOr(str(gw, "directConnectGatewayName"), id),
			AmazonASN:    integer(gw, "amazonSideAsn"),
			OwnerAccount: str(gw, "ownerAccount"),
			State:        str(gw, "directConnectGatewayState"),
		})
	}
}

func buildDXVIFs(cat *domain.Catalog, in *Input) {
	for _, vif := range list(in.DXVIFs, "virtualInterfaces") {
		id := str(vif, "virtualInterfaceId")
		if id == "" {
			continue
		}

		var peers []domain.BGPPeer
		for _, peer := range list(vif, "bgpPeers") {
			status := str(peer, "bgpStatus")
			if status == "" {
				status = "down"
			}
			peers = append(peers, domain.BGPPeer{
				PeerID:          str(peer, "bgpPeerId"),
				ASN:             integer(peer, "asn"),
				AmazonAddress:   str(peer, "amazonAddress"),
				CustomerAddress: str(peer, "customerAddress"),
				State:           str(peer, "bgpPeerState"),
				Status:          status,
			})
		}

		var prefixes []string
		for _, p := range list(vif, "routeFilterPrefixes") {
			prefixes = append(prefixes, str(p, "cidr"))
		}

		mtu := int(integer(vif, "mtu"))
		if mtu == 0 {
			mtu = 1500
		}

		cat.DXVIFs.Put(id, &domain.DXVirtualInterface{
			ID:                  id,
			Name:                nameOr(nameOr(str(vif, "virtualInterfaceName"), nameFromTags(vif, "tags")), id),
			Type:                str(vif, "virtualInterfaceType"),
			State:               str(vif, "virtualInterfaceState"),
			ConnectionID:        str(vif, "connectionId"),
			VLAN:                int(integer(vif, "vlan")),
			CustomerASN:         integer(vif, "asn"),
			AmazonASN:           integer(vif, "amazonSideAsn"),
			AmazonAddress:       str(vif, "amazonAddress"),
			CustomerAddress:     str(vif, "customerAddress"),
			MTU:                 mtu,
			JumboCapable:        boolean(vif, "jumboFrameCapable"),
			BGPPeers:            peers,
			DXGatewayID:         str(vif, "directConnectGatewayId"),
			VirtualGatewayID:    str(vif, "virtualGatewayId"),
			RouteFilterPrefixes: prefixes,
		})
	}
}

func buildPrefixLists(cat *domain.Catalog, in *Input) {
	for _, pl := range list(in.PrefixLists, "PrefixLists") {
		id := str(pl, "PrefixListId")
		if id == "" {
			continue
		}
		cat.PrefixLists[id] = domain.ShortenPrefixListName(str(pl, "PrefixListName"))
	}
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
