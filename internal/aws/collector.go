package aws

import (
	"context"
	"errors"

	"github.com/mkanyo/topograph/internal/domain"
)

// Collector assembles a snapshot from live describe calls. A failed
// call degrades that resource type to an empty batch instead of
// aborting the run; the joined errors come back alongside whatever was
// collected so the caller can warn.
type Collector struct {
	client    *Client
	accountID string
}

func NewCollector(client *Client, accountID string) *Collector {
	return &Collector{client: client, accountID: accountID}
}

func (c *Collector) Collect(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Catalog: domain.NewCatalog()}
	cat := snap.Catalog
	cat.LocalAccountID = c.accountID

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	tgws, err := c.client.TransitGateways(ctx)
	collect(err)
	for _, tgw := range tgws {
		cat.TGWs.Put(tgw.ID, tgw)
	}

	atts, err := c.client.TransitGatewayAttachments(ctx, c.accountID)
	collect(err)
	for _, att := range atts {
		cat.TGWAttachments.Put(att.ID, att)
	}

	tables, associations, propagations, err := c.client.TransitGatewayRouteTables(ctx)
	collect(err)
	for _, rt := range tables {
		cat.TGWRouteTables.Put(rt.ID, rt)
	}
	snap.Associations = associations
	snap.Propagations = propagations

	vpcs, err := c.client.VPCs(ctx)
	collect(err)
	for _, vpc := range vpcs {
		cat.VPCs.Put(vpc.ID, vpc)
	}

	subnets, err := c.client.Subnets(ctx)
	collect(err)
	for _, subnet := range subnets {
		cat.Subnets.Put(subnet.ID, subnet)
	}

	vpcTables, subnetAssocs, err := c.client.VPCRouteTables(ctx)
	collect(err)
	for _, rt := range vpcTables {
		cat.VPCRouteTables.Put(rt.ID, rt)
	}
	snap.SubnetAssociations = subnetAssocs

	igws, err := c.client.InternetGateways(ctx)
	collect(err)
	for igwID, vpcID := range igws {
		cat.IGWs[igwID] = vpcID
		if vpc, ok := cat.VPCs.Get(vpcID); ok {
			vpc.IGWID = igwID
		}
	}

	nats, err := c.client.NATGateways(ctx)
	collect(err)
	for _, nat := range nats {
		cat.NATGateways.Put(nat.ID, nat)
		if vpc, ok := cat.VPCs.Get(nat.VPCID); ok {
			vpc.NATGatewayIDs = append(vpc.NATGatewayIDs, nat.ID)
		}
	}

	peerings, err := c.client.VPCPeerings(ctx)
	collect(err)
	for _, pcx := range peerings {
		cat.Peerings.Put(pcx.ID, pcx)
	}

	vpns, err := c.client.VPNConnections(ctx)
	collect(err)
	for _, vpn := range vpns {
		cat.VPNConnections.Put(vpn.ID, vpn)
	}

	cgws, err := c.client.CustomerGateways(ctx)
	collect(err)
	for _, cgw := range cgws {
		cat.CustomerGateways.Put(cgw.ID, cgw)
	}

	dxConns, err := c.client.DXConnections(ctx)
	collect(err)
	for _, conn := range dxConns {
		cat.DXConnections.Put(conn.ID, conn)
	}

	dxGateways, err := c.client.DXGateways(ctx)
	collect(err)
	for _, gw := range dxGateways {
		cat.DXGateways.Put(gw.ID, gw)
	}

	vifs, err := c.client.DXVirtualInterfaces(ctx)
	collect(err)
	for _, vif := range vifs {
		cat.DXVIFs.Put(vif.ID, vif)
	}

	prefixLists, err := c.client.PrefixLists(ctx)
	collect(err)
	for id, name := range prefixLists {
		cat.PrefixLists[id] = name
	}

	return snap, errors.Join(errs...)
}
