// Package correlate cross-links independently loaded entities and
// backfills information the viewing account cannot observe directly.
// Every lookup against another collection is a soft miss: a dangling id
// skips the enrichment, never fails the run.
package correlate

import (
	"sort"

	"github.com/mkanyo/topograph/internal/domain"
)

// Link runs every correlation step over the snapshot's catalog. It is
// the single writer during the correlation phase and must run exactly
// once, before classification.
func Link(snap *domain.Snapshot) {
	cat := snap.Catalog
	applyAssociations(cat, snap.Associations)
	applyPropagations(cat, snap.Propagations)
	linkVPCAttachments(cat)
	recoverCrossAccountCIDRs(cat)
	linkVPCRouteTables(cat, snap.SubnetAssociations)
}

// applyAssociations records settled associations on both sides of the
// edge. States other than "associated" (disassociating, pending, ...)
// are ignored.
func applyAssociations(cat *domain.Catalog, records []domain.AssociationRecord) {
	for _, rec := range records {
		if rec.State != "associated" || rec.AttachmentID == "" {
			continue
		}
		rt, ok := cat.TGWRouteTables.Get(rec.RouteTableID)
		if !ok {
			continue
		}
		rt.Associations = append(rt.Associations, rec.AttachmentID)
		if att, ok := cat.TGWAttachments.Get(rec.AttachmentID); ok {
			att.AssociatedRouteTableID = rt.ID
		}
	}
}

func applyPropagations(cat *domain.Catalog, records []domain.PropagationRecord) {
	for _, rec := range records {
		if rec.State != "enabled" || rec.AttachmentID == "" {
			continue
		}
		rt, ok := cat.TGWRouteTables.Get(rec.RouteTableID)
		if !ok {
			continue
		}
		rt.Propagations = append(rt.Propagations, rec.AttachmentID)
		if att, ok := cat.TGWAttachments.Get(rec.AttachmentID); ok {
			att.PropagatingTo = append(att.PropagatingTo, rt.ID)
		}
	}
}

// linkVPCAttachments copies CIDRs and name from locally known VPCs onto
// their attachments and sets the back-reference. Cross-account VPC
// attachments stay CIDR-less here.
func linkVPCAttachments(cat *domain.Catalog) {
	for _, att := range cat.TGWAttachments.All() {
		if att.Type != domain.AttachmentVPC {
			continue
		}
		vpc, ok := cat.VPCs.Get(att.ResourceID)
		if !ok {
			continue
		}
		att.CIDRs = vpc.CIDRs
		att.Name = vpc.Name
		vpc.TGWAttachmentID = att.ID
	}
}

// recoverCrossAccountCIDRs mines propagated route destinations for the
// CIDRs of attachments the local account cannot describe. A spoke VPC's
// owner cannot be queried, but whatever it propagated into a shared
// route table is visible. Only attachments that still lack CIDRs are
// filled; linked local VPCs stay authoritative.
func recoverCrossAccountCIDRs(cat *domain.Catalog) {
	candidates := make(map[string]map[string]bool)
	for _, rt := range cat.TGWRouteTables.All() {
		for _, route := range rt.Routes {
			if route.Origin != domain.RoutePropagated {
				continue
			}
			if route.DestinationCIDR == "" || route.AttachmentID == "" {
				continue
			}
			set := candidates[route.AttachmentID]
			if set == nil {
				set = make(map[string]bool)
				candidates[route.AttachmentID] = set
			}
			set[route.DestinationCIDR] = true
		}
	}

	for _, att := range cat.TGWAttachments.All() {
		if att.Type != domain.AttachmentVPC && att.Type != domain.AttachmentVPN {
			continue
		}
		if len(att.CIDRs) > 0 {
			continue
		}
		set, ok := candidates[att.ID]
		if !ok {
			continue
		}
		cidrs := make([]string, 0, len(set))
		for cidr := range set {
			cidrs = append(cidrs, cidr)
		}
		sort.Strings(cidrs)
		att.CIDRs = cidrs
	}
}

func linkVPCRouteTables(cat *domain.Catalog, records []domain.SubnetAssociationRecord) {
	for _, rec := range records {
		rt, ok := cat.VPCRouteTables.Get(rec.RouteTableID)
		if !ok {
			continue
		}
		if rec.Main {
			rt.Main = true
			if vpc, ok := cat.VPCs.Get(rt.VPCID); ok {
				vpc.MainRouteTableID = rt.ID
			}
		}
		if rec.SubnetID != "" {
			rt.SubnetIDs = append(rt.SubnetIDs, rec.SubnetID)
			if subnet, ok := cat.Subnets.Get(rec.SubnetID); ok {
				subnet.RouteTableID = rt.ID
			}
		}
	}
}
