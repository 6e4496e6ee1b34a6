// Package report renders an analysis run as plain text for the
// terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mkanyo/topograph/internal/domain"
)

// Write renders the catalog and findings to w. Source labels where the
// snapshot came from ("export" or "live").
func Write(w io.Writer, cat *domain.Catalog, findings []domain.Finding, source string) error {
	mode := "standalone"
	switch {
	case cat.IsHub():
		mode = "hub"
	case cat.IsSpoke():
		mode = "spoke"
	}

	fmt.Fprintf(w, "Topology snapshot (%s", source)
	if cat.LocalAccountID != "" {
		fmt.Fprintf(w, ", account %s", cat.LocalAccountID)
	}
	fmt.Fprintf(w, ", %s mode)\n\n", mode)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Transit gateways\t%d\n", cat.TGWs.Len())
	fmt.Fprintf(tw, "TGW attachments\t%d (%d cross-account)\n", cat.TGWAttachments.Len(), len(cat.CrossAccountAttachments()))
	fmt.Fprintf(tw, "TGW route tables\t%d\n", cat.TGWRouteTables.Len())
	fmt.Fprintf(tw, "VPCs\t%d\n", cat.VPCs.Len())
	fmt.Fprintf(tw, "Subnets\t%d\n", cat.Subnets.Len())
	fmt.Fprintf(tw, "VPC peerings\t%d\n", cat.Peerings.Len())
	fmt.Fprintf(tw, "VPN connections\t%d\n", cat.VPNConnections.Len())
	fmt.Fprintf(tw, "DX connections\t%d\n", cat.DXConnections.Len())
	fmt.Fprintf(tw, "DX virtual interfaces\t%d\n", cat.DXVIFs.Len())
	if err := tw.Flush(); err != nil {
		return err
	}

	writeSubnetClasses(w, cat)
	writeAttachments(w, cat)
	writeVPNs(w, cat)
	writeVIFs(w, cat)
	return writeFindings(w, findings)
}

func writeSubnetClasses(w io.Writer, cat *domain.Catalog) {
	if cat.Subnets.Len() == 0 {
		return
	}
	counts := make(map[domain.SubnetClass]int)
	for _, subnet := range cat.Subnets.All() {
		counts[subnet.Class]++
	}
	fmt.Fprintf(w, "\nSubnet classes\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, class := range []domain.SubnetClass{domain.SubnetPublic, domain.SubnetPrivate, domain.SubnetTGWAttached, domain.SubnetIsolated} {
		if counts[class] > 0 {
			fmt.Fprintf(tw, "  %s\t%d\n", class, counts[class])
		}
	}
	tw.Flush()
}

func writeAttachments(w io.Writer, cat *domain.Catalog) {
	if cat.TGWAttachments.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "\nTGW attachments\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, att := range cat.TGWAttachments.All() {
		scope := "local"
		if att.CrossAccount {
			scope = "cross-account"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", att.ID, att.Type, att.Name, att.State, scope)
	}
	tw.Flush()
}

func writeVPNs(w io.Writer, cat *domain.Catalog) {
	if cat.VPNConnections.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "\nVPN connections\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, vpn := range cat.VPNConnections.All() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", vpn.ID, vpn.Name, vpn.State, vpn.TunnelSummary())
	}
	tw.Flush()
}

func writeVIFs(w io.Writer, cat *domain.Catalog) {
	if cat.DXVIFs.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "\nDX virtual interfaces\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, vif := range cat.DXVIFs.All() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", vif.ID, vif.Name, vif.State, vif.BGPSummary())
	}
	tw.Flush()
}

func writeFindings(w io.Writer, findings []domain.Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintf(w, "\nNo issues found\n")
		return err
	}

	counts := make(map[domain.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	fmt.Fprintf(w, "\nFindings (%d error, %d warning, %d info)\n",
		counts[domain.SeverityError], counts[domain.SeverityWarning], counts[domain.SeverityInfo])

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, severity := range []domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo} {
		for _, f := range findings {
			if f.Severity != severity {
				continue
			}
			location := f.Location
			if location == "" {
				location = "-"
			}
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\n", severity, location, f.Message)
		}
	}
	return tw.Flush()
}
