package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mkanyo/topograph/internal/domain"
)

func TestWrite_HubReport(t *testing.T) {
	cat := domain.NewCatalog()
	cat.LocalAccountID = "111111111111"
	cat.TGWs.Put("tgw-1", &domain.TransitGateway{ID: "tgw-1", Name: "hub"})
	cat.TGWAttachments.Put("att-1", &domain.TGWAttachment{
		ID: "att-1", TGWID: "tgw-1", Type: domain.AttachmentVPC, Name: "prod-vpc",
		State: "available", CrossAccount: true,
	})
	cat.Subnets.Put("subnet-1", &domain.Subnet{ID: "subnet-1", Class: domain.SubnetPublic})
	cat.VPNConnections.Put("vpn-1", &domain.VPNConnection{
		ID: "vpn-1", Name: "office", State: "available",
		Tunnels: []domain.VPNTunnel{{Status: "UP"}, {Status: "DOWN"}},
	})

	findings := []domain.Finding{
		{Kind: domain.FindingVPNPartial, Severity: domain.SeverityWarning, Location: "office", Message: "Tunnel 2.2.2.2 DOWN for office: No message"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, cat, findings, "export"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Topology snapshot (export, account 111111111111, hub mode)",
		"1 cross-account",
		"public",
		"1/2 tunnels UP",
		"Findings (0 error, 1 warning, 0 info)",
		"Tunnel 2.2.2.2 DOWN for office: No message",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, domain.NewCatalog(), nil, "live"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No issues found") {
		t.Errorf("expected clean report, got:\n%s", out)
	}
	if !strings.Contains(out, "standalone mode") {
		t.Errorf("empty catalog should be standalone, got:\n%s", out)
	}
}

func TestWrite_SeverityOrdering(t *testing.T) {
	findings := []domain.Finding{
		{Kind: domain.FindingMissingRoute, Severity: domain.SeverityInfo, Location: "vpc-a", Message: "info first in input"},
		{Kind: domain.FindingVPNDown, Severity: domain.SeverityError, Location: "vpn-a", Message: "error second in input"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, domain.NewCatalog(), findings, "export"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	errIdx := strings.Index(out, "error second in input")
	infoIdx := strings.Index(out, "info first in input")
	if errIdx == -1 || infoIdx == -1 {
		t.Fatalf("findings missing from report:\n%s", out)
	}
	if errIdx > infoIdx {
		t.Error("errors should be listed before info findings")
	}
}
