package topograph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkanyo/topograph/internal/domain"
)

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// An export with one blackhole route and one VPC that is not attached
// to the TGW must yield exactly the blackhole warning end to end.
func TestPipeline_ExportDirToFindings(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "metadata.json", `{"aws_account_id": "111111111111"}`)
	writeExport(t, dir, "transit-gateways.json", `{"TransitGateways": [
		{"TransitGatewayId": "tgw-1", "OwnerId": "111111111111", "State": "available"}]}`)
	writeExport(t, dir, "transit-gateway-attachments.json", `{"TransitGatewayAttachments": [
		{"TransitGatewayAttachmentId": "tgw-attach-1", "TransitGatewayId": "tgw-1",
		 "ResourceType": "vpc", "ResourceId": "vpc-remote", "State": "available"}]}`)
	writeExport(t, dir, "transit-gateway-route-tables.json", `{"TransitGatewayRouteTables": [
		{"TransitGatewayRouteTableId": "tgw-rtb-1", "TransitGatewayId": "tgw-1"}]}`)
	writeExport(t, dir, "routes-tgw-rtb-1.json", `{"Routes": [
		{"DestinationCidrBlock": "10.1.0.0/16", "Type": "static", "State": "active",
		 "TransitGatewayAttachments": [{"TransitGatewayAttachmentId": "tgw-attach-1",
		  "ResourceId": "vpc-remote", "ResourceType": "vpc"}]},
		{"DestinationCidrBlock": "10.9.0.0/16", "Type": "static", "State": "blackhole"}]}`)
	writeExport(t, dir, "vpcs.json", `{"Vpcs": [
		{"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16", "OwnerId": "111111111111"}]}`)

	snap, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cat := BuildCatalog(snap)
	findings := FindIssues(cat)

	var blackholes, missing int
	for _, f := range findings {
		switch f.Kind {
		case domain.FindingBlackhole:
			blackholes++
			if f.Message != "Blackhole route to 10.9.0.0/16 in tgw-rtb-1" {
				t.Errorf("unexpected blackhole message: %q", f.Message)
			}
			if f.Severity != SeverityWarning {
				t.Errorf("expected warning severity, got %s", f.Severity)
			}
		case domain.FindingMissingRoute:
			missing++
		}
	}
	if blackholes != 1 {
		t.Errorf("expected 1 blackhole finding, got %d", blackholes)
	}
	if missing != 0 {
		t.Errorf("expected no missing-route findings for an unattached VPC, got %d", missing)
	}
	if len(findings) != 1 {
		t.Errorf("expected 1 finding total, got %d: %v", len(findings), findings)
	}
}

func TestPipeline_EmptyDirIsClean(t *testing.T) {
	snap, err := LoadSnapshot(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if findings := FindIssues(BuildCatalog(snap)); len(findings) != 0 {
		t.Errorf("expected no findings for an empty export, got %v", findings)
	}
}
