package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type FindingKind string

const (
	FindingBlackhole    FindingKind = "blackhole"
	FindingAsymmetric   FindingKind = "asymmetric"
	FindingPeering      FindingKind = "peering"
	FindingOverlap      FindingKind = "overlap"
	FindingMissingRoute FindingKind = "missing_route"
	FindingVPNDown      FindingKind = "vpn_down"
	FindingVPNPartial   FindingKind = "vpn_partial"
	FindingDXDown       FindingKind = "dx_down"
	FindingDXDegraded   FindingKind = "dx_degraded"
	FindingVIFDown      FindingKind = "vif_down"
	FindingBGPDown      FindingKind = "bgp_down"
	FindingBGPPartial   FindingKind = "bgp_partial"
)

// Finding is one detected configuration or health defect. Location is a
// human label (route table name, VPC name, VIF name) rather than an id.
type Finding struct {
	Kind     FindingKind
	Severity Severity
	Location string
	Message  string
}
