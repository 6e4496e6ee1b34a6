package domain

type AttachmentType string

const (
	AttachmentVPC           AttachmentType = "vpc"
	AttachmentVPN           AttachmentType = "vpn"
	AttachmentDirectConnect AttachmentType = "direct-connect-gateway"
	AttachmentPeering       AttachmentType = "peering"
	AttachmentTGWPeering    AttachmentType = "tgw-peering"
	AttachmentConnect       AttachmentType = "connect"
	AttachmentUnknown       AttachmentType = "unknown"
)

// ParseAttachmentType maps a provider ResourceType string onto the closed
// enumeration, folding unrecognized values into AttachmentUnknown.
func ParseAttachmentType(s string) AttachmentType {
	switch t := AttachmentType(s); t {
	case AttachmentVPC, AttachmentVPN, AttachmentDirectConnect,
		AttachmentPeering, AttachmentTGWPeering, AttachmentConnect:
		return t
	default:
		return AttachmentUnknown
	}
}

type RouteOrigin string

const (
	RouteStatic     RouteOrigin = "static"
	RoutePropagated RouteOrigin = "propagated"
)

type RouteState string

const (
	RouteActive    RouteState = "active"
	RouteBlackhole RouteState = "blackhole"
)

type SubnetClass string

const (
	SubnetPublic      SubnetClass = "public"
	SubnetPrivate     SubnetClass = "private"
	SubnetIsolated    SubnetClass = "isolated"
	SubnetTGWAttached SubnetClass = "tgw-attached"
)

type RouteTargetType string

const (
	TargetLocal       RouteTargetType = "local"
	TargetIGW         RouteTargetType = "igw"
	TargetNAT         RouteTargetType = "nat"
	TargetTGW         RouteTargetType = "tgw"
	TargetVPCPeering  RouteTargetType = "vpc-peering"
	TargetVPCEndpoint RouteTargetType = "vpc-endpoint"
	TargetVGW         RouteTargetType = "vgw"
	TargetENI         RouteTargetType = "eni"
	TargetEgressIGW   RouteTargetType = "egress-igw"
	TargetUnknown     RouteTargetType = "unknown"
)

type TransitGateway struct {
	ID      string
	Name    string
	OwnerID string
	ASN     int64
	State   string
}

type TGWRoute struct {
	DestinationCIDR string
	PrefixListID    string
	AttachmentID    string
	ResourceID      string
	ResourceType    string
	Origin          RouteOrigin
	State           RouteState
}

// Destination prefers the prefix-list id over the CIDR for display.
func (r *TGWRoute) Destination() string {
	if r.PrefixListID != "" {
		return r.PrefixListID
	}
	return r.DestinationCIDR
}

func (r *TGWRoute) IsBlackhole() bool {
	return r.State == RouteBlackhole
}

type TGWRouteTable struct {
	ID                 string
	TGWID              string
	Name               string
	DefaultAssociation bool
	DefaultPropagation bool
	Routes             []TGWRoute
	Associations       []string
	Propagations       []string
}

type TGWAttachment struct {
	ID                     string
	TGWID                  string
	Type                   AttachmentType
	ResourceID             string
	ResourceOwnerID        string
	Name                   string
	State                  string
	CIDRs                  []string
	AssociatedRouteTableID string
	PropagatingTo          []string
	CrossAccount           bool
	TGWOwnerID             string
}

type VPC struct {
	ID               string
	Name             string
	CIDRs            []string
	OwnerID          string
	Default          bool
	IGWID            string
	NATGatewayIDs    []string
	TGWAttachmentID  string
	MainRouteTableID string
}

type VPCRoute struct {
	Destination string
	TargetType  RouteTargetType
	TargetID    string
	State       RouteState
}

func (r *VPCRoute) IsBlackhole() bool {
	return r.State == RouteBlackhole
}

type VPCRouteTable struct {
	ID        string
	VPCID     string
	Name      string
	Main      bool
	Routes    []VPCRoute
	SubnetIDs []string
}

type Subnet struct {
	ID           string
	VPCID        string
	CIDR         string
	AZ           string
	Name         string
	RouteTableID string
	Class        SubnetClass
}

type VPCPeering struct {
	ID             string
	Name           string
	Status         string
	RequesterVPCID string
	RequesterCIDR  string
	AccepterVPCID  string
	AccepterCIDR   string
}

type VPNTunnel struct {
	OutsideIP          string
	Status             string
	StatusMessage      string
	AcceptedRouteCount int
	LastStatusChange   string
}

type VPNConnection struct {
	ID                 string
	Name               string
	State              string
	CustomerGatewayID  string
	TGWID              string
	VPNGatewayID       string
	Tunnels            []VPNTunnel
	StaticRoutesOnly   bool
	EnableAcceleration bool
	LocalCIDR          string
	RemoteCIDR         string
	Routes             []string
}

type CustomerGateway struct {
	ID         string
	Name       string
	IPAddress  string
	BGPASN     string
	State      string
	DeviceName string
}

type BGPPeer struct {
	PeerID          string
	ASN             int64
	AmazonAddress   string
	CustomerAddress string
	State           string
	Status          string
}

type DXConnection struct {
	ID                string
	Name              string
	State             string
	Location          string
	Bandwidth         string
	VLAN              int
	PartnerName       string
	ProviderName      string
	LogicalRedundancy bool
	AWSDevice         string
}

type DXVirtualInterface struct {
	ID                  string
	Name                string
	Type                string
	State               string
	ConnectionID        string
	VLAN                int
	CustomerASN         int64
	AmazonASN           int64
	AmazonAddress       string
	CustomerAddress     string
	MTU                 int
	JumboCapable        bool
	BGPPeers            []BGPPeer
	DXGatewayID         string
	VirtualGatewayID    string
	RouteFilterPrefixes []string
}

type DXGateway struct {
	ID           string
	Name         string
	AmazonASN    int64
	OwnerAccount string
	State        string
}

type NATGateway struct {
	ID       string
	VPCID    string
	SubnetID string
	State    string
	Name     string
}

// AssociationRecord is a raw route-table association as reported by the
// provider, before state filtering.
type AssociationRecord struct {
	RouteTableID string
	AttachmentID string
	State        string
}

// PropagationRecord is a raw route-table propagation as reported by the
// provider, before state filtering.
type PropagationRecord struct {
	RouteTableID string
	AttachmentID string
	State        string
}

// SubnetAssociationRecord is a raw VPC route-table association as
// reported by the provider.
type SubnetAssociationRecord struct {
	RouteTableID string
	SubnetID     string
	Main         bool
}

// Snapshot is one loaded batch of records: the populated (but not yet
// correlated) catalog plus the raw edge records the correlator filters.
// Both the export-file loader and the live collector produce this shape.
type Snapshot struct {
	Catalog            *Catalog
	Associations       []AssociationRecord
	Propagations       []PropagationRecord
	SubnetAssociations []SubnetAssociationRecord
}
