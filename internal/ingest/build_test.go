package ingest

import (
	"reflect"
	"testing"

	"github.com/mkanyo/topograph/internal/domain"
)

func TestBuild_TransitGateways(t *testing.T) {
	in := &Input{
		TGWs: map[string]any{
			"TransitGateways": []any{
				map[string]any{
					"TransitGatewayId": "tgw-1",
					"OwnerId":          "111111111111",
					"State":            "available",
					"Options":          map[string]any{"AmazonSideAsn": float64(64512)},
					"Tags": []any{
						map[string]any{"Key": "Name", "Value": "core-hub"},
					},
				},
				map[string]any{
					"TransitGatewayId": "tgw-2",
					"State":            "available",
				},
				map[string]any{"State": "available"},
			},
		},
	}

	snap := Build(in)

	if snap.Catalog.TGWs.Len() != 2 {
		t.Fatalf("expected 2 transit gateways (id-less entry skipped), got %d", snap.Catalog.TGWs.Len())
	}
	tgw, _ := snap.Catalog.TGWs.Get("tgw-1")
	if tgw.Name != "core-hub" {
		t.Errorf("expected Name tag, got %q", tgw.Name)
	}
	if tgw.ASN != 64512 {
		t.Errorf("expected ASN 64512, got %d", tgw.ASN)
	}
	unnamed, _ := snap.Catalog.TGWs.Get("tgw-2")
	if unnamed.Name != "tgw-2" {
		t.Errorf("untagged gateway should fall back to its id, got %q", unnamed.Name)
	}
}

func TestBuild_CrossAccountAttachment(t *testing.T) {
	att := func(id, resourceOwner, tgwOwner string) map[string]any {
		m := map[string]any{
			"TransitGatewayAttachmentId": id,
			"ResourceId":                 "vpc-x",
			"ResourceType":               "vpc",
		}
		if resourceOwner != "" {
			m["ResourceOwnerId"] = resourceOwner
		}
		if tgwOwner != "" {
			m["TransitGatewayOwnerId"] = tgwOwner
		}
		return m
	}
	in := &Input{
		Metadata: map[string]any{"aws_account_id": "111111111111"},
		TGWAttachments: map[string]any{
			"TransitGatewayAttachments": []any{
				att("att-same", "111111111111", "111111111111"),
				att("att-cross", "222222222222", "111111111111"),
				att("att-fallback", "222222222222", ""),
				att("att-unknown", "", ""),
			},
		},
	}

	cat := Build(in).Catalog

	cases := map[string]bool{
		"att-same":     false,
		"att-cross":    true,
		"att-fallback": true,
		"att-unknown":  false,
	}
	for id, want := range cases {
		a, ok := cat.TGWAttachments.Get(id)
		if !ok {
			t.Fatalf("attachment %s missing", id)
		}
		if a.CrossAccount != want {
			t.Errorf("%s: CrossAccount = %v, want %v", id, a.CrossAccount, want)
		}
	}
}

func TestBuild_TGWRouteDetails(t *testing.T) {
	in := &Input{
		TGWRouteTables: map[string]any{
			"TransitGatewayRouteTables": []any{
				map[string]any{"TransitGatewayRouteTableId": "rtb-1", "TransitGatewayId": "tgw-1"},
			},
		},
		Routes: map[string]map[string]any{
			"rtb-1": {
				"Routes": []any{
					map[string]any{
						"DestinationCidrBlock": "10.0.0.0/16",
						"Type":                 "propagated",
						"State":                "active",
						"TransitGatewayAttachments": []any{
							map[string]any{
								"TransitGatewayAttachmentId": "att-1",
								"ResourceId":                 "vpc-1",
								"ResourceType":               "vpc",
							},
						},
					},
					map[string]any{
						"DestinationCidrBlock": "10.1.0.0/16",
						"Type":                 "static",
						"State":                "blackhole",
					},
				},
			},
			"rtb-orphan": {
				"Routes": []any{
					map[string]any{"DestinationCidrBlock": "172.16.0.0/12"},
				},
			},
		},
		Associations: map[string]map[string]any{
			"rtb-1": {
				"Associations": []any{
					map[string]any{"TransitGatewayAttachmentId": "att-1", "State": "associated"},
				},
			},
		},
		Propagations: map[string]map[string]any{
			"rtb-1": {
				"TransitGatewayRouteTablePropagations": []any{
					map[string]any{"TransitGatewayAttachmentId": "att-1", "State": "enabled"},
				},
			},
		},
	}

	snap := Build(in)

	rt, ok := snap.Catalog.TGWRouteTables.Get("rtb-1")
	if !ok {
		t.Fatal("route table rtb-1 missing")
	}
	if len(rt.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(rt.Routes))
	}
	first := rt.Routes[0]
	if first.Origin != domain.RoutePropagated || first.State != domain.RouteActive {
		t.Errorf("unexpected first route: %+v", first)
	}
	if first.AttachmentID != "att-1" || first.ResourceID != "vpc-1" {
		t.Errorf("expected first attachment copied onto the route, got %+v", first)
	}
	if rt.Routes[1].State != domain.RouteBlackhole {
		t.Errorf("expected blackhole state, got %s", rt.Routes[1].State)
	}

	if len(snap.Associations) != 1 || snap.Associations[0].AttachmentID != "att-1" {
		t.Errorf("unexpected association records: %v", snap.Associations)
	}
	if len(snap.Propagations) != 1 || snap.Propagations[0].State != "enabled" {
		t.Errorf("unexpected propagation records: %v", snap.Propagations)
	}
}

func TestBuild_VPCDedupCIDRs(t *testing.T) {
	in := &Input{
		VPCs: map[string]any{
			"Vpcs": []any{
				map[string]any{
					"VpcId":     "vpc-1",
					"CidrBlock": "10.0.0.0/16",
					"CidrBlockAssociationSet": []any{
						map[string]any{"CidrBlock": "10.0.0.0/16"},
						map[string]any{"CidrBlock": "10.5.0.0/16"},
					},
				},
			},
		},
	}

	vpc, _ := Build(in).Catalog.VPCs.Get("vpc-1")
	if !reflect.DeepEqual(vpc.CIDRs, []string{"10.0.0.0/16", "10.5.0.0/16"}) {
		t.Errorf("unexpected CIDRs: %v", vpc.CIDRs)
	}
}

func TestBuild_VPCRouteTableTargets(t *testing.T) {
	in := &Input{
		VPCRouteTables: map[string]any{
			"RouteTables": []any{
				map[string]any{
					"RouteTableId": "rtb-1",
					"VpcId":        "vpc-1",
					"Associations": []any{
						map[string]any{"SubnetId": "subnet-1"},
						map[string]any{"Main": true},
					},
					"Routes": []any{
						map[string]any{"DestinationCidrBlock": "10.0.0.0/16", "GatewayId": "local"},
						map[string]any{"DestinationCidrBlock": "0.0.0.0/0", "TransitGatewayId": "tgw-1", "State": "blackhole"},
						map[string]any{"DestinationPrefixListId": "pl-1", "GatewayId": "vpce-1"},
					},
				},
			},
		},
	}

	snap := Build(in)

	rt, _ := snap.Catalog.VPCRouteTables.Get("rtb-1")
	if len(rt.Routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(rt.Routes))
	}
	if rt.Routes[0].TargetType != domain.TargetLocal {
		t.Errorf("expected local target, got %s", rt.Routes[0].TargetType)
	}
	if rt.Routes[1].TargetType != domain.TargetTGW || rt.Routes[1].State != domain.RouteBlackhole {
		t.Errorf("unexpected TGW route: %+v", rt.Routes[1])
	}
	if rt.Routes[2].Destination != "pl-1" || rt.Routes[2].TargetType != domain.TargetVPCEndpoint {
		t.Errorf("unexpected prefix-list route: %+v", rt.Routes[2])
	}

	if len(snap.SubnetAssociations) != 2 {
		t.Fatalf("expected 2 subnet association records, got %d", len(snap.SubnetAssociations))
	}
	if snap.SubnetAssociations[0].SubnetID != "subnet-1" || snap.SubnetAssociations[0].Main {
		t.Errorf("unexpected record: %+v", snap.SubnetAssociations[0])
	}
	if !snap.SubnetAssociations[1].Main {
		t.Errorf("expected main flag: %+v", snap.SubnetAssociations[1])
	}
}

func TestBuild_VPNDefaults(t *testing.T) {
	in := &Input{
		VPNConnections: map[string]any{
			"VpnConnections": []any{
				map[string]any{
					"VpnConnectionId": "vpn-1",
					"State":           "available",
					"VgwTelemetry": []any{
						map[string]any{"OutsideIpAddress": "1.1.1.1", "Status": "UP"},
						map[string]any{"OutsideIpAddress": "2.2.2.2"},
					},
				},
			},
		},
	}

	vpn, _ := Build(in).Catalog.VPNConnections.Get("vpn-1")
	if vpn.Tunnels[1].Status != "DOWN" {
		t.Errorf("missing telemetry status should default to DOWN, got %q", vpn.Tunnels[1].Status)
	}
	if vpn.LocalCIDR != "0.0.0.0/0" || vpn.RemoteCIDR != "0.0.0.0/0" {
		t.Errorf("missing traffic selectors should default to 0.0.0.0/0, got %q / %q", vpn.LocalCIDR, vpn.RemoteCIDR)
	}
}

func TestBuild_CustomerGatewayASNForms(t *testing.T) {
	in := &Input{
		CustomerGateways: map[string]any{
			"CustomerGateways": []any{
				map[string]any{"CustomerGatewayId": "cgw-1", "BgpAsn": "65000"},
				map[string]any{"CustomerGatewayId": "cgw-2", "BgpAsn": float64(65001)},
			},
		},
	}

	cat := Build(in).Catalog
	cgw1, _ := cat.CustomerGateways.Get("cgw-1")
	cgw2, _ := cat.CustomerGateways.Get("cgw-2")
	if cgw1.BGPASN != "65000" {
		t.Errorf("string ASN mangled: %q", cgw1.BGPASN)
	}
	if cgw2.BGPASN != "65001" {
		t.Errorf("numeric ASN mangled: %q", cgw2.BGPASN)
	}
}

func TestBuild_DXVIFDefaults(t *testing.T) {
	in := &Input{
		DXVIFs: map[string]any{
			"virtualInterfaces": []any{
				map[string]any{
					"virtualInterfaceId": "dxvif-1",
					"bgpPeers": []any{
						map[string]any{"asn": float64(65000)},
					},
				},
			},
		},
	}

	vif, _ := Build(in).Catalog.DXVIFs.Get("dxvif-1")
	if vif.MTU != 1500 {
		t.Errorf("missing MTU should default to 1500, got %d", vif.MTU)
	}
	if vif.BGPPeers[0].Status != "down" {
		t.Errorf("missing BGP status should default to down, got %q", vif.BGPPeers[0].Status)
	}
	if vif.Name != "dxvif-1" {
		t.Errorf("nameless VIF should fall back to its id, got %q", vif.Name)
	}
}

func TestBuild_IGWsAndNATs(t *testing.T) {
	in := &Input{
		VPCs: map[string]any{
			"Vpcs": []any{
				map[string]any{"VpcId": "vpc-1", "CidrBlock": "10.0.0.0/16"},
			},
		},
		IGWs: map[string]any{
			"InternetGateways": []any{
				map[string]any{
					"InternetGatewayId": "igw-1",
					"Attachments": []any{
						map[string]any{"State": "available", "VpcId": "vpc-1"},
					},
				},
				map[string]any{
					"InternetGatewayId": "igw-detached",
					"Attachments": []any{
						map[string]any{"State": "detaching", "VpcId": "vpc-1"},
					},
				},
			},
		},
		NATGateways: map[string]any{
			"NatGateways": []any{
				map[string]any{"NatGatewayId": "nat-1", "VpcId": "vpc-1", "State": "available"},
			},
		},
	}

	cat := Build(in).Catalog
	if cat.IGWs["igw-1"] != "vpc-1" {
		t.Errorf("expected igw-1 mapped to vpc-1, got %q", cat.IGWs["igw-1"])
	}
	if _, ok := cat.IGWs["igw-detached"]; ok {
		t.Error("detaching IGW should not be recorded")
	}
	vpc, _ := cat.VPCs.Get("vpc-1")
	if vpc.IGWID != "igw-1" {
		t.Errorf("expected IGW back-reference, got %q", vpc.IGWID)
	}
	if !reflect.DeepEqual(vpc.NATGatewayIDs, []string{"nat-1"}) {
		t.Errorf("unexpected NAT list: %v", vpc.NATGatewayIDs)
	}
}

func TestBuild_PrefixLists(t *testing.T) {
	in := &Input{
		PrefixLists: map[string]any{
			"PrefixLists": []any{
				map[string]any{"PrefixListId": "pl-1", "PrefixListName": "com.amazonaws.eu-west-1.s3"},
				map[string]any{"PrefixListId": "pl-2", "PrefixListName": "my-custom-list"},
			},
		},
	}

	cat := Build(in).Catalog
	if cat.PrefixLists["pl-1"] != "s3" {
		t.Errorf("managed name should shorten to the service, got %q", cat.PrefixLists["pl-1"])
	}
	if cat.PrefixLists["pl-2"] != "my-custom-list" {
		t.Errorf("custom name should pass through, got %q", cat.PrefixLists["pl-2"])
	}
}
