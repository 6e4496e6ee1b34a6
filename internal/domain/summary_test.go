package domain

import "testing"

func TestVPNTunnelHealth(t *testing.T) {
	cases := []struct {
		statuses []string
		want     LinkHealth
		summary  string
	}{
		{[]string{"UP", "UP"}, HealthAllUp, "2/2 tunnels UP"},
		{[]string{"UP", "DOWN"}, HealthPartial, "1/2 tunnels UP"},
		{[]string{"DOWN", "DOWN"}, HealthDown, "0/2 tunnels UP"},
	}
	for _, c := range cases {
		vpn := &VPNConnection{}
		for _, s := range c.statuses {
			vpn.Tunnels = append(vpn.Tunnels, VPNTunnel{Status: s})
		}
		if got := vpn.TunnelHealth(); got != c.want {
			t.Errorf("%v: health = %s, want %s", c.statuses, got, c.want)
		}
		if got := vpn.TunnelSummary(); got != c.summary {
			t.Errorf("%v: summary = %q, want %q", c.statuses, got, c.summary)
		}
	}
}

func TestBGPHealth(t *testing.T) {
	noPeers := &DXVirtualInterface{}
	if got := noPeers.BGPHealth(); got != HealthNoPeers {
		t.Errorf("peerless VIF should be no_peers, got %s", got)
	}

	vif := &DXVirtualInterface{
		BGPPeers: []BGPPeer{
			{Status: "up"},
			{Status: "UP"},
			{Status: "down"},
		},
	}
	if got := vif.BGPPeersUp(); got != 2 {
		t.Errorf("status comparison should be case-insensitive, got %d up", got)
	}
	if got := vif.BGPHealth(); got != HealthPartial {
		t.Errorf("expected partial, got %s", got)
	}
	if got := vif.BGPSummary(); got != "2/3 BGP UP" {
		t.Errorf("unexpected summary: %q", got)
	}
}
