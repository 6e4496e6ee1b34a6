package domain

import (
	"reflect"
	"testing"
)

func TestCollection_PreservesInsertionOrder(t *testing.T) {
	var c Collection[VPC]
	for _, id := range []string{"vpc-c", "vpc-a", "vpc-b"} {
		c.Put(id, &VPC{ID: id})
	}

	var got []string
	for _, vpc := range c.All() {
		got = append(got, vpc.ID)
	}
	if !reflect.DeepEqual(got, []string{"vpc-c", "vpc-a", "vpc-b"}) {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestCollection_PutReplacesWithoutReordering(t *testing.T) {
	var c Collection[VPC]
	c.Put("vpc-1", &VPC{ID: "vpc-1", Name: "old"})
	c.Put("vpc-2", &VPC{ID: "vpc-2"})
	c.Put("vpc-1", &VPC{ID: "vpc-1", Name: "new"})

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if c.All()[0].Name != "new" {
		t.Errorf("replacement should keep the original slot, got %q first", c.All()[0].Name)
	}
}

func TestCatalog_HubAndSpoke(t *testing.T) {
	hub := NewCatalog()
	hub.TGWs.Put("tgw-1", &TransitGateway{ID: "tgw-1"})
	if !hub.IsHub() || hub.IsSpoke() {
		t.Error("catalog owning a TGW should be hub, not spoke")
	}

	spoke := NewCatalog()
	spoke.TGWAttachments.Put("att-1", &TGWAttachment{ID: "att-1", TGWID: "tgw-remote"})
	if spoke.IsHub() || !spoke.IsSpoke() {
		t.Error("catalog with attachments but no TGW should be spoke")
	}

	empty := NewCatalog()
	if empty.IsHub() || empty.IsSpoke() {
		t.Error("empty catalog is neither hub nor spoke")
	}
}

func TestCatalog_ReferencedTGWIDs(t *testing.T) {
	cat := NewCatalog()
	cat.TGWAttachments.Put("att-1", &TGWAttachment{ID: "att-1", TGWID: "tgw-b"})
	cat.TGWAttachments.Put("att-2", &TGWAttachment{ID: "att-2", TGWID: "tgw-a"})
	cat.TGWAttachments.Put("att-3", &TGWAttachment{ID: "att-3", TGWID: "tgw-b"})
	cat.TGWAttachments.Put("att-4", &TGWAttachment{ID: "att-4"})

	if got := cat.ReferencedTGWIDs(); !reflect.DeepEqual(got, []string{"tgw-a", "tgw-b"}) {
		t.Errorf("expected sorted unique ids, got %v", got)
	}
}

func TestCatalog_AttachmentScopes(t *testing.T) {
	cat := NewCatalog()
	cat.TGWAttachments.Put("att-local", &TGWAttachment{ID: "att-local"})
	cat.TGWAttachments.Put("att-cross", &TGWAttachment{ID: "att-cross", CrossAccount: true})

	if got := cat.CrossAccountAttachments(); len(got) != 1 || got[0].ID != "att-cross" {
		t.Errorf("unexpected cross-account set: %v", got)
	}
	if got := cat.LocalAttachments(); len(got) != 1 || got[0].ID != "att-local" {
		t.Errorf("unexpected local set: %v", got)
	}
}

func TestParseAttachmentType(t *testing.T) {
	if got := ParseAttachmentType("vpc"); got != AttachmentVPC {
		t.Errorf("got %s", got)
	}
	if got := ParseAttachmentType("direct-connect-gateway"); got != AttachmentDirectConnect {
		t.Errorf("got %s", got)
	}
	if got := ParseAttachmentType("something-new"); got != AttachmentUnknown {
		t.Errorf("unrecognized type should fold to unknown, got %s", got)
	}
}

func TestShortenPrefixListName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"com.amazonaws.eu-west-1.s3", "s3"},
		{"com.amazonaws.us-east-1.dynamodb", "dynamodb"},
		{"com.amazonaws.global", "com.amazonaws.global"},
		{"my-own-list", "my-own-list"},
	}
	for _, c := range cases {
		if got := ShortenPrefixListName(c.in); got != c.want {
			t.Errorf("ShortenPrefixListName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTGWRouteDestination(t *testing.T) {
	r := &TGWRoute{DestinationCIDR: "10.0.0.0/16"}
	if r.Destination() != "10.0.0.0/16" {
		t.Errorf("got %q", r.Destination())
	}
	r.PrefixListID = "pl-1"
	if r.Destination() != "pl-1" {
		t.Errorf("prefix list should take precedence, got %q", r.Destination())
	}
}
