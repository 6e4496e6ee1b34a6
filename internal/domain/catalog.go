// Package domain holds the normalized network topology model: one
// point-in-time snapshot of transit gateways, VPCs, and their edge
// connectivity, assembled once per run and discarded afterwards.
package domain

import (
	"sort"
	"strings"
)

// Collection is an id-keyed store that remembers insertion order so
// downstream output stays deterministic.
type Collection[T any] struct {
	items map[string]*T
	order []string
}

func (c *Collection[T]) Put(id string, v *T) {
	if c.items == nil {
		c.items = make(map[string]*T)
	}
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *Collection[T]) Get(id string) (*T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *Collection[T]) Len() int {
	return len(c.order)
}

// All returns the stored entities in insertion order.
func (c *Collection[T]) All() []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Catalog is the shared entity store every pipeline phase reads and
// writes. It is constructed fresh per run; it is never a singleton.
type Catalog struct {
	TGWs             Collection[TransitGateway]
	TGWRouteTables   Collection[TGWRouteTable]
	TGWAttachments   Collection[TGWAttachment]
	VPCs             Collection[VPC]
	VPCRouteTables   Collection[VPCRouteTable]
	Subnets          Collection[Subnet]
	Peerings         Collection[VPCPeering]
	VPNConnections   Collection[VPNConnection]
	CustomerGateways Collection[CustomerGateway]
	DXConnections    Collection[DXConnection]
	DXVIFs           Collection[DXVirtualInterface]
	DXGateways       Collection[DXGateway]
	NATGateways      Collection[NATGateway]

	IGWs        map[string]string
	PrefixLists map[string]string

	LocalAccountID string
}

func NewCatalog() *Catalog {
	return &Catalog{
		IGWs:        make(map[string]string),
		PrefixLists: make(map[string]string),
	}
}

// IsHub reports whether the account owns at least one transit gateway.
func (c *Catalog) IsHub() bool {
	return c.TGWs.Len() > 0
}

// IsSpoke reports whether the account only sees attachments into a
// transit gateway it does not own.
func (c *Catalog) IsSpoke() bool {
	return c.TGWs.Len() == 0 && c.TGWAttachments.Len() > 0
}

// ReferencedTGWIDs lists the transit gateway ids named by attachments,
// sorted. For a spoke account this is the only way to identify the hub
// gateway.
func (c *Catalog) ReferencedTGWIDs() []string {
	seen := make(map[string]bool)
	for _, att := range c.TGWAttachments.All() {
		if att.TGWID != "" {
			seen[att.TGWID] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) CrossAccountAttachments() []*TGWAttachment {
	var out []*TGWAttachment
	for _, att := range c.TGWAttachments.All() {
		if att.CrossAccount {
			out = append(out, att)
		}
	}
	return out
}

func (c *Catalog) LocalAttachments() []*TGWAttachment {
	var out []*TGWAttachment
	for _, att := range c.TGWAttachments.All() {
		if !att.CrossAccount {
			out = append(out, att)
		}
	}
	return out
}

// ShortenPrefixListName strips the com.amazonaws. service prefix down
// to the bare service name.
func ShortenPrefixListName(name string) string {
	if !strings.HasPrefix(name, "com.amazonaws.") {
		return name
	}
	parts := strings.Split(name, ".")
	if len(parts) >= 4 {
		return parts[len(parts)-1]
	}
	return name
}
