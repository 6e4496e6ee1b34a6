// Package ingest turns a directory of AWS CLI JSON exports into a
// domain snapshot. A missing or empty file yields an empty batch for
// that resource type; only unreadable or malformed JSON is an error.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Input holds the loosely-typed field-map documents, one per resource
// type, plus the per-route-table detail documents keyed by table id.
type Input struct {
	Metadata         map[string]any
	TGWs             map[string]any
	TGWAttachments   map[string]any
	TGWRouteTables   map[string]any
	Routes           map[string]map[string]any
	Associations     map[string]map[string]any
	Propagations     map[string]map[string]any
	VPCs             map[string]any
	Subnets          map[string]any
	VPCRouteTables   map[string]any
	IGWs             map[string]any
	NATGateways      map[string]any
	Peerings         map[string]any
	VPNConnections   map[string]any
	CustomerGateways map[string]any
	DXConnections    map[string]any
	DXGateways       map[string]any
	DXVIFs           map[string]any
	PrefixLists      map[string]any
}

// Load reads every known export file under dir.
func Load(dir string) (*Input, error) {
	in := &Input{
		Routes:       make(map[string]map[string]any),
		Associations: make(map[string]map[string]any),
		Propagations: make(map[string]map[string]any),
	}

	single := []struct {
		name string
		dst  *map[string]any
	}{
		{"metadata.json", &in.Metadata},
		{"transit-gateways.json", &in.TGWs},
		{"transit-gateway-attachments.json", &in.TGWAttachments},
		{"transit-gateway-route-tables.json", &in.TGWRouteTables},
		{"vpcs.json", &in.VPCs},
		{"subnets.json", &in.Subnets},
		{"vpc-route-tables.json", &in.VPCRouteTables},
		{"internet-gateways.json", &in.IGWs},
		{"nat-gateways.json", &in.NATGateways},
		{"vpc-peering-connections.json", &in.Peerings},
		{"vpn-connections.json", &in.VPNConnections},
		{"customer-gateways.json", &in.CustomerGateways},
		{"dx-connections.json", &in.DXConnections},
		{"dx-gateways.json", &in.DXGateways},
		{"dx-vifs.json", &in.DXVIFs},
		{"prefix-lists.json", &in.PrefixLists},
	}
	for _, f := range single {
		doc, err := readDoc(filepath.Join(dir, f.name))
		if err != nil {
			return nil, err
		}
		*f.dst = doc
	}

	perTable := []struct {
		prefix string
		dst    map[string]map[string]any
	}{
		{"routes-", in.Routes},
		{"associations-", in.Associations},
		{"propagations-", in.Propagations},
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return in, nil
		}
		return nil, fmt.Errorf("read export dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		for _, pt := range perTable {
			if !strings.HasPrefix(name, pt.prefix) {
				continue
			}
			rtID := strings.TrimSuffix(strings.TrimPrefix(name, pt.prefix), ".json")
			doc, err := readDoc(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			if doc != nil {
				pt.dst[rtID] = doc
			}
		}
	}

	return in, nil
}

func readDoc(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
