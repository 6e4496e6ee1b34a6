package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/directconnect"

	"github.com/mkanyo/topograph/internal/domain"
)

func (c *Client) DXConnections(ctx context.Context) ([]*domain.DXConnection, error) {
	out, err := c.dxClient.DescribeConnections(ctx, &directconnect.DescribeConnectionsInput{})
	if err != nil {
		return nil, fmt.Errorf("describe dx connections: %w", err)
	}

	conns := make([]*domain.DXConnection, 0, len(out.Connections))
	for i := range out.Connections {
		conns = append(conns, toDXConnection(&out.Connections[i]))
	}
	return conns, nil
}

// DXGateways pages manually; the directconnect API has no paginator
// for this call.
func (c *Client) DXGateways(ctx context.Context) ([]*domain.DXGateway, error) {
	var gateways []*domain.DXGateway
	input := &directconnect.DescribeDirectConnectGatewaysInput{}
	for {
		out, err := c.dxClient.DescribeDirectConnectGateways(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("describe dx gateways: %w", err)
		}
		for i := range out.DirectConnectGateways {
			gateways = append(gateways, toDXGateway(&out.DirectConnectGateways[i]))
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return gateways, nil
}

func (c *Client) DXVirtualInterfaces(ctx context.Context) ([]*domain.DXVirtualInterface, error) {
	out, err := c.dxClient.DescribeVirtualInterfaces(ctx, &directconnect.DescribeVirtualInterfacesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe dx virtual interfaces: %w", err)
	}

	vifs := make([]*domain.DXVirtualInterface, 0, len(out.VirtualInterfaces))
	for i := range out.VirtualInterfaces {
		vifs = append(vifs, toDXVirtualInterface(&out.VirtualInterfaces[i]))
	}
	return vifs, nil
}
