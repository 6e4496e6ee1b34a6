package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/mkanyo/topograph/internal/domain"
)

func (c *Client) VPCs(ctx context.Context) ([]*domain.VPC, error) {
	paginator := ec2.NewDescribeVpcsPaginator(c.ec2Client, &ec2.DescribeVpcsInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeVpcsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeVpcsOutput) []ec2types.Vpc {
			return out.Vpcs
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe vpcs: %w", err)
	}

	vpcs := make([]*domain.VPC, 0, len(raw))
	for i := range raw {
		vpcs = append(vpcs, toVPC(&raw[i]))
	}
	return vpcs, nil
}

func (c *Client) Subnets(ctx context.Context) ([]*domain.Subnet, error) {
	paginator := ec2.NewDescribeSubnetsPaginator(c.ec2Client, &ec2.DescribeSubnetsInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeSubnetsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeSubnetsOutput) []ec2types.Subnet {
			return out.Subnets
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe subnets: %w", err)
	}

	subnets := make([]*domain.Subnet, 0, len(raw))
	for i := range raw {
		subnets = append(subnets, toSubnet(&raw[i]))
	}
	return subnets, nil
}

// VPCRouteTables returns the tables plus the raw subnet association
// records the correlator turns into subnet/table back-references.
func (c *Client) VPCRouteTables(ctx context.Context) ([]*domain.VPCRouteTable, []domain.SubnetAssociationRecord, error) {
	paginator := ec2.NewDescribeRouteTablesPaginator(c.ec2Client, &ec2.DescribeRouteTablesInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeRouteTablesOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeRouteTablesOutput) []ec2types.RouteTable {
			return out.RouteTables
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("describe route tables: %w", err)
	}

	tables := make([]*domain.VPCRouteTable, 0, len(raw))
	var assocs []domain.SubnetAssociationRecord
	for i := range raw {
		table, tableAssocs := toVPCRouteTable(&raw[i])
		tables = append(tables, table)
		assocs = append(assocs, tableAssocs...)
	}
	return tables, assocs, nil
}

// InternetGateways returns a map of igw id to the vpc it is attached
// to, counting only attachments in the available state.
func (c *Client) InternetGateways(ctx context.Context) (map[string]string, error) {
	paginator := ec2.NewDescribeInternetGatewaysPaginator(c.ec2Client, &ec2.DescribeInternetGatewaysInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeInternetGatewaysOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeInternetGatewaysOutput) []ec2types.InternetGateway {
			return out.InternetGateways
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe internet gateways: %w", err)
	}

	igws := make(map[string]string)
	for _, igw := range raw {
		for _, att := range igw.Attachments {
			if string(att.State) != "available" {
				continue
			}
			igws[aws.ToString(igw.InternetGatewayId)] = aws.ToString(att.VpcId)
		}
	}
	return igws, nil
}

func (c *Client) NATGateways(ctx context.Context) ([]*domain.NATGateway, error) {
	paginator := ec2.NewDescribeNatGatewaysPaginator(c.ec2Client, &ec2.DescribeNatGatewaysInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeNatGatewaysOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeNatGatewaysOutput) []ec2types.NatGateway {
			return out.NatGateways
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe nat gateways: %w", err)
	}

	nats := make([]*domain.NATGateway, 0, len(raw))
	for i := range raw {
		nats = append(nats, toNATGateway(&raw[i]))
	}
	return nats, nil
}

func (c *Client) VPCPeerings(ctx context.Context) ([]*domain.VPCPeering, error) {
	paginator := ec2.NewDescribeVpcPeeringConnectionsPaginator(c.ec2Client, &ec2.DescribeVpcPeeringConnectionsInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeVpcPeeringConnectionsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeVpcPeeringConnectionsOutput) []ec2types.VpcPeeringConnection {
			return out.VpcPeeringConnections
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe vpc peering connections: %w", err)
	}

	peerings := make([]*domain.VPCPeering, 0, len(raw))
	for i := range raw {
		peerings = append(peerings, toVPCPeering(&raw[i]))
	}
	return peerings, nil
}

func (c *Client) VPNConnections(ctx context.Context) ([]*domain.VPNConnection, error) {
	out, err := c.ec2Client.DescribeVpnConnections(ctx, &ec2.DescribeVpnConnectionsInput{})
	if err != nil {
		return nil, fmt.Errorf("describe vpn connections: %w", err)
	}

	conns := make([]*domain.VPNConnection, 0, len(out.VpnConnections))
	for i := range out.VpnConnections {
		conns = append(conns, toVPNConnection(&out.VpnConnections[i]))
	}
	return conns, nil
}

func (c *Client) CustomerGateways(ctx context.Context) ([]*domain.CustomerGateway, error) {
	out, err := c.ec2Client.DescribeCustomerGateways(ctx, &ec2.DescribeCustomerGatewaysInput{})
	if err != nil {
		return nil, fmt.Errorf("describe customer gateways: %w", err)
	}

	cgws := make([]*domain.CustomerGateway, 0, len(out.CustomerGateways))
	for i := range out.CustomerGateways {
		cgws = append(cgws, toCustomerGateway(&out.CustomerGateways[i]))
	}
	return cgws, nil
}

// PrefixLists returns a map of prefix-list id to display name. Managed
// service names like com.amazonaws.eu-west-1.s3 are shortened to the
// last part.
func (c *Client) PrefixLists(ctx context.Context) (map[string]string, error) {
	paginator := ec2.NewDescribeManagedPrefixListsPaginator(c.ec2Client, &ec2.DescribeManagedPrefixListsInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeManagedPrefixListsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeManagedPrefixListsOutput) []ec2types.ManagedPrefixList {
			return out.PrefixLists
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe managed prefix lists: %w", err)
	}

	lists := make(map[string]string)
	for _, pl := range raw {
		lists[aws.ToString(pl.PrefixListId)] = domain.ShortenPrefixListName(aws.ToString(pl.PrefixListName))
	}
	return lists, nil
}
