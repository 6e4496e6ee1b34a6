package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"golang.org/x/sync/errgroup"

	"github.com/mkanyo/topograph/internal/domain"
)

func (c *Client) TransitGateways(ctx context.Context) ([]*domain.TransitGateway, error) {
	paginator := ec2.NewDescribeTransitGatewaysPaginator(c.ec2Client, &ec2.DescribeTransitGatewaysInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeTransitGatewaysOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeTransitGatewaysOutput) []ec2types.TransitGateway {
			return out.TransitGateways
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe transit gateways: %w", err)
	}

	tgws := make([]*domain.TransitGateway, 0, len(raw))
	for i := range raw {
		tgws = append(tgws, toTransitGateway(&raw[i]))
	}
	return tgws, nil
}

func (c *Client) TransitGatewayAttachments(ctx context.Context, localAccountID string) ([]*domain.TGWAttachment, error) {
	paginator := ec2.NewDescribeTransitGatewayAttachmentsPaginator(c.ec2Client, &ec2.DescribeTransitGatewayAttachmentsInput{})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeTransitGatewayAttachmentsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeTransitGatewayAttachmentsOutput) []ec2types.TransitGatewayAttachment {
			return out.TransitGatewayAttachments
		},
	)
	if err != nil {
		return nil, fmt.Errorf("describe tgw attachments: %w", err)
	}

	atts := make([]*domain.TGWAttachment, 0, len(raw))
	for i := range raw {
		atts = append(atts, toTGWAttachment(&raw[i], localAccountID))
	}
	return atts, nil
}

// TransitGatewayRouteTables fetches all route tables plus their routes
// and raw association/propagation records. Per-table detail calls fan
// out on a bounded errgroup.
func (c *Client) TransitGatewayRouteTables(ctx context.Context) ([]*domain.TGWRouteTable, []domain.AssociationRecord, []domain.PropagationRecord, error) {
	paginator := ec2.NewDescribeTransitGatewayRouteTablesPaginator(c.ec2Client, &ec2.DescribeTransitGatewayRouteTablesInput{})
	routeTables, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeTransitGatewayRouteTablesOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeTransitGatewayRouteTablesOutput) []ec2types.TransitGatewayRouteTable {
			return out.TransitGatewayRouteTables
		},
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("describe tgw route tables: %w", err)
	}

	type rtDetail struct {
		table        *domain.TGWRouteTable
		associations []domain.AssociationRecord
		propagations []domain.PropagationRecord
	}

	results := make([]rtDetail, len(routeTables))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(10)

	for i, rt := range routeTables {
		i, rt := i, rt
		g.Go(func() error {
			table := toTGWRouteTable(&rt)

			var routes []domain.TGWRoute
			var associations []domain.AssociationRecord
			var propagations []domain.PropagationRecord

			innerG, innerCtx := errgroup.WithContext(gCtx)

			innerG.Go(func() error {
				var err error
				routes, err = c.searchTGWRoutes(innerCtx, table.ID)
				return err
			})
			innerG.Go(func() error {
				var err error
				associations, err = c.fetchTGWRouteTableAssociations(innerCtx, table.ID)
				return err
			})
			innerG.Go(func() error {
				var err error
				propagations, err = c.fetchTGWRouteTablePropagations(innerCtx, table.ID)
				return err
			})

			if err := innerG.Wait(); err != nil {
				return err
			}

			table.Routes = routes
			results[i] = rtDetail{table: table, associations: associations, propagations: propagations}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	tables := make([]*domain.TGWRouteTable, 0, len(results))
	var associations []domain.AssociationRecord
	var propagations []domain.PropagationRecord
	for _, r := range results {
		tables = append(tables, r.table)
		associations = append(associations, r.associations...)
		propagations = append(propagations, r.propagations...)
	}
	return tables, associations, propagations, nil
}

func (c *Client) searchTGWRoutes(ctx context.Context, rtID string) ([]domain.TGWRoute, error) {
	out, err := c.ec2Client.SearchTransitGatewayRoutes(ctx, &ec2.SearchTransitGatewayRoutesInput{
		TransitGatewayRouteTableId: aws.String(rtID),
		Filters: []ec2types.Filter{
			{Name: aws.String("type"), Values: []string{"static", "propagated"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search tgw routes for %s: %w", rtID, err)
	}

	var routes []domain.TGWRoute
	for i := range out.Routes {
		routes = append(routes, toTGWRoute(&out.Routes[i]))
	}
	return routes, nil
}

func (c *Client) fetchTGWRouteTableAssociations(ctx context.Context, rtID string) ([]domain.AssociationRecord, error) {
	paginator := ec2.NewGetTransitGatewayRouteTableAssociationsPaginator(c.ec2Client, &ec2.GetTransitGatewayRouteTableAssociationsInput{
		TransitGatewayRouteTableId: aws.String(rtID),
	})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.GetTransitGatewayRouteTableAssociationsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.GetTransitGatewayRouteTableAssociationsOutput) []ec2types.TransitGatewayRouteTableAssociation {
			return out.Associations
		},
	)
	if err != nil {
		return nil, fmt.Errorf("get tgw route table associations for %s: %w", rtID, err)
	}

	var records []domain.AssociationRecord
	for _, a := range raw {
		records = append(records, domain.AssociationRecord{
			RouteTableID: rtID,
			AttachmentID: aws.ToString(a.TransitGatewayAttachmentId),
			State:        string(a.State),
		})
	}
	return records, nil
}

func (c *Client) fetchTGWRouteTablePropagations(ctx context.Context, rtID string) ([]domain.PropagationRecord, error) {
	paginator := ec2.NewGetTransitGatewayRouteTablePropagationsPaginator(c.ec2Client, &ec2.GetTransitGatewayRouteTablePropagationsInput{
		TransitGatewayRouteTableId: aws.String(rtID),
	})
	raw, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.GetTransitGatewayRouteTablePropagationsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.GetTransitGatewayRouteTablePropagationsOutput) []ec2types.TransitGatewayRouteTablePropagation {
			return out.TransitGatewayRouteTablePropagations
		},
	)
	if err != nil {
		return nil, fmt.Errorf("get tgw route table propagations for %s: %w", rtID, err)
	}

	var records []domain.PropagationRecord
	for _, p := range raw {
		records = append(records, domain.PropagationRecord{
			RouteTableID: rtID,
			AttachmentID: aws.ToString(p.TransitGatewayAttachmentId),
			State:        string(p.State),
		})
	}
	return records, nil
}
