// Package aws collects a live topology snapshot from the provider's
// describe APIs: the same record batches the export-file loader
// produces, fetched directly.
package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/ratelimit"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/directconnect"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

type Client struct {
	ec2Client *ec2.Client
	dxClient  *directconnect.Client
}

func newRetryer() aws.Retryer {
	return retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = 5
		o.MaxBackoff = 30 * time.Second
		o.Backoff = retry.NewExponentialJitterBackoff(o.MaxBackoff)
		o.RateLimiter = ratelimit.None
	})
}

func NewClient(cfg aws.Config) *Client {
	retryer := newRetryer()
	return &Client{
		ec2Client: ec2.NewFromConfig(cfg, func(o *ec2.Options) { o.Retryer = retryer }),
		dxClient:  directconnect.NewFromConfig(cfg, func(o *directconnect.Options) { o.Retryer = retryer }),
	}
}
