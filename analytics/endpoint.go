package analytics

import (
	"context"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Dashboard endpoint.Endpoint
}

func DashboardEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.Dashboard(ctx)
	}
}
