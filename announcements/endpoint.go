package announcements

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	List    endpoint.Endpoint
	Create  endpoint.Endpoint
	Update  endpoint.Endpoint
	Archive endpoint.Endpoint
}

func ListEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.List(ctx)
	}
}

type DraftRequest struct {
	AnnouncementID int64
	Title          string
	Description    string
	Date           *time.Time
	Location       string
	ImageURL       string
}

func (req DraftRequest) draft() Draft {
	return Draft{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
}

func CreateEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(DraftRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Create(ctx, req.draft())
	}
}

func UpdateEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(DraftRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Update(ctx, req.AnnouncementID, req.draft())
	}
}

func ArchiveEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		announcementID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return nil, svc.Archive(ctx, announcementID)
	}
}
