package events

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	List         endpoint.Endpoint
	Join         endpoint.Endpoint
	Leave        endpoint.Endpoint
	Participants endpoint.Endpoint
	Create       endpoint.Endpoint
	Update       endpoint.Endpoint
	Archive      endpoint.Endpoint
}

type ListRequest struct {
	UserID int64
}

func ListEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(ListRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.List(ctx, req.UserID)
	}
}

type MembershipChangeRequest struct {
	EventID int64
	UserID  int64
}

func JoinEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(MembershipChangeRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Join(ctx, req.EventID, req.UserID)
	}
}

func LeaveEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(MembershipChangeRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Leave(ctx, req.EventID, req.UserID)
	}
}

func ParticipantsEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		eventID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Participants(ctx, eventID)
	}
}

type DraftRequest struct {
	EventID           int64
	Title             string
	Description       string
	Date              time.Time
	Location          string
	ImageURL          string
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
}

func (req DraftRequest) draft() Draft {
	return Draft{
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		Location:          req.Location,
		ImageURL:          req.ImageURL,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
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

		return svc.Update(ctx, req.EventID, req.draft())
	}
}

func ArchiveEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		eventID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return nil, svc.Archive(ctx, eventID)
	}
}
