package officers

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"

	nexus "github.com/specs-nexus/nexus"
)

type EndpointSet struct {
	Login   endpoint.Endpoint
	List    endpoint.Endpoint
	Create  endpoint.Endpoint
	Update  endpoint.Endpoint
	Archive endpoint.Endpoint
	Import  endpoint.Endpoint
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Officer     *nexus.Officer `json:"officer"`
}

func LoginEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(LoginRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		token, officer, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}

		return LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			Officer:     officer,
		}, nil
	}
}

func ListEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.List(ctx)
	}
}

type DraftRequest struct {
	OfficerID     int64
	FullName      string `form:"full_name" binding:"required"`
	Email         string `form:"email" binding:"required"`
	Password      string `form:"password"`
	StudentNumber string `form:"student_number" binding:"required"`
	Year          string `form:"year"`
	Block         string `form:"block"`
	Position      string `form:"position"`
}

func (req DraftRequest) draft() Draft {
	return Draft{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		StudentNumber: req.StudentNumber,
		Year:          req.Year,
		Block:         req.Block,
		Position:      req.Position,
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

		return svc.Update(ctx, req.OfficerID, req.draft())
	}
}

func ArchiveEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		officerID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return nil, svc.Archive(ctx, officerID)
	}
}

func ImportEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		workbook, ok := request.([]byte)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Import(ctx, workbook)
	}
}
