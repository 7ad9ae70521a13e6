package users

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Login   endpoint.Endpoint
	Profile endpoint.Endpoint
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func LoginEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(LoginRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		token, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}

		return LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
		}, nil
	}
}

func ProfileEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		userID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Profile(ctx, userID)
	}
}
