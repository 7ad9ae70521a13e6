package nexus

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Answer endpoint.Endpoint
}

type AnswerRequest struct {
	Message string `json:"message"`
}

type AnswerResponse struct {
	Response string `json:"response"`
}

func AnswerEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(AnswerRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		answer, err := svc.Answer(ctx, strings.TrimSpace(req.Message))
		if err != nil {
			return nil, err
		}

		return AnswerResponse{Response: answer}, nil
	}
}
