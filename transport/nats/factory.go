package nats

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	nexus "github.com/specs-nexus/nexus"
)

// MakeEndpoints builds a client-side endpoint set that forwards chat
// requests to a remote instance over NATS.
func MakeEndpoints(nc *nats.Conn, prefix string) *nexus.EndpointSet {
	return &nexus.EndpointSet{
		Answer: AnswerEndpoint(nc, prefix+".answer"),
	}
}

func AnswerEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(nexus.AnswerRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		msg, err := nc.Request(topic, data, nats.DefaultTimeout)
		if err != nil {
			return nil, err
		}

		if err := Error(msg); err != nil {
			return nil, err
		}

		var resp nexus.AnswerResponse
		if err := json.Unmarshal(msg.Data, &resp); err != nil {
			return nil, err
		}

		return resp, nil
	}
}

func Error(msg *nats.Msg) error {
	if msg == nil {
		return errors.New("nil message")
	}

	code := msg.Header.Get(micro.ErrorCodeHeader)
	if code == "" {
		return nil
	}

	description := msg.Header.Get(micro.ErrorHeader)
	if description == "" {
		description = "unknown error"
	}

	return errors.New(code + ":" + description)
}
