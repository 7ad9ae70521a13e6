package nats

import (
	"github.com/nats-io/nats.go/micro"

	nexus "github.com/specs-nexus/nexus"
)

func AddEndpoints(group micro.Group, endpoints nexus.EndpointSet) {
	group.AddEndpoint("answer", AnswerHandler(endpoints.Answer))
}
