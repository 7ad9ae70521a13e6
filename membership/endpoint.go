package membership

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"

	nexus "github.com/specs-nexus/nexus"
)

type EndpointSet struct {
	Memberships        endpoint.Endpoint
	UpdateReceipt      endpoint.Endpoint
	QRCodeURL          endpoint.Endpoint
	ListAll            endpoint.Endpoint
	Create             endpoint.Endpoint
	Verify             endpoint.Endpoint
	Requirements       endpoint.Endpoint
	UpdateRequirement  endpoint.Endpoint
	ArchiveRequirement endpoint.Endpoint
	CreateRequirement  endpoint.Endpoint
	SetQRCode          endpoint.Endpoint
}

func MembershipsEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		userID, ok := request.(int64)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Memberships(ctx, userID)
	}
}

type UpdateReceiptRequest struct {
	MembershipID int64  `json:"membership_id" binding:"required"`
	PaymentType  string `json:"payment_type" binding:"required"`
	ReceiptPath  string `json:"receipt_path" binding:"required"`
}

func UpdateReceiptEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(UpdateReceiptRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.UpdateReceipt(ctx, req.MembershipID, nexus.PaymentMethod(req.PaymentType), req.ReceiptPath)
	}
}

func QRCodeURLEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		method, ok := request.(nexus.PaymentMethod)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.QRCodeURL(ctx, method)
	}
}

func ListAllEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.ListAll(ctx)
	}
}

type CreateRequest struct {
	UserID        int64   `form:"user_id" binding:"required"`
	Amount        float64 `form:"amount"`
	PaymentStatus string  `form:"payment_status" binding:"required"`
	Requirement   string  `form:"requirement" binding:"required"`
}

func CreateEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(CreateRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Create(ctx, req.UserID, req.Requirement, req.Amount, nexus.PaymentStatus(req.PaymentStatus))
	}
}

type VerifyRequest struct {
	MembershipID int64
	Action       string `json:"action" binding:"required"`
}

func VerifyEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(VerifyRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Verify(ctx, req.MembershipID, VerifyAction(req.Action))
	}
}

func RequirementsEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.Requirements(ctx)
	}
}

type RequirementUpdateRequest struct {
	Requirement string
	Amount      float64 `json:"amount"`
}

func UpdateRequirementEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(RequirementUpdateRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.UpdateRequirement(ctx, req.Requirement, req.Amount)
	}
}

func ArchiveRequirementEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		requirement, ok := request.(string)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return nil, svc.ArchiveRequirement(ctx, requirement)
	}
}

type RequirementCreateRequest struct {
	Requirement string  `form:"requirement" binding:"required"`
	Amount      float64 `form:"amount" binding:"required"`
}

func CreateRequirementEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(RequirementCreateRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.CreateRequirement(ctx, req.Requirement, req.Amount)
	}
}

type SetQRCodeRequest struct {
	PaymentType string
	Path        string
}

func SetQRCodeEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(SetQRCodeRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.SetQRCode(ctx, nexus.PaymentMethod(req.PaymentType), req.Path)
	}
}
