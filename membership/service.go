// Package membership tracks membership-fee clearance records, receipt
// verification, and the payment QR codes members pay against.
package membership

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	nexus "github.com/specs-nexus/nexus"
)

var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrRequirementNotFound  = errors.New("requirement not found")
	ErrRequirementSaturated = errors.New("requirement already exists for all users")
	ErrQRCodeNotFound       = errors.New("qr code not found")
	ErrInvalidPaymentMethod = errors.New("payment type must be 'gcash' or 'paymaya'")
	ErrInvalidAction        = errors.New("invalid action, use 'approve' or 'deny'")
)

type VerifyAction string

const (
	VerifyApprove VerifyAction = "approve"
	VerifyDeny    VerifyAction = "deny"
)

type Repository interface {
	MembershipsByUser(ctx context.Context, userID int64) ([]nexus.Clearance, error)
	ActiveMemberships(ctx context.Context) ([]nexus.Clearance, error)
	MembershipByID(ctx context.Context, id int64) (*nexus.Clearance, error)
	CreateMembership(ctx context.Context, record *nexus.Clearance) error
	UpdateMembership(ctx context.Context, record *nexus.Clearance) error

	// DistinctRequirements returns one representative record per active
	// requirement.
	DistinctRequirements(ctx context.Context) ([]nexus.Clearance, error)
	UpdateRequirementAmount(ctx context.Context, requirement string, amount float64) (int64, error)
	ArchiveRequirement(ctx context.Context, requirement string) (int64, error)

	// CreateRequirementForAllUsers inserts a record for every user lacking
	// an active record of the requirement, returning how many were created.
	CreateRequirementForAllUsers(ctx context.Context, requirement string, amount float64) (int64, error)

	QRCode(ctx context.Context) (*nexus.QRCode, error)
	SaveQRCode(ctx context.Context, code *nexus.QRCode) error
}

type Service interface {

	// Memberships returns the member's active records with joined user info.
	Memberships(ctx context.Context, userID int64) ([]nexus.Clearance, error)

	// UpdateReceipt attaches an uploaded receipt to a record and moves it
	// into verification.
	UpdateReceipt(ctx context.Context, membershipID int64, method nexus.PaymentMethod, receiptPath string) (*nexus.Clearance, error)

	// QRCodeURL returns the payment QR code image path for a method.
	QRCodeURL(ctx context.Context, method nexus.PaymentMethod) (string, error)

	// Officer operations.
	ListAll(ctx context.Context) ([]nexus.Clearance, error)
	Create(ctx context.Context, userID int64, requirement string, amount float64, paymentStatus nexus.PaymentStatus) (*nexus.Clearance, error)
	Verify(ctx context.Context, membershipID int64, action VerifyAction) (*nexus.Clearance, error)
	Requirements(ctx context.Context) ([]nexus.Clearance, error)
	UpdateRequirement(ctx context.Context, requirement string, amount float64) (*nexus.Clearance, error)
	ArchiveRequirement(ctx context.Context, requirement string) error
	CreateRequirement(ctx context.Context, requirement string, amount float64) (int64, error)
	SetQRCode(ctx context.Context, method nexus.PaymentMethod, path string) (*nexus.QRCode, error)
}

func NewService(repo Repository) Service {
	log := zap.L().With(
		zap.String("service", "membership"),
	)

	return &service{
		repo: repo,
		log:  log,
	}
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func (svc *service) Memberships(ctx context.Context, userID int64) ([]nexus.Clearance, error) {
	return svc.repo.MembershipsByUser(ctx, userID)
}

func (svc *service) UpdateReceipt(ctx context.Context, membershipID int64, method nexus.PaymentMethod, receiptPath string) (*nexus.Clearance, error) {
	log := svc.log.With(
		zap.String("action", "update_receipt"),
		zap.Int64("membership_id", membershipID),
	)

	method = nexus.PaymentMethod(strings.ToLower(strings.TrimSpace(string(method))))
	if !nexus.ValidPaymentMethod(method) {
		log.Error(ErrInvalidPaymentMethod.Error())
		return nil, ErrInvalidPaymentMethod
	}

	record, err := svc.repo.MembershipByID(ctx, membershipID)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrMembershipNotFound
	}

	record.ReceiptPath = receiptPath
	record.PaymentStatus = nexus.PaymentVerifying
	record.Status = nexus.ClearanceProcessing
	record.PaymentMethod = method

	if err := svc.repo.UpdateMembership(ctx, record); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("receipt updated")
	return record, nil
}

func (svc *service) QRCodeURL(ctx context.Context, method nexus.PaymentMethod) (string, error) {
	if !nexus.ValidPaymentMethod(method) {
		return "", ErrInvalidPaymentMethod
	}

	code, err := svc.repo.QRCode(ctx)
	if err != nil {
		return "", ErrQRCodeNotFound
	}

	if method == nexus.PaymentMethodGCash {
		return code.GCash, nil
	}

	return code.PayMaya, nil
}

func (svc *service) ListAll(ctx context.Context) ([]nexus.Clearance, error) {
	return svc.repo.ActiveMemberships(ctx)
}

func (svc *service) Create(ctx context.Context, userID int64, requirement string, amount float64, paymentStatus nexus.PaymentStatus) (*nexus.Clearance, error) {
	log := svc.log.With(
		zap.String("action", "create"),
		zap.Int64("user_id", userID),
		zap.String("requirement", requirement),
	)

	record := &nexus.Clearance{
		UserID:        userID,
		Requirement:   requirement,
		Amount:        amount,
		PaymentStatus: paymentStatus,
		Status:        nexus.ClearanceNotYetCleared,
	}

	if err := svc.repo.CreateMembership(ctx, record); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("membership created", zap.Int64("membership_id", record.ID))
	return record, nil
}

func (svc *service) Verify(ctx context.Context, membershipID int64, action VerifyAction) (*nexus.Clearance, error) {
	log := svc.log.With(
		zap.String("action", "verify"),
		zap.Int64("membership_id", membershipID),
		zap.String("decision", string(action)),
	)

	if action != VerifyApprove && action != VerifyDeny {
		log.Error(ErrInvalidAction.Error())
		return nil, ErrInvalidAction
	}

	record, err := svc.repo.MembershipByID(ctx, membershipID)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrMembershipNotFound
	}

	switch action {
	case VerifyApprove:
		record.PaymentStatus = nexus.PaymentPaid
		record.Status = nexus.ClearanceClear

	case VerifyDeny:
		record.PaymentStatus = nexus.PaymentNotPaid
		record.Status = nexus.ClearanceNotYetCleared
		record.ReceiptPath = ""
		record.PaymentMethod = ""
	}

	if err := svc.repo.UpdateMembership(ctx, record); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("membership verified")
	return record, nil
}

func (svc *service) Requirements(ctx context.Context) ([]nexus.Clearance, error) {
	return svc.repo.DistinctRequirements(ctx)
}

func (svc *service) UpdateRequirement(ctx context.Context, requirement string, amount float64) (*nexus.Clearance, error) {
	log := svc.log.With(
		zap.String("action", "update_requirement"),
		zap.String("requirement", requirement),
	)

	updated, err := svc.repo.UpdateRequirementAmount(ctx, requirement, amount)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	if updated == 0 {
		log.Error(ErrRequirementNotFound.Error())
		return nil, ErrRequirementNotFound
	}

	records, err := svc.repo.DistinctRequirements(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Requirement == requirement {
			log.Info("requirement updated", zap.Int64("records", updated))
			return &records[i], nil
		}
	}

	return nil, ErrRequirementNotFound
}

func (svc *service) ArchiveRequirement(ctx context.Context, requirement string) error {
	log := svc.log.With(
		zap.String("action", "archive_requirement"),
		zap.String("requirement", requirement),
	)

	archived, err := svc.repo.ArchiveRequirement(ctx, requirement)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	if archived == 0 {
		log.Error(ErrRequirementNotFound.Error())
		return ErrRequirementNotFound
	}

	log.Info("requirement archived", zap.Int64("records", archived))
	return nil
}

func (svc *service) CreateRequirement(ctx context.Context, requirement string, amount float64) (int64, error) {
	log := svc.log.With(
		zap.String("action", "create_requirement"),
		zap.String("requirement", requirement),
	)

	created, err := svc.repo.CreateRequirementForAllUsers(ctx, requirement, amount)
	if err != nil {
		log.Error(err.Error())
		return 0, err
	}

	if created == 0 {
		log.Error(ErrRequirementSaturated.Error())
		return 0, ErrRequirementSaturated
	}

	log.Info("requirement created", zap.Int64("records", created))
	return created, nil
}

func (svc *service) SetQRCode(ctx context.Context, method nexus.PaymentMethod, path string) (*nexus.QRCode, error) {
	log := svc.log.With(
		zap.String("action", "set_qr_code"),
		zap.String("method", string(method)),
	)

	if !nexus.ValidPaymentMethod(method) {
		log.Error(ErrInvalidPaymentMethod.Error())
		return nil, ErrInvalidPaymentMethod
	}

	code, err := svc.repo.QRCode(ctx)
	if err != nil {
		code = &nexus.QRCode{}
	}

	if method == nexus.PaymentMethodGCash {
		code.GCash = path
	} else {
		code.PayMaya = path
	}

	if err := svc.repo.SaveQRCode(ctx, code); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("qr code saved")
	return code, nil
}
