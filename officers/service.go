// Package officers handles officer authentication and account
// administration, including bulk import from spreadsheets.
package officers

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOfficerArchived    = errors.New("officer account is archived and cannot log in")
	ErrOfficerNotFound    = errors.New("officer not found")
	ErrOfficerExists      = errors.New("officer with this email or student number already exists")
)

type Draft struct {
	FullName      string
	Email         string
	Password      string
	StudentNumber string
	Year          string
	Block         string
	Position      string
}

type Repository interface {
	OfficerByEmail(ctx context.Context, email string) (*nexus.Officer, error)
	OfficerByID(ctx context.Context, id int64) (*nexus.Officer, error)
	ActiveOfficers(ctx context.Context) ([]nexus.Officer, error)
	OfficerExists(ctx context.Context, email, studentNumber string) (bool, error)
	CreateOfficer(ctx context.Context, officer *nexus.Officer) error
	UpdateOfficer(ctx context.Context, officer *nexus.Officer) error
	ArchiveOfficer(ctx context.Context, id int64) error
}

type Service interface {

	// Login verifies officer credentials and returns a signed token with
	// the officer's details. Archived accounts are rejected.
	Login(ctx context.Context, email, password string) (string, *nexus.Officer, error)

	List(ctx context.Context) ([]nexus.Officer, error)
	Create(ctx context.Context, draft Draft) (*nexus.Officer, error)
	Update(ctx context.Context, id int64, draft Draft) (*nexus.Officer, error)
	Archive(ctx context.Context, id int64) error

	// Import reads officer rows from an Excel workbook, skipping rows
	// without an email or student number and rows that already exist.
	Import(ctx context.Context, workbook []byte) (int, error)
}

func NewService(repo Repository, tokens *auth.Tokens) Service {
	log := zap.L().With(
		zap.String("service", "officers"),
	)

	return &service{
		repo:   repo,
		tokens: tokens,
		log:    log,
	}
}

type service struct {
	repo   Repository
	tokens *auth.Tokens
	log    *zap.Logger
}

func (svc *service) Login(ctx context.Context, email, password string) (string, *nexus.Officer, error) {
	log := svc.log.With(
		zap.String("action", "login"),
		zap.String("email", email),
	)

	officer, err := svc.repo.OfficerByEmail(ctx, email)
	if err != nil {
		log.Error(err.Error())
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(password)) != nil {
		log.Error("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	if officer.Archived {
		log.Error(ErrOfficerArchived.Error())
		return "", nil, ErrOfficerArchived
	}

	token, err := svc.tokens.Issue(officer.ID, auth.ScopeOfficer)
	if err != nil {
		log.Error(err.Error())
		return "", nil, err
	}

	log.Info("officer logged in", zap.Int64("officer_id", officer.ID))
	return token, officer, nil
}

func (svc *service) List(ctx context.Context) ([]nexus.Officer, error) {
	return svc.repo.ActiveOfficers(ctx)
}

func (svc *service) Create(ctx context.Context, draft Draft) (*nexus.Officer, error) {
	log := svc.log.With(
		zap.String("action", "create"),
		zap.String("email", draft.Email),
	)

	exists, err := svc.repo.OfficerExists(ctx, draft.Email, draft.StudentNumber)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	if exists {
		log.Error(ErrOfficerExists.Error())
		return nil, ErrOfficerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	officer := &nexus.Officer{
		FullName:      draft.FullName,
		Email:         draft.Email,
		Password:      string(hash),
		StudentNumber: draft.StudentNumber,
		Year:          draft.Year,
		Block:         draft.Block,
		Position:      draft.Position,
	}

	if err := svc.repo.CreateOfficer(ctx, officer); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("officer created", zap.Int64("officer_id", officer.ID))
	return officer, nil
}

func (svc *service) Update(ctx context.Context, id int64, draft Draft) (*nexus.Officer, error) {
	log := svc.log.With(
		zap.String("action", "update"),
		zap.Int64("officer_id", id),
	)

	officer, err := svc.repo.OfficerByID(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrOfficerNotFound
	}

	officer.FullName = draft.FullName
	officer.Email = draft.Email
	officer.StudentNumber = draft.StudentNumber
	officer.Year = draft.Year
	officer.Block = draft.Block
	officer.Position = draft.Position

	if draft.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}

		officer.Password = string(hash)
	}

	if err := svc.repo.UpdateOfficer(ctx, officer); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("officer updated")
	return officer, nil
}

func (svc *service) Archive(ctx context.Context, id int64) error {
	log := svc.log.With(
		zap.String("action", "archive"),
		zap.Int64("officer_id", id),
	)

	if _, err := svc.repo.OfficerByID(ctx, id); err != nil {
		log.Error(err.Error())
		return ErrOfficerNotFound
	}

	if err := svc.repo.ArchiveOfficer(ctx, id); err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("officer archived")
	return nil
}

func (svc *service) Import(ctx context.Context, workbook []byte) (int, error) {
	log := svc.log.With(
		zap.String("action", "import"),
	)

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		log.Error(err.Error())
		return 0, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		log.Error(err.Error())
		return 0, err
	}

	if len(rows) == 0 {
		return 0, nil
	}

	// First row is the header; map column names to positions.
	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	created := 0
	for _, row := range rows[1:] {
		email := cell(row, "email")
		studentNumber := cell(row, "student_number")

		if email == "" || studentNumber == "" {
			continue
		}

		exists, err := svc.repo.OfficerExists(ctx, email, studentNumber)
		if err != nil {
			log.Error(err.Error())
			return created, err
		}

		if exists {
			continue
		}

		draft := Draft{
			FullName:      cell(row, "full_name"),
			Email:         email,
			Password:      cell(row, "password"),
			StudentNumber: studentNumber,
			Year:          cell(row, "year"),
			Block:         cell(row, "block"),
			Position:      cell(row, "position"),
		}

		if _, err := svc.Create(ctx, draft); err != nil {
			log.Error(err.Error())
			continue
		}

		created++
	}

	log.Info("officers imported", zap.Int("count", created))
	return created, nil
}
