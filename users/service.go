// Package users handles member authentication and profiles.
package users

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Member activity is tracked in Philippine time.
var philippineTZ = time.FixedZone("PHT", 8*60*60)

type Repository interface {
	UserByEmail(ctx context.Context, email string) (*nexus.User, error)
	UserByID(ctx context.Context, id int64) (*nexus.User, error)
	UpdateLastActive(ctx context.Context, id int64, t time.Time) error
}

type Service interface {

	// Login verifies the member's credentials, stamps last_active, and
	// returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)

	// Profile returns the authenticated member's profile.
	Profile(ctx context.Context, userID int64) (*nexus.User, error)
}

func NewService(repo Repository, tokens *auth.Tokens) Service {
	log := zap.L().With(
		zap.String("service", "users"),
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

func (svc *service) Login(ctx context.Context, email, password string) (string, error) {
	log := svc.log.With(
		zap.String("action", "login"),
		zap.String("email", email),
	)

	user, err := svc.repo.UserByEmail(ctx, email)
	if err != nil {
		log.Error(err.Error())
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		log.Error("password mismatch")
		return "", ErrInvalidCredentials
	}

	now := time.Now().In(philippineTZ)
	if err := svc.repo.UpdateLastActive(ctx, user.ID, now); err != nil {
		log.Error(err.Error())
		return "", err
	}

	token, err := svc.tokens.Issue(user.ID, auth.ScopeUser)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("user logged in", zap.Int64("user_id", user.ID))
	return token, nil
}

func (svc *service) Profile(ctx context.Context, userID int64) (*nexus.User, error) {
	user, err := svc.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
