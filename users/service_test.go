package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/auth"
)

type fakeUserRepository struct {
	users map[int64]*nexus.User
}

func (r *fakeUserRepository) UserByEmail(ctx context.Context, email string) (*nexus.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepository) UserByID(ctx context.Context, id int64) (*nexus.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	copied := *u
	return &copied, nil
}

func (r *fakeUserRepository) UpdateLastActive(ctx context.Context, id int64, t time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastActive = &t
	}
	return nil
}

type usersTestSuite struct {
	suite.Suite
	ctx    context.Context
	repo   *fakeUserRepository
	tokens *auth.Tokens
	svc    Service
}

func (suite *usersTestSuite) SetupTest() {
	tokens, err := auth.New("test-secret", 30*time.Minute)
	if err != nil {
		suite.FailNow(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		suite.FailNow(err.Error())
	}

	suite.ctx = context.Background()
	suite.repo = &fakeUserRepository{
		users: map[int64]*nexus.User{
			1: {
				ID:            1,
				Email:         "member@specs.org",
				Password:      string(hash),
				StudentNumber: "2021-00001",
				FullName:      "Sam Member",
				Year:          nexus.Year3rd,
			},
		},
	}
	suite.tokens = tokens
	suite.svc = NewService(suite.repo, tokens)
}

func (suite *usersTestSuite) TestLogin() {
	token, err := suite.svc.Login(suite.ctx, "member@specs.org", "s3cret!")
	suite.NoError(err)

	subject, err := suite.tokens.Parse(token, auth.ScopeUser)
	suite.NoError(err)
	suite.Equal(int64(1), subject)
}

func (suite *usersTestSuite) TestLoginStampsLastActive() {
	_, err := suite.svc.Login(suite.ctx, "member@specs.org", "s3cret!")
	suite.NoError(err)

	stamped := suite.repo.users[1].LastActive
	if suite.NotNil(stamped) {
		_, offset := stamped.Zone()
		suite.Equal(8*60*60, offset, "last_active is stamped in Philippine time")
		suite.WithinDuration(time.Now(), *stamped, time.Minute)
	}
}

func (suite *usersTestSuite) TestLoginWrongPassword() {
	_, err := suite.svc.Login(suite.ctx, "member@specs.org", "nope")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *usersTestSuite) TestLoginUnknownEmail() {
	_, err := suite.svc.Login(suite.ctx, "ghost@specs.org", "s3cret!")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *usersTestSuite) TestProfile() {
	user, err := suite.svc.Profile(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal("Sam Member", user.FullName)

	_, err = suite.svc.Profile(suite.ctx, 99)
	suite.ErrorIs(err, ErrUserNotFound)
}

func TestUsersTestSuite(t *testing.T) {
	suite.Run(t, new(usersTestSuite))
}
