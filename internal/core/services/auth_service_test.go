package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/core/services"
	"github.com/meridianlend/ledger/internal/dto"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockRepo, testJWTSecret, time.Hour, "meridian-ledger")
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Username: "jordan", Name: "Jordan", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByUsername", ctx, "jordan").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "jordan" && u.PasswordHash != "" && u.PasswordHash != "s3cret-pass"
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("jordan", user.Username)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_UsernameTaken() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Username: "jordan", Name: "Jordan", Password: "s3cret-pass"}

	suite.mockRepo.On("FindUserByUsername", ctx, "jordan").Return(&domain.User{Username: "jordan"}, nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "jordan", PasswordHash: string(hash)}

	suite.mockRepo.On("FindUserByUsername", ctx, "jordan").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "jordan", Password: "s3cret-pass"})

	suite.Require().NoError(err)
	suite.Equal(user.UserID, resp.UserID)
	suite.Equal(int64(3600), resp.ExpiresIn)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(parsed.Valid)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal("meridian-ledger", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), PasswordHash: string(hash)}

	suite.mockRepo.On("FindUserByUsername", ctx, "jordan").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "jordan", Password: "wrong"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
