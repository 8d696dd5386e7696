package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docverify/internal/model"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) session(args mock.Arguments) (*model.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) SignIn(ctx context.Context, email string) (*model.Session, error) {
	return m.session(m.Called(ctx, email))
}

func (m *MockSessionService) SignUp(ctx context.Context, name, email, password, confirm string) (*model.Session, error) {
	return m.session(m.Called(ctx, name, email, password, confirm))
}

func (m *MockSessionService) SignInWeb3(ctx context.Context, address string) (*model.Session, error) {
	return m.session(m.Called(ctx, address))
}

func (m *MockSessionService) ConnectWallet(ctx context.Context, requestedAddress string) (*model.Session, error) {
	return m.session(m.Called(ctx, requestedAddress))
}

func (m *MockSessionService) Current(ctx context.Context) (*model.Session, error) {
	return m.session(m.Called(ctx))
}

func (m *MockSessionService) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
