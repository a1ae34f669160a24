package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/service"
)

type UserCreateInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
}

type UserUsecase struct {
	repo UserRepository
	auth Authenticator
}

func NewUserUsecase(repo UserRepository, auth Authenticator) *UserUsecase {
	return &UserUsecase{repo: repo, auth: auth}
}

func (uc *UserUsecase) Create(ctx context.Context, in UserCreateInput) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "Usecase.User.Create")
	defer span.End()

	hash, err := uc.auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "hash password")
	}

	return uc.repo.Create(ctx, domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
		PasswordHash: hash,
	})
}

func (uc *UserUsecase) Get(ctx context.Context, id int64) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "Usecase.User.Get")
	defer span.End()

	return uc.repo.Get(ctx, id)
}

// Authenticate exchanges credentials for a token bound to the named client.
func (uc *UserUsecase) Authenticate(ctx context.Context, email, password, clientName string) (service.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Usecase.User.Authenticate")
	defer span.End()

	return uc.auth.Authenticate(ctx, email, password, clientName)
}
