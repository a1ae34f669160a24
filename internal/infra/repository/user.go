package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now()
	user := models.User{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
		Password:     u.PasswordHash,
		CDate:        now,
		MDate:        now,
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.User{}, domain.AlreadyExistsError{
			Message: fmt.Sprintf("There is an account already associated with %s", u.EmailAddress),
		}
	}
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserRepository.Create")
	}
	return toUser(user), nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserRepository.Get")
	}
	return toUser(user), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email_address = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return domain.User{}, errors.Wrap(err, "UserRepository.GetByEmail")
	}
	return toUser(user), nil
}

func toUser(m models.User) domain.User {
	return domain.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		EmailAddress: m.EmailAddress,
		PasswordHash: m.Password,
		CDate:        m.CDate,
		MDate:        m.MDate,
	}
}
