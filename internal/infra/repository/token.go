package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/infra/database/models"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) GetClientByName(ctx context.Context, name string) (domain.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("name = ?", name).Take(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Client{}, domain.NotFoundError{Resource: "client"}
	}
	if err != nil {
		return domain.Client{}, errors.Wrap(err, "TokenRepository.GetClientByName")
	}
	return domain.Client{ID: client.ID, Name: client.Name}, nil
}

func (r *TokenRepository) Create(ctx context.Context, t domain.Token) error {
	token := models.Token{
		Token:    t.Token,
		UserID:   t.UserID,
		ClientID: t.ClientID,
		Expires:  t.Expires,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&token).Error
	return errors.Wrap(err, "TokenRepository.Create")
}

func (r *TokenRepository) Get(ctx context.Context, value string) (domain.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).Where("token = ?", value).Take(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Token{}, domain.NotFoundError{Resource: "token"}
	}
	if err != nil {
		return domain.Token{}, errors.Wrap(err, "TokenRepository.Get")
	}
	return domain.Token{
		ID:       token.ID,
		Token:    token.Token,
		UserID:   token.UserID,
		ClientID: token.ClientID,
		Expires:  token.Expires,
		CDate:    token.CDate,
	}, nil
}
