package user

import (
	"context"

	"fittrack/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUserByIdentifier(ctx context.Context, identifier string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) first(ctx context.Context, query string, args ...any) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.first(ctx, "LOWER(username) = LOWER(?)", username)
}

func (r *userRepository) GetUserByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?) OR LOWER(username) = LOWER(?)", identifier, identifier)
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
