package user

import (
	"context"
	"errors"
	"strings"

	"fittrack/domain"
	"fittrack/entities"
	"fittrack/internal/utils/mailing"
	"fittrack/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Logout(ctx context.Context, claims *jwt.UserClaims) error
		Me(ctx context.Context, userID string) (domain.User, error)
		UpdateProfile(ctx context.Context, id string, req domain.ProfileForm, userID string) (domain.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}
	if _, err := s.userRepository.GetUserByUsername(ctx, username); err == nil {
		return domain.AuthResponse{}, domain.ErrUsernameAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	if s.mailer != nil {
		subject, body := mailing.WelcomeMail(user.Username, s.appURL)
		go func(to string) {
			if err := s.mailer.SendMail(to, subject, body); err != nil {
				log.Errorf("send welcome mail to %s: %v", to, err)
			}
		}(user.Email)
	}

	return s.authResponse(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *userService) Logout(ctx context.Context, claims *jwt.UserClaims) error {
	return s.jwtService.Revoke(ctx, claims)
}

func (s *userService) Me(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile replaces every profile field with the submitted form; users
// may only edit themselves. Once onboarded, age, weight and goal stay
// mandatory.
func (s *userService) UpdateProfile(ctx context.Context, id string, req domain.ProfileForm, userID string) (domain.User, error) {
	if id != userID {
		return domain.User{}, domain.ErrUserNotAllowed
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	if toUserResponse(user).Onboarded() {
		if err := req.ValidateOnboarding(); err != nil {
			return domain.User{}, err
		}
	}

	user.Age = req.Age
	user.Weight = req.Weight
	user.Height = req.Height
	user.Goal = req.Goal
	user.DailyCalorieIntake = req.DailyCalorieIntake
	user.DailyCalorieBurn = req.DailyCalorieBurn

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) authResponse(user *entities.User) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{JWT: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entities.User) domain.User {
	return domain.User{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Email:              user.Email,
		Age:                user.Age,
		Weight:             user.Weight,
		Height:             user.Height,
		Goal:               user.Goal,
		DailyCalorieIntake: user.DailyCalorieIntake,
		DailyCalorieBurn:   user.DailyCalorieBurn,
		CreatedAt:          user.CreatedAt,
	}
}
