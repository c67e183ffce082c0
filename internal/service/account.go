package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inova-palpites/internal/model"
	"inova-palpites/internal/repository"
	"inova-palpites/internal/storage"
)

const minPasswordLength = 6

// AccountService handles registration, login and profile management.
// Credential checks happen here; token minting is the HTTP layer's job.
type AccountService struct {
	userRepo        *repository.UserRepository
	achievementRepo *repository.AchievementRepository
	uploader        storage.FileUploader
}

// NewAccountService creates a new AccountService instance. uploader may be
// nil when object storage is not configured; avatar uploads then fail with
// ErrUploadsDisabled.
func NewAccountService(
	userRepo *repository.UserRepository,
	achievementRepo *repository.AchievementRepository,
	uploader storage.FileUploader,
) *AccountService {
	return &AccountService{
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		uploader:        uploader,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	TeamName  string `json:"teamName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// Register creates a new non-administrator account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.FirstName == "" || input.LastName == "" || input.TeamName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: first name, last name, team name and email are required", ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		TeamName:     input.TeamName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *AccountService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ProfileInput carries the fields a user may edit on their own profile.
type ProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	TeamName  string `json:"teamName"`
	Phone     string `json:"phone"`
}

// UpdateProfile edits the owning user's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*model.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.TeamName == "" {
		return nil, fmt.Errorf("%w: first name, last name and team name are required", ErrValidation)
	}
	return s.userRepo.UpdateProfile(ctx, userID, input.FirstName, input.LastName, input.TeamName, input.Phone)
}

// UploadAvatar stores a new avatar image and records its public URL.
func (s *AccountService) UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.SetAvatar(ctx, userID, result.Location); err != nil {
		return "", err
	}
	return result.Location, nil
}

// Achievements returns the user's unlocked achievements, oldest first.
func (s *AccountService) Achievements(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}
