package service

import (
	"context"
	"errors"
	"log/slog"

	"libraryhub/internal/auth"
	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

// CreateUserInput is the staff account-creation payload. Accounts created
// this way are handed a temporary password, so MustChangePassword defaults
// to true unless explicitly disabled.
type CreateUserInput struct {
	Name               string
	Email              string
	Password           string
	Role               models.Role
	MustChangePassword *bool
	PictureURL         *string
}

type UpdateUserInput struct {
	Name       string
	Email      string
	Role       models.Role
	PictureURL *string
}

type UserService interface {
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*models.User, error)
	Get(ctx context.Context, actor Actor, id string) (*models.User, error)
	List(ctx context.Context, actor Actor, page, pageSize int) ([]models.User, int64, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*models.User, error)
	ChangePassword(ctx context.Context, actorID, currentPassword, newPassword string) error
	Delete(ctx context.Context, actor Actor, id string) error
	// ForceDelete cascades to the user's borrow records. Destructive and
	// irreversible; every call is written to the audit log.
	ForceDelete(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) Create(ctx context.Context, actor Actor, input CreateUserInput) (*models.User, error) {
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if !actor.CanManageUser(input.Role) {
		return nil, ErrForbidden
	}
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, ErrValidation
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	mustChange := true
	if input.MustChangePassword != nil {
		mustChange = *input.MustChangePassword
	}

	user := &models.User{
		Name:               input.Name,
		Email:              input.Email,
		Password:           hashedPassword,
		Role:               input.Role,
		PictureURL:         input.PictureURL,
		MustChangePassword: mustChange,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.logger.Info("user created",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))

	return user, nil
}

func (s *userService) Get(ctx context.Context, actor Actor, id string) (*models.User, error) {
	if !actor.CanActFor(id) {
		return nil, ErrForbidden
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, actor Actor, page, pageSize int) ([]models.User, int64, error) {
	if !actor.IsStaff() {
		return nil, 0, ErrForbidden
	}
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Self-edit covers profile fields only; anything touching another
	// account or a role needs management rights over the target.
	self := actor.ID == id
	if !self && !actor.CanManageUser(user.Role) {
		return nil, ErrForbidden
	}

	if input.Role != "" && input.Role != user.Role {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		// Role changes are a management action even on oneself, and the
		// subject must be allowed to hand out the new role too.
		if !actor.CanManageUser(user.Role) || !actor.CanManageUser(input.Role) {
			return nil, ErrForbidden
		}
		user.Role = input.Role
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" && input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
			return nil, ErrEmailInUse
		}
		user.Email = input.Email
	}
	if input.PictureURL != nil {
		user.PictureURL = input.PictureURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, actorID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrValidation
	}

	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.MustChangePassword = false
	return s.userRepo.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageUser(user.Role) {
		return ErrForbidden
	}

	return s.userRepo.Delete(ctx, id)
}

func (s *userService) ForceDelete(ctx context.Context, actor Actor, id string) error {
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageUser(user.Role) {
		return ErrForbidden
	}

	removed, err := s.userRepo.ForceDelete(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Warn("user force-deleted with cascading borrow removal",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", id),
		slog.String("email", user.Email),
		slog.Int64("borrows_removed", removed))

	return nil
}
