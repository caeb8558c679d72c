package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/infrastructure/email"
	"storyshare-backend/pkg/jwt"
	"storyshare-backend/pkg/logger"
)

// ResetEmailEnqueuer queues the reset email for asynchronous delivery.
// Satisfied by the asynq queue client.
type ResetEmailEnqueuer interface {
	EnqueueResetPasswordEmail(data email.ResetPasswordData) error
}

// userService implements user.Service.
type userService struct {
	repo         user.Repository
	jwtManager   *jwt.Manager
	queue        ResetEmailEnqueuer
	emailService email.EmailService
	frontendURL  string
}

func NewUserService(
	repo user.Repository,
	jwtManager *jwt.Manager,
	queue ResetEmailEnqueuer,
	emailService email.EmailService,
	frontendURL string,
) user.Service {
	return &userService{
		repo:         repo,
		jwtManager:   jwtManager,
		queue:        queue,
		emailService: emailService,
		frontendURL:  frontendURL,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Signup(ctx context.Context, req user.SignupRequest) (*user.UserDTO, error) {
	return s.register(ctx, req, user.RoleUser, user.ErrEmailAlreadyRegistered)
}

// AddAdmin is Signup with role Admin. The duplicate check compares only
// the email, never the role, so the returned conflict can name a
// regular user "admin"; the historical message is kept on purpose.
func (s *userService) AddAdmin(ctx context.Context, req user.SignupRequest) (*user.UserDTO, error) {
	return s.register(ctx, req, user.RoleAdmin, user.ErrEmailAlreadyAdmin)
}

func (s *userService) register(ctx context.Context, req user.SignupRequest, role user.Role, conflictErr error) (*user.UserDTO, error) {
	// Step 1: validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: duplicate email check
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, conflictErr
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check email exists: %w", err)
	}

	// Step 3: hash the password with a random salt
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Step 4: persist
	newUser := &user.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(passwordHash),
		Avatar:    req.Avatar,
		Role:      role,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Step 5: return with password stripped
	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}

	return s.issueToken(u, req.Password)
}

func (s *userService) LoginAdmin(ctx context.Context, req user.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	u, err := s.repo.FindAdminByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}

	return s.issueToken(u, req.Password)
}

func (s *userService) issueToken(u *user.User, password string) (string, error) {
	// Constant-time hash comparison.
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", user.ErrPasswordIncorrect
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return token, nil
}

func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	token, err := s.jwtManager.GenerateResetToken(u.ID.Hex())
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	data := email.ResetPasswordData{
		Email:     u.Email,
		ResetLink: fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token),
		ExpiresIn: "15 days",
	}

	// Delivery goes through the job queue; if the queue is down, fall
	// back to a synchronous send so the endpoint keeps its contract.
	if err := s.queue.EnqueueResetPasswordEmail(data); err != nil {
		logger.Warn("Reset email enqueue failed, sending synchronously", map[string]interface{}{
			"error": err.Error(),
		})
		if err := s.emailService.SendResetPasswordEmail(ctx, data); err != nil {
			return fmt.Errorf("send reset email: %w", err)
		}
	}

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, token string, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// Expired, malformed, or badly signed tokens are an authentication
	// failure, not a crash.
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return user.ErrInvalidToken
	}

	// A plain session token must not reset passwords.
	if !claims.ForgotPassword {
		return user.ErrNotResetToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return user.ErrInvalidToken
	}

	// The encoded user may have been deleted since the email went out.
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	return nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*user.ProfileDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stories, err := s.repo.ResolveStories(ctx, u.Stories)
	if err != nil {
		return nil, fmt.Errorf("resolve authored stories: %w", err)
	}

	likes, err := s.repo.ResolveStories(ctx, u.Likes)
	if err != nil {
		return nil, fmt.Errorf("resolve liked stories: %w", err)
	}

	return &user.ProfileDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		Stories:   stories,
		Likes:     likes,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Rehash only when a new password was supplied; otherwise the
	// stored hash stays untouched.
	var passwordHash string
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = string(hash)
	}

	u, err := s.repo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Avatar, passwordHash)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// ADMINISTRATION
// ========================================

func (s *userService) ListUsers(ctx context.Context) ([]user.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}

	return dtos, nil
}

// DeleteUser removes the user document only. The user's stories are
// left in place, authored by an id that no longer resolves.
func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
