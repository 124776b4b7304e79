package userController

import (
	"context"
	"errors"
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/repositories"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrLoginTaken         = errors.New("login already taken")
	ErrEmailTaken         = errors.New("email already in use")
)

type UserController struct {
	eventBus *events.EventBus
	userRepo repositories.UserRepository
	db       database.DB
	Config   config.Config
	log      logger.Logger
}

func New(
	eventBus *events.EventBus,
	userRepo repositories.UserRepository,
	db database.DB,
	config config.Config,
) *UserController {
	return &UserController{
		eventBus: eventBus,
		userRepo: userRepo,
		db:       db,
		Config:   config,
		log:      logger.New("UserController"),
	}
}

func (c *UserController) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	log := c.log.Function("Register")

	if req.Login == "" || req.Password == "" {
		return nil, log.Error("login and password are required", "login", req.Login)
	}

	if _, err := c.userRepo.GetByLogin(ctx, req.Login); err == nil {
		return nil, ErrLoginTaken
	}

	if req.Email != nil {
		if _, err := c.userRepo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		}
	}

	user := &User{
		Login:       req.Login,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: strings.TrimSpace(req.FirstName + " " + req.LastName),
		IsActive:    true,
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", err, "login", req.Login)
	}

	return user, nil
}

// Login verifies credentials and issues a session token in the session
// cache. The login field accepts either the login name or the email.
func (c *UserController) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	log := c.log.Function("Login")

	var user *User
	var err error
	if strings.Contains(req.Login, "@") {
		user, err = c.userRepo.GetByEmail(ctx, req.Login)
	} else {
		user, err = c.userRepo.GetByLogin(ctx, req.Login)
	}
	if err != nil || !user.IsActive || !user.CheckPassword(req.Password) {
		// Same outcome for unknown user and wrong password
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	sessionID := uuid.New().String()
	session := SessionData{UserID: user.ID, CreatedAt: now}

	if err := database.NewCacheBuilder(c.db.Cache.Session, sessionID).
		WithStruct(session).
		WithTTL(c.SessionTTL()).
		WithContext(ctx).
		Set(); err != nil {
		return nil, "", log.Err("failed to store session", err, "userID", user.ID)
	}

	return user, sessionID, nil
}

func (c *UserController) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := database.NewCacheBuilder(c.db.Cache.Session, sessionID).
		WithContext(ctx).
		Delete(); err != nil {
		c.log.Function("Logout").Warn("failed to revoke session", "error", err)
	}
}

func (c *UserController) UpdateProfile(
	ctx context.Context,
	user User,
	req UpdateProfileRequest,
) (*User, error) {
	log := c.log.Function("UpdateProfile")

	if req.Email != nil && (user.Email == nil || *req.Email != *user.Email) {
		if _, err := c.userRepo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.DateOfBirth != nil {
		dob := DateOnly(*req.DateOfBirth)
		user.DateOfBirth = &dob
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.LanguagePreference != nil {
		user.LanguagePreference = *req.LanguagePreference
	}

	if err := c.userRepo.Update(ctx, &user); err != nil {
		return nil, log.Err("failed to update profile", err, "userID", user.ID)
	}

	return &user, nil
}

func (c *UserController) ChangePassword(
	ctx context.Context,
	user User,
	req ChangePasswordRequest,
) error {
	log := c.log.Function("ChangePassword")

	if !user.CheckPassword(req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	if len(req.NewPassword) < 8 {
		return log.Error("new password too short", "userID", user.ID)
	}

	user.Password = req.NewPassword
	if err := c.userRepo.Update(ctx, &user); err != nil {
		return log.Err("failed to change password", err, "userID", user.ID)
	}

	return nil
}

func (c *UserController) SessionTTL() time.Duration {
	return time.Duration(c.Config.SessionTTLHours) * time.Hour
}
