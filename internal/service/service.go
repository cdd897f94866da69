package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vamshir3156/taskify-API/internal/auth"
	"github.com/Vamshir3156/taskify-API/internal/config"
	"github.com/Vamshir3156/taskify-API/internal/mailer"
	"github.com/Vamshir3156/taskify-API/internal/models"
	"github.com/Vamshir3156/taskify-API/internal/repository"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *mailer.Sender // nil when SMTP is not configured
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, sender *mailer.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: sender}
}

// Register creates a new user with a hashed password and issues a token
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	// Advisory existence check; the unique index on users.email is what
	// actually decides a concurrent duplicate registration.
	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, "", repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           models.UserID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.JWTSecret), auth.TokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
				s.log.Warnf("Welcome email for %s not sent: %v", user.Email, err)
			}
		}()
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns a JWT token. An unknown email and
// a password mismatch are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.JWTSecret), auth.TokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, token, nil
}

// CurrentUser returns the authenticated user's record
func (s *Service) CurrentUser(ctx context.Context, userID models.UserID) (*models.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

// ListTasks returns all tasks owned by userID, newest first
func (s *Service) ListTasks(ctx context.Context, userID models.UserID) ([]models.Task, error) {
	return s.repo.FindTasksByUser(ctx, userID)
}

// CreateTask creates a task owned by userID. The owner is always the acting
// user; nothing in the request can assign a task to someone else.
func (s *Service) CreateTask(ctx context.Context, userID models.UserID, title, description string, status models.TaskStatus) (*models.Task, error) {
	task := &models.Task{
		ID:          models.TaskID(uuid.NewString()),
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task": task.ID, "user": userID}).Info("Task created")
	return task, nil
}

// GetTask loads a task and enforces the ownership rule: a missing task is
// repository.ErrTaskNotFound, a foreign task is ErrNotTaskOwner. Existence
// is checked first, so any authenticated user can learn that an id exists
// but never what it contains.
func (s *Service) GetTask(ctx context.Context, userID models.UserID, taskID models.TaskID) (*models.Task, error) {
	task, err := s.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

// TaskUpdate carries the fields a task update may change. A nil field was
// omitted from the request and leaves the stored value untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// UpdateTask applies a partial update to a task owned by userID and returns
// the post-update task
func (s *Service) UpdateTask(ctx context.Context, userID models.UserID, taskID models.TaskID, upd TaskUpdate) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task": task.ID, "user": userID}).Info("Task updated")
	return task, nil
}

// DeleteTask removes a task owned by userID
func (s *Service) DeleteTask(ctx context.Context, userID models.UserID, taskID models.TaskID) error {
	if _, err := s.GetTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"task": taskID, "user": userID}).Info("Task deleted")
	return nil
}
