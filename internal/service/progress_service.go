package service

import (
	"fmt"
	"strings"
	"time"

	"englishpath/internal/logger"
	"englishpath/internal/models"
	"englishpath/internal/repository"
	"englishpath/internal/validation"
)

const (
	// ItemPoints is awarded for completing one module item
	ItemPoints = 5
	// PracticePoints is awarded for completing the daily practice
	PracticePoints = 10
)

// ProgressService orchestrates user creation, item completion and point
// awards on top of the progress store
type ProgressService struct {
	store *repository.ProgressStore
	now   func() time.Time
	log   *logger.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(store *repository.ProgressStore, log *logger.Logger) *ProgressService {
	return &ProgressService{
		store: store,
		now:   time.Now,
		log:   log,
	}
}

// SetClock overrides the clock used to pick the daily practice date
func (s *ProgressService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateUser validates the names, registers the learner and creates their
// completion records
func (s *ProgressService) CreateUser(username, displayName string) (models.User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)

	if err := validation.ValidateUsername(username); err != nil {
		return models.User{}, err
	}
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return models.User{}, err
	}

	user, err := s.store.CreateUser(username, displayName)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.store.Initialize(user.ID); err != nil {
		if rmErr := s.store.RemoveUser(user.ID); rmErr != nil {
			s.log.Error("failed to remove uninitialized user", "user_id", user.ID, "error", rmErr)
		}
		return models.User{}, fmt.Errorf("failed to initialize progress: %w", err)
	}

	s.log.Info("user created", "user_id", user.ID, "username", username)
	return s.store.User(user.ID)
}

// CurrentUser returns a snapshot of the learner
func (s *ProgressService) CurrentUser(userID int64) (models.User, error) {
	return s.store.User(userID)
}

// RecordItem sets the completion flag of a module item and awards
// ItemPoints when the item is marked completed
func (s *ProgressService) RecordItem(userID int64, module models.ModuleKey, itemKey string, completed bool) (map[string]bool, models.User, error) {
	if module == models.ModulePractice {
		return nil, models.User{}, validation.New("module", "use the daily practice endpoint")
	}

	completion, err := s.store.MarkCompleted(userID, module, itemKey, completed)
	if err != nil {
		return nil, models.User{}, err
	}

	user, err := s.award(userID, completed, ItemPoints)
	if err != nil {
		return nil, models.User{}, err
	}

	s.log.Debug("item recorded", "user_id", userID, "module", module, "item", itemKey, "completed", completed)
	return completion, user, nil
}

// CompletePractice records today's daily practice and awards PracticePoints
// when it is marked completed. The date is the UTC date of the service clock.
func (s *ProgressService) CompletePractice(userID int64, completed bool) (string, models.User, error) {
	date := s.now().UTC().Format(models.PracticeDateLayout)

	if _, err := s.store.MarkCompleted(userID, models.ModulePractice, date, completed); err != nil {
		return "", models.User{}, err
	}

	user, err := s.award(userID, completed, PracticePoints)
	if err != nil {
		return "", models.User{}, err
	}

	s.log.Debug("practice recorded", "user_id", userID, "date", date, "completed", completed)
	return date, user, nil
}

// ModuleCompletion returns {itemKey -> completed} for one module
func (s *ProgressService) ModuleCompletion(userID int64, module models.ModuleKey) (map[string]bool, error) {
	return s.store.ModuleCompletion(userID, module)
}

// Summary returns the learner's overall summary
func (s *ProgressService) Summary(userID int64) (models.Summary, error) {
	return s.store.OverallSummary(userID)
}

func (s *ProgressService) award(userID int64, completed bool, amount int) (models.User, error) {
	if !completed {
		return s.store.User(userID)
	}
	user, err := s.store.AwardPoints(userID, amount)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to award points: %w", err)
	}
	return user, nil
}
