package service

import (
	"errors"
	"testing"
	"time"

	"englishpath/internal/content"
	"englishpath/internal/logger"
	"englishpath/internal/models"
	"englishpath/internal/repository"
	"englishpath/internal/validation"
)

func newTestServices(t *testing.T) (*ProgressService, *ModuleService, *repository.ProgressStore) {
	t.Helper()
	catalog := content.Default()
	store := repository.NewProgressStore(catalog)
	t.Cleanup(func() { store.Close() })

	progress := NewProgressService(store, logger.Nop())
	progress.SetClock(func() time.Time {
		return time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	})
	return progress, NewModuleService(catalog, store), store
}

type initFailPersister struct {
	users map[int64]models.User
}

func (p *initFailPersister) SaveUser(user models.User) error {
	p.users[user.ID] = user
	return nil
}

func (p *initFailPersister) SaveProgress(user models.User, records []models.CompletionRecord) error {
	return errors.New("disk full")
}

func (p *initFailPersister) DeleteUser(userID int64) error {
	delete(p.users, userID)
	return nil
}

func TestCreateUserRemovesUserWhenInitializeFails(t *testing.T) {
	p := &initFailPersister{users: make(map[int64]models.User)}
	store := repository.NewProgressStore(content.Default(), repository.WithPersister(p))
	t.Cleanup(func() { store.Close() })
	progress := NewProgressService(store, logger.Nop())

	if _, err := progress.CreateUser("maria", "Maria"); err == nil {
		t.Fatal("CreateUser() should fail when records cannot be persisted")
	}
	if store.Len() != 0 {
		t.Errorf("store holds %d users, want 0", store.Len())
	}
	if len(p.users) != 0 {
		t.Errorf("persister holds %d users, want 0", len(p.users))
	}
}

func TestCreateUserValidation(t *testing.T) {
	progress, _, _ := newTestServices(t)

	tests := []struct {
		name        string
		username    string
		displayName string
		wantErr     bool
	}{
		{name: "valid", username: "maria", displayName: "Maria", wantErr: false},
		{name: "trimmed", username: "  li.wei ", displayName: " Li Wei ", wantErr: false},
		{name: "empty username", username: "", displayName: "X", wantErr: true},
		{name: "short username", username: "a", displayName: "X", wantErr: true},
		{name: "bad characters", username: "bad name!", displayName: "X", wantErr: true},
		{name: "empty display name", username: "ok_user", displayName: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := progress.CreateUser(tt.username, tt.displayName)
			if tt.wantErr {
				if !validation.IsValidationError(err) {
					t.Errorf("CreateUser() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("CreateUser() unexpected error = %v", err)
			}
		})
	}
}

func TestCreateUserInitializesRecords(t *testing.T) {
	progress, _, _ := newTestServices(t)

	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.Progress != 0 || user.Points != 0 {
		t.Errorf("new user should start empty, got %+v", user)
	}

	completion, err := progress.ModuleCompletion(user.ID, models.ModuleAlphabet)
	if err != nil {
		t.Fatalf("ModuleCompletion() error = %v", err)
	}
	if len(completion) != 26 {
		t.Errorf("got %d alphabet records, want 26", len(completion))
	}
}

func TestRecordItemAwardsPoints(t *testing.T) {
	progress, _, _ := newTestServices(t)
	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	completion, updated, err := progress.RecordItem(user.ID, models.ModuleAlphabet, "a", true)
	if err != nil {
		t.Fatalf("RecordItem() error = %v", err)
	}
	if !completion["A"] {
		t.Error("expected A to be completed")
	}
	if updated.Points != ItemPoints {
		t.Errorf("Points = %d, want %d", updated.Points, ItemPoints)
	}
	if updated.LastModule != "/alphabet" {
		t.Errorf("LastModule = %q, want /alphabet", updated.LastModule)
	}

	_, updated, err = progress.RecordItem(user.ID, models.ModuleAlphabet, "A", false)
	if err != nil {
		t.Fatalf("RecordItem(false) error = %v", err)
	}
	if updated.Points != ItemPoints {
		t.Errorf("un-completing should not award points, got %d", updated.Points)
	}
}

func TestRecordItemUnknown(t *testing.T) {
	progress, _, _ := newTestServices(t)
	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, _, err = progress.RecordItem(user.ID, models.ModuleAlphabet, "ZZ", true)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("RecordItem(ZZ) error = %v, want ErrNotFound", err)
	}
	_, _, err = progress.RecordItem(999, models.ModuleAlphabet, "A", true)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("RecordItem(unknown user) error = %v, want ErrNotFound", err)
	}
	_, _, err = progress.RecordItem(user.ID, models.ModulePractice, "2024-03-01", true)
	if !validation.IsValidationError(err) {
		t.Errorf("RecordItem(practice) error = %v, want validation error", err)
	}

	current, _ := progress.CurrentUser(user.ID)
	if current.Points != 0 {
		t.Errorf("failed writes should not award points, got %d", current.Points)
	}
}

func TestCompletePractice(t *testing.T) {
	progress, _, _ := newTestServices(t)
	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	date, updated, err := progress.CompletePractice(user.ID, true)
	if err != nil {
		t.Fatalf("CompletePractice() error = %v", err)
	}
	if date != "2024-03-01" {
		t.Errorf("date = %q, want 2024-03-01", date)
	}
	if updated.Points != PracticePoints {
		t.Errorf("Points = %d, want %d", updated.Points, PracticePoints)
	}
	if updated.Progress != 0 {
		t.Errorf("practice should not change progress, got %d", updated.Progress)
	}

	summary, err := progress.Summary(user.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Streak != 1 || summary.CompletedExercises != 1 {
		t.Errorf("Summary() = %+v, want streak 1 and 1 exercise", summary)
	}
}
