package service

import (
	"errors"
	"strconv"
	"testing"

	"englishpath/internal/content"
	"englishpath/internal/models"
)

func statusOf(t *testing.T, list []models.ModuleDescriptor, key models.ModuleKey) models.ModuleDescriptor {
	t.Helper()
	for _, m := range list {
		if m.ID == key {
			return m
		}
	}
	t.Fatalf("module %s not in list", key)
	return models.ModuleDescriptor{}
}

func TestBuildModuleList(t *testing.T) {
	catalog := content.Default()

	tests := []struct {
		name   string
		counts map[models.ModuleKey]models.ModuleCount
		want   map[models.ModuleKey]models.ModuleStatus
	}{
		{
			name:   "fresh user",
			counts: map[models.ModuleKey]models.ModuleCount{},
			want: map[models.ModuleKey]models.ModuleStatus{
				models.ModuleAlphabet:   models.StatusInProgress,
				models.ModuleResources:  models.StatusInProgress,
				models.ModuleHealth:     models.StatusLocked,
				models.ModuleDirections: models.StatusLocked,
			},
		},
		{
			name: "prerequisites above threshold",
			counts: map[models.ModuleKey]models.ModuleCount{
				models.ModuleAlphabet: {Completed: 16, Total: 26},
				models.ModuleNumbers:  {Completed: 6, Total: 10},
				models.ModuleFood:     {Completed: 3, Total: 4},
			},
			want: map[models.ModuleKey]models.ModuleStatus{
				models.ModuleHealth:     models.StatusInProgress,
				models.ModuleDirections: models.StatusInProgress,
			},
		},
		{
			name: "exactly fifty percent stays locked",
			counts: map[models.ModuleKey]models.ModuleCount{
				models.ModuleAlphabet: {Completed: 16, Total: 26},
				models.ModuleNumbers:  {Completed: 5, Total: 10},
				models.ModuleFood:     {Completed: 3, Total: 4},
			},
			want: map[models.ModuleKey]models.ModuleStatus{
				models.ModuleHealth:     models.StatusLocked,
				models.ModuleDirections: models.StatusLocked,
			},
		},
		{
			name: "completed modules",
			counts: map[models.ModuleKey]models.ModuleCount{
				models.ModuleAlphabet: {Completed: 26, Total: 26},
				models.ModuleNumbers:  {Completed: 10, Total: 10},
				models.ModuleFood:     {Completed: 4, Total: 4},
			},
			want: map[models.ModuleKey]models.ModuleStatus{
				models.ModuleAlphabet:   models.StatusCompleted,
				models.ModuleNumbers:    models.StatusCompleted,
				models.ModuleFood:       models.StatusCompleted,
				models.ModuleObjects:    models.StatusInProgress,
				models.ModuleHealth:     models.StatusInProgress,
				models.ModuleDirections: models.StatusInProgress,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := BuildModuleList(catalog, tt.counts)
			if len(list) != len(catalog.Modules()) {
				t.Fatalf("got %d modules, want %d", len(list), len(catalog.Modules()))
			}
			for key, want := range tt.want {
				if got := statusOf(t, list, key).Status; got != want {
					t.Errorf("%s status = %s, want %s", key, got, want)
				}
			}
		})
	}
}

func TestComputeModuleListOrderIsFixed(t *testing.T) {
	progress, modules, _ := newTestServices(t)
	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	list, err := modules.ComputeModuleList(user.ID)
	if err != nil {
		t.Fatalf("ComputeModuleList() error = %v", err)
	}
	want := []models.ModuleKey{
		models.ModuleAlphabet, models.ModuleNumbers, models.ModuleFood, models.ModuleObjects,
		models.ModuleResources, models.ModuleHealth, models.ModuleDirections, models.ModulePhrases,
	}
	for i, key := range want {
		if list[i].ID != key {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, key)
		}
	}
}

func TestComputeModuleListScenario(t *testing.T) {
	progress, modules, _ := newTestServices(t)
	user, err := progress.CreateUser("maria", "Maria")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	for _, letter := range []string{"A", "B", "C"} {
		if _, _, err := progress.RecordItem(user.ID, models.ModuleAlphabet, letter, true); err != nil {
			t.Fatalf("RecordItem(%s) error = %v", letter, err)
		}
	}

	list, err := modules.ComputeModuleList(user.ID)
	if err != nil {
		t.Fatalf("ComputeModuleList() error = %v", err)
	}
	alphabet := statusOf(t, list, models.ModuleAlphabet)
	if alphabet.Progress != 11 || alphabet.Status != models.StatusInProgress {
		t.Errorf("alphabet = %d%% %s, want 11%% in-progress", alphabet.Progress, alphabet.Status)
	}

	for i := 1; i <= 10; i++ {
		if _, _, err := progress.RecordItem(user.ID, models.ModuleNumbers, strconv.Itoa(i), true); err != nil {
			t.Fatalf("RecordItem(%d) error = %v", i, err)
		}
	}
	list, _ = modules.ComputeModuleList(user.ID)
	if got := statusOf(t, list, models.ModuleNumbers).Status; got != models.StatusCompleted {
		t.Errorf("numbers status = %s, want completed", got)
	}
	if got := statusOf(t, list, models.ModuleHealth).Status; got != models.StatusLocked {
		t.Errorf("health status = %s, want locked", got)
	}
}

func TestComputeModuleListUnknownUser(t *testing.T) {
	_, modules, _ := newTestServices(t)
	if _, err := modules.ComputeModuleList(42); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ComputeModuleList() error = %v, want ErrNotFound", err)
	}
}

func TestUnlockRevertsWhenPrerequisiteDrops(t *testing.T) {
	for _, drop := range []models.ModuleKey{models.ModuleAlphabet, models.ModuleFood} {
		t.Run(string(drop), func(t *testing.T) {
			progress, modules, store := newTestServices(t)
			user, err := progress.CreateUser("maria", "Maria")
			if err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}

			catalog := store.Catalog()
			set := func(module models.ModuleKey, done int) {
				t.Helper()
				for i, item := range catalog.TrackedItems(module) {
					if _, _, err := progress.RecordItem(user.ID, module, item, i < done); err != nil {
						t.Fatalf("RecordItem(%s, %s) error = %v", module, item, err)
					}
				}
			}
			locked := func(want bool) {
				t.Helper()
				list, err := modules.ComputeModuleList(user.ID)
				if err != nil {
					t.Fatalf("ComputeModuleList() error = %v", err)
				}
				for _, key := range []models.ModuleKey{models.ModuleHealth, models.ModuleDirections} {
					if got := statusOf(t, list, key).Status == models.StatusLocked; got != want {
						t.Errorf("%s locked = %v, want %v", key, got, want)
					}
				}
			}

			set(models.ModuleAlphabet, 16)
			set(models.ModuleNumbers, 6)
			set(models.ModuleFood, 3)
			locked(false)

			switch drop {
			case models.ModuleAlphabet:
				set(models.ModuleAlphabet, 13)
			case models.ModuleFood:
				set(models.ModuleFood, 1)
			}
			locked(true)
		})
	}
}
