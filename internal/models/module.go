package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ModuleKey identifies a learning module
type ModuleKey string

const (
	ModuleAlphabet   ModuleKey = "alphabet"
	ModuleNumbers    ModuleKey = "numbers"
	ModuleFood       ModuleKey = "food"
	ModuleObjects    ModuleKey = "objects"
	ModuleResources  ModuleKey = "resources"
	ModuleHealth     ModuleKey = "health"
	ModuleDirections ModuleKey = "directions"
	ModulePhrases    ModuleKey = "phrases"

	// ModulePractice holds daily practice records keyed by date. It is not
	// shown in the module list.
	ModulePractice ModuleKey = "practice"
)

// PracticeDateLayout is the item key format of daily practice records
const PracticeDateLayout = "2006-01-02"

// ModuleStatus is the derived availability of a module
type ModuleStatus string

const (
	StatusLocked     ModuleStatus = "locked"
	StatusInProgress ModuleStatus = "in-progress"
	StatusCompleted  ModuleStatus = "completed"
)

// CompletionRecord is one tracked item of one module for one user
type CompletionRecord struct {
	Module    ModuleKey `json:"module"`
	ItemKey   string    `json:"itemKey"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ModuleDescriptor is the client-facing view of a module, derived on read
type ModuleDescriptor struct {
	ID          ModuleKey    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Progress    int          `json:"progress"`
	Status      ModuleStatus `json:"status"`
	ImageURL    string       `json:"imageUrl"`
	Path        string       `json:"path"`
}

// ModuleCount is the completed/total tally of one module
type ModuleCount struct {
	Completed int
	Total     int
}

// Percent returns the floored completion percentage of the tally
func (c ModuleCount) Percent() int {
	return Percent(c.Completed, c.Total)
}

// Summary aggregates a user's completion state across modules
type Summary struct {
	CompletedModules   int `json:"completedModules"`
	CompletedExercises int `json:"completedExercises"`
	Streak             int `json:"streak"`
}

// Percent returns floor(100*completed/total), or 0 when total is 0
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := 100 * completed / total
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// NormalizeItemKey canonicalises an item key for the given module.
// Letters are upper-cased, numbers rewritten in base 10 and practice dates
// must parse as YYYY-MM-DD.
func NormalizeItemKey(module ModuleKey, itemKey string) (string, error) {
	key := strings.TrimSpace(itemKey)
	if key == "" {
		return "", fmt.Errorf("item key is required")
	}

	switch module {
	case ModuleAlphabet:
		return strings.ToUpper(key), nil
	case ModuleNumbers:
		n, err := strconv.Atoi(key)
		if err != nil {
			// not a number, so it cannot be a known item either
			return key, nil
		}
		return strconv.Itoa(n), nil
	case ModulePractice:
		day, err := time.Parse(PracticeDateLayout, key)
		if err != nil {
			return "", fmt.Errorf("practice key %q is not a YYYY-MM-DD date", key)
		}
		return day.Format(PracticeDateLayout), nil
	default:
		return strings.ToLower(key), nil
	}
}
