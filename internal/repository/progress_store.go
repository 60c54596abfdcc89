package repository

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"englishpath/internal/content"
	"englishpath/internal/models"
	"englishpath/internal/validation"
)

// ErrStoreClosed is returned by every operation after Close
var ErrStoreClosed = errors.New("progress store closed")

// Persister mirrors store writes to durable storage. The store calls it
// before applying a write in memory; an error aborts the write.
type Persister interface {
	SaveUser(user models.User) error
	SaveProgress(user models.User, records []models.CompletionRecord) error
	DeleteUser(userID int64) error
}

type userState struct {
	mu          sync.Mutex
	user        models.User
	initialized bool
	records     map[models.ModuleKey]map[string]models.CompletionRecord
}

// ProgressStore is the in-memory holder of learners and their completion
// records. It is the only writer of User.Progress.
type ProgressStore struct {
	catalog   *content.Catalog
	persister Persister
	now       func() time.Time

	mu     sync.RWMutex
	users  map[int64]*userState
	closed bool
}

// maxUserID keeps ids exact in JSON number decoders
const maxUserID = 1<<53 - 1

// StoreOption configures a ProgressStore
type StoreOption func(*ProgressStore)

// WithPersister mirrors every write to p
func WithPersister(p Persister) StoreOption {
	return func(s *ProgressStore) {
		s.persister = p
	}
}

// WithClock overrides the time source used for UpdatedAt stamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *ProgressStore) {
		s.now = now
	}
}

// NewProgressStore creates an empty store over the given catalogue
func NewProgressStore(catalog *content.Catalog, opts ...StoreOption) *ProgressStore {
	s := &ProgressStore{
		catalog: catalog,
		now:     time.Now,
		users:   make(map[int64]*userState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalogue the store counts against
func (s *ProgressStore) Catalog() *content.Catalog {
	return s.catalog
}

// CreateUser registers a new learner. Completion records are not created
// until Initialize is called.
func (s *ProgressStore) CreateUser(username, displayName string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.User{}, ErrStoreClosed
	}

	id, err := s.newID()
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   s.now().UTC(),
	}

	if s.persister != nil {
		if err := s.persister.SaveUser(user); err != nil {
			return models.User{}, fmt.Errorf("failed to persist user: %w", err)
		}
	}

	s.users[user.ID] = &userState{
		user:    user,
		records: make(map[models.ModuleKey]map[string]models.CompletionRecord),
	}
	return user, nil
}

// RemoveUser drops a learner and all their records
func (s *ProgressStore) RemoveUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}

	if s.persister != nil {
		if err := s.persister.DeleteUser(userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}
	delete(s.users, userID)
	return nil
}

// Initialize creates one incomplete record for every tracked item. It may be
// called once per user; later calls return ErrAlreadyInitialized and leave
// the records untouched.
func (s *ProgressStore) Initialize(userID int64) error {
	st, err := s.get(userID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.initialized {
		return fmt.Errorf("user %d: %w", userID, models.ErrAlreadyInitialized)
	}

	now := s.now().UTC()
	var created []models.CompletionRecord
	for _, module := range s.catalog.TrackedModules() {
		for _, item := range s.catalog.TrackedItems(module) {
			created = append(created, models.CompletionRecord{
				Module:    module,
				ItemKey:   item,
				UpdatedAt: now,
			})
		}
	}

	if s.persister != nil {
		if err := s.persister.SaveProgress(st.user, created); err != nil {
			return fmt.Errorf("failed to persist initial records: %w", err)
		}
	}

	for _, rec := range created {
		st.put(rec)
	}
	st.initialized = true
	st.user.Progress = s.overall(st)
	return nil
}

// MarkCompleted sets the completed flag of one item and returns the module's
// updated completion map. Items outside the catalogue are rejected with
// ErrNotFound. Daily practice items are keyed by date and created on first
// write.
func (s *ProgressStore) MarkCompleted(userID int64, module models.ModuleKey, itemKey string, completed bool) (map[string]bool, error) {
	key, err := s.resolveItem(module, itemKey)
	if err != nil {
		return nil, err
	}

	st, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	previous, exists := st.records[module][key]
	if !exists && module != models.ModulePractice {
		return nil, fmt.Errorf("%s item %q for user %d: %w", module, key, userID, models.ErrNotFound)
	}

	previousUser := st.user
	rec := models.CompletionRecord{
		Module:    module,
		ItemKey:   key,
		Completed: completed,
		UpdatedAt: s.now().UTC(),
	}

	st.put(rec)
	st.user.LastModule = s.catalog.Path(module)
	st.user.Progress = s.overall(st)

	if s.persister != nil {
		if err := s.persister.SaveProgress(st.user, []models.CompletionRecord{rec}); err != nil {
			if exists {
				st.put(previous)
			} else {
				delete(st.records[module], key)
			}
			st.user = previousUser
			return nil, fmt.Errorf("failed to persist completion: %w", err)
		}
	}

	return st.completion(module), nil
}

// AwardPoints adds a non-negative amount to the user's points
func (s *ProgressStore) AwardPoints(userID int64, amount int) (models.User, error) {
	if amount < 0 {
		return models.User{}, validation.New("amount", "points must not be negative")
	}

	st, err := s.get(userID)
	if err != nil {
		return models.User{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	updated := st.user
	updated.Points += amount
	updated.Progress = s.overall(st)

	if s.persister != nil {
		if err := s.persister.SaveUser(updated); err != nil {
			return models.User{}, fmt.Errorf("failed to persist points: %w", err)
		}
	}

	st.user = updated
	return updated, nil
}

// User returns a snapshot of the learner
func (s *ProgressStore) User(userID int64) (models.User, error) {
	st, err := s.get(userID)
	if err != nil {
		return models.User{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.user, nil
}

// ModuleCompletion returns {itemKey -> completed} for one module. Modules
// without tracked items return an empty map.
func (s *ProgressStore) ModuleCompletion(userID int64, module models.ModuleKey) (map[string]bool, error) {
	if _, ok := s.catalog.Module(module); !ok && module != models.ModulePractice {
		return nil, fmt.Errorf("module %q: %w", module, models.ErrNotFound)
	}

	st, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.completion(module), nil
}

// ModuleCounts returns the completed/total tally of every catalogue module
func (s *ProgressStore) ModuleCounts(userID int64) (map[models.ModuleKey]models.ModuleCount, error) {
	st, err := s.get(userID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	counts := make(map[models.ModuleKey]models.ModuleCount)
	for _, m := range s.catalog.Modules() {
		counts[m.Key] = models.ModuleCount{
			Completed: s.completedIn(st, m.Key),
			Total:     len(s.catalog.TrackedItems(m.Key)),
		}
	}
	return counts, nil
}

// OverallSummary counts fully completed modules, completed records across all
// modules and completed daily practices. The streak is the number of
// completed practice days, not a run of consecutive days.
func (s *ProgressStore) OverallSummary(userID int64) (models.Summary, error) {
	st, err := s.get(userID)
	if err != nil {
		return models.Summary{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	var summary models.Summary
	for _, module := range s.catalog.TrackedModules() {
		total := len(s.catalog.TrackedItems(module))
		if total > 0 && models.Percent(s.completedIn(st, module), total) == 100 {
			summary.CompletedModules++
		}
	}
	for module, records := range st.records {
		for _, rec := range records {
			if !rec.Completed {
				continue
			}
			summary.CompletedExercises++
			if module == models.ModulePractice {
				summary.Streak++
			}
		}
	}
	return summary, nil
}

// Restore replaces the store contents with previously persisted state.
// Records for items no longer in the catalogue are dropped and missing
// tracked items of initialized users are filled in as incomplete.
func (s *ProgressStore) Restore(users []models.User, records map[int64][]models.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	restored := make(map[int64]*userState, len(users))
	for _, u := range users {
		st := &userState{
			user:    u,
			records: make(map[models.ModuleKey]map[string]models.CompletionRecord),
		}
		for _, rec := range records[u.ID] {
			if rec.Module != models.ModulePractice && !s.catalog.IsTracked(rec.Module, rec.ItemKey) {
				continue
			}
			if rec.Module != models.ModulePractice {
				st.initialized = true
			}
			st.put(rec)
		}
		if st.initialized {
			for _, module := range s.catalog.TrackedModules() {
				for _, item := range s.catalog.TrackedItems(module) {
					if _, ok := st.records[module][item]; !ok {
						st.put(models.CompletionRecord{Module: module, ItemKey: item, UpdatedAt: u.CreatedAt})
					}
				}
			}
		}
		st.user.Progress = s.overall(st)
		restored[u.ID] = st
	}

	s.users = restored
	return nil
}

// Len returns the number of users
func (s *ProgressStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Close releases all state. Later calls fail with ErrStoreClosed.
func (s *ProgressStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.users = nil
	return nil
}

// newID draws a random id not held by any current user. Caller holds s.mu.
func (s *ProgressStore) newID() (int64, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("failed to generate user id: %w", err)
		}
		id := int64(binary.BigEndian.Uint64(buf[:]) & maxUserID)
		if id == 0 {
			continue
		}
		if _, taken := s.users[id]; !taken {
			return id, nil
		}
	}
}

func (s *ProgressStore) get(userID int64) (*userState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	st, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return st, nil
}

// resolveItem validates module and item key against the catalogue and
// returns the canonical key
func (s *ProgressStore) resolveItem(module models.ModuleKey, itemKey string) (string, error) {
	if module == models.ModulePractice {
		key, err := models.NormalizeItemKey(module, itemKey)
		if err != nil {
			return "", validation.New("itemKey", err.Error())
		}
		return key, nil
	}

	m, ok := s.catalog.Module(module)
	if !ok || !m.Tracked {
		return "", fmt.Errorf("module %q: %w", module, models.ErrNotFound)
	}

	key, err := models.NormalizeItemKey(module, itemKey)
	if err != nil {
		return "", validation.New("itemKey", err.Error())
	}
	if !s.catalog.IsTracked(module, key) {
		return "", fmt.Errorf("%s item %q: %w", module, key, models.ErrNotFound)
	}
	return key, nil
}

// overall recomputes the aggregate percentage from the current records.
// Daily practice is not part of the aggregate. Caller holds st.mu.
func (s *ProgressStore) overall(st *userState) int {
	completed := 0
	for _, module := range s.catalog.TrackedModules() {
		completed += s.completedIn(st, module)
	}
	return models.Percent(completed, s.catalog.TotalTracked())
}

func (s *ProgressStore) completedIn(st *userState, module models.ModuleKey) int {
	n := 0
	for _, rec := range st.records[module] {
		if rec.Completed {
			n++
		}
	}
	return n
}

func (st *userState) put(rec models.CompletionRecord) {
	records, ok := st.records[rec.Module]
	if !ok {
		records = make(map[string]models.CompletionRecord)
		st.records[rec.Module] = records
	}
	records[rec.ItemKey] = rec
}

func (st *userState) completion(module models.ModuleKey) map[string]bool {
	out := make(map[string]bool, len(st.records[module]))
	for key, rec := range st.records[module] {
		out[key] = rec.Completed
	}
	return out
}
