package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"englishpath/internal/content"
	"englishpath/internal/logger"
	"englishpath/internal/models"
)

// BackupVersion is written to every export and required on import
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string       `json:"version"`
	ExportedAt   time.Time    `json:"exported_at"`
	DatabaseType string       `json:"database_type"`
	Users        []UserBackup `json:"users"`
}

// UserBackup represents a user and their completion records
type UserBackup struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Points      int            `json:"points"`
	LastModule  string         `json:"last_module"`
	CreatedAt   time.Time      `json:"created_at"`
	Records     []RecordBackup `json:"records"`
}

// RecordBackup represents one completion record
type RecordBackup struct {
	Module    string    `json:"module"`
	ItemKey   string    `json:"item_key"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BackupRepository is the storage the backup service reads and writes
type BackupRepository interface {
	LoadAll() ([]models.User, map[int64][]models.CompletionRecord, error)
	SaveProgress(user models.User, records []models.CompletionRecord) error
	Clear() error
}

// BackupService handles database backup and restore operations
type BackupService struct {
	repo    BackupRepository
	catalog *content.Catalog
	dbType  string
	log     *logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(repo BackupRepository, catalog *content.Catalog, dbType string, log *logger.Logger) *BackupService {
	return &BackupService{repo: repo, catalog: catalog, dbType: dbType, log: log}
}

// Export writes a backup to outputPath. Files ending in .xlsx get a
// spreadsheet report, everything else the JSON backup format.
func (s *BackupService) Export(outputPath string) error {
	if strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
		return s.ExportXLSX(outputPath)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes the JSON backup to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.snapshot()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	records := 0
	for _, u := range backup.Users {
		records += len(u.Records)
	}
	s.log.Info("database exported", "users", len(backup.Users), "records", records)
	return nil
}

// ExportXLSX writes a spreadsheet with one sheet of learners and one of
// completion records
func (s *BackupService) ExportXLSX(outputPath string) error {
	backup, err := s.snapshot()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Users"); err != nil {
		return fmt.Errorf("failed to name users sheet: %w", err)
	}
	if _, err := f.NewSheet("Progress"); err != nil {
		return fmt.Errorf("failed to create progress sheet: %w", err)
	}

	userRows := [][]interface{}{{"ID", "Username", "Display name", "Points", "Progress", "Last module", "Created"}}
	progressRows := [][]interface{}{{"User ID", "Username", "Module", "Item", "Completed", "Updated"}}
	for _, u := range backup.Users {
		userRows = append(userRows, []interface{}{
			u.ID, u.Username, u.DisplayName, u.Points, s.progressOf(u.Records), u.LastModule,
			u.CreatedAt.Format(time.RFC3339),
		})
		for _, r := range u.Records {
			progressRows = append(progressRows, []interface{}{
				u.ID, u.Username, r.Module, r.ItemKey, r.Completed, r.UpdatedAt.Format(time.RFC3339),
			})
		}
	}

	if err := writeRows(f, "Users", userRows); err != nil {
		return err
	}
	if err := writeRows(f, "Progress", progressRows); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	s.log.Info("spreadsheet exported", "path", outputPath, "users", len(backup.Users))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a JSON backup. Existing rows with the same keys
// are overwritten.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	records := 0
	for _, u := range backup.Users {
		user := models.User{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Points:      u.Points,
			LastModule:  u.LastModule,
			CreatedAt:   u.CreatedAt,
		}
		recs := make([]models.CompletionRecord, 0, len(u.Records))
		for _, r := range u.Records {
			recs = append(recs, models.CompletionRecord{
				Module:    models.ModuleKey(r.Module),
				ItemKey:   r.ItemKey,
				Completed: r.Completed,
				UpdatedAt: r.UpdatedAt,
			})
		}
		if err := s.repo.SaveProgress(user, recs); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
		records += len(recs)
	}

	s.log.Info("database imported", "users", len(backup.Users), "records", records)
	return nil
}

// Clear deletes all users and completion records
func (s *BackupService) Clear() error {
	if err := s.repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	s.log.Warn("database cleared")
	return nil
}

func (s *BackupService) snapshot() (*BackupData, error) {
	users, records, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}

	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.dbType,
		Users:        make([]UserBackup, 0, len(users)),
	}
	for _, u := range users {
		ub := UserBackup{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Points:      u.Points,
			LastModule:  u.LastModule,
			CreatedAt:   u.CreatedAt,
			Records:     make([]RecordBackup, 0, len(records[u.ID])),
		}
		for _, r := range records[u.ID] {
			ub.Records = append(ub.Records, RecordBackup{
				Module:    string(r.Module),
				ItemKey:   r.ItemKey,
				Completed: r.Completed,
				UpdatedAt: r.UpdatedAt,
			})
		}
		backup.Users = append(backup.Users, ub)
	}
	return backup, nil
}

// progressOf computes the overall percentage from exported records
func (s *BackupService) progressOf(records []RecordBackup) int {
	completed := 0
	for _, r := range records {
		module := models.ModuleKey(r.Module)
		if r.Completed && s.catalog.IsTracked(module, r.ItemKey) {
			completed++
		}
	}
	return models.Percent(completed, s.catalog.TotalTracked())
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
