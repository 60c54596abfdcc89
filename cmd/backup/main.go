package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"englishpath/internal/config"
	"englishpath/internal/content"
	"englishpath/internal/database"
	"englishpath/internal/logger"
	"englishpath/internal/repository"
	"englishpath/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path, .json or .xlsx (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.Persistent() {
		log.Fatal("backup needs a database; set DB_TYPE to sqlite, postgres or mysql")
	}

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if _, err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	backupService := service.NewBackupService(repository.NewProgressRepository(db), content.Default(), cfg.DatabaseType, log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, log, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, log, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, log *logger.Logger, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("failed to create output directory", "error", err)
		}
	}

	log.Info("exporting database", "output", outputPath)
	if err := backupService.Export(outputPath); err != nil {
		log.Fatal("export failed", "error", err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		log.Info("export complete", "size_mb", fmt.Sprintf("%.2f", float64(info.Size())/1024/1024))
	}
}

func handleImport(backupService *service.BackupService, log *logger.Logger, inputPath string, clearData bool) {
	// Check if file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatal("input file does not exist", "input", inputPath)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Info("import cancelled")
			return
		}

		if err := backupService.Clear(); err != nil {
			log.Fatal("failed to clear database", "error", err)
		}
	}

	log.Info("importing database", "input", inputPath)
	if err := backupService.Import(inputPath); err != nil {
		log.Fatal("import failed", "error", err)
	}

	log.Info("import complete")
}

func printUsage() {
	fmt.Println("EnglishPath Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON or XLSX")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println("                    A .xlsx extension writes a spreadsheet report")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres or mysql")
	fmt.Println("  DB_PATH          SQLite database path (default: ./englishpath.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
