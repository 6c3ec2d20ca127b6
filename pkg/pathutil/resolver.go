// Package pathutil provides centralized path management for pipeline
// input, output and database files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths for report output, enriched data and the
// run-history database.
type PathResolver struct {
	inputPath string
	outputDir string
	dbPath    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// InputPath is the pipe-delimited sales data file
	InputPath string
	// OutputDir is the directory for the report and enriched data file
	OutputDir string
	// DBPath is the path to the SQLite database file for run history
	DBPath string
}

// New creates a new PathResolver with the given configuration.
// If DBPath is empty, it defaults to {OutputDir}/.runs/history.db
func New(config Config) *PathResolver {
	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(config.OutputDir, ".runs", "history.db")
	}

	return &PathResolver{
		inputPath: config.InputPath,
		outputDir: config.OutputDir,
		dbPath:    dbPath,
	}
}

// GetInputPath returns the sales data file path.
func (p *PathResolver) GetInputPath() string {
	return p.inputPath
}

// GetOutputDir returns the output directory.
func (p *PathResolver) GetOutputDir() string {
	return p.outputDir
}

// GetDatabasePath returns the run-history database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.dbPath
}

// GetReportPath returns the report file path.
func (p *PathResolver) GetReportPath() string {
	return filepath.Join(p.outputDir, "sales_report.txt")
}

// GetEnrichedPath returns the enriched data file path.
func (p *PathResolver) GetEnrichedPath() string {
	return filepath.Join(p.outputDir, "enriched_sales_data.txt")
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
