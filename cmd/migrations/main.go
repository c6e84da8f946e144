// Applies SQL migrations. With no arguments every *.up.sql file runs in
// lexical order; with a name argument only the matching file runs.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/digivote/api/internal/config"
)

const migrationsDir = "internal/adapters/repository/postgres/migrations"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	files, err := migrationFiles(migrationsDir, argOrEmpty())
	if err != nil {
		log.Fatal(err)
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute migration %s: %v", file, err)
		}
		fmt.Printf("applied %s\n", file)
	}
}

func argOrEmpty() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return ""
}

func migrationFiles(dir, name string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name != "" {
			if strings.Contains(entry.Name(), name) && strings.HasSuffix(entry.Name(), ".sql") {
				files = append(files, entry.Name())
			}
			continue
		}
		if strings.HasSuffix(entry.Name(), "up.sql") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found")
	}

	sort.Strings(files)
	return files, nil
}
