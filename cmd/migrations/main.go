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
)

// Applies migration files from the postgres adapter. With no argument every
// "*_up.sql" file runs in name order; with an argument only the matching
// migration runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	files, err := migrationFiles(basePath, migrationFilter())
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no matching migration files found")
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(basePath, name))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute migration %s: %v", name, err)
		}
		fmt.Printf("applied %s\n", name)
	}
}

func migrationFilter() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return ""
}

func migrationFiles(basePath, filter string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_up.sql") {
			continue
		}
		if filter != "" && !strings.Contains(entry.Name(), filter) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
