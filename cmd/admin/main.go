package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
	"citizendesk/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := config.Load()
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-user":
		if len(os.Args) != 6 {
			fmt.Println("Usage: admin create-user <name> <email> <role> <password>")
			os.Exit(1)
		}
		name, email, role, password := os.Args[2], os.Args[3], os.Args[4], os.Args[5]
		if err := createUser(storageSvc, name, email, models.Role(role), password); err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s (%s) created.\n", email, role)
	case "deactivate-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin deactivate-user <email>")
			os.Exit(1)
		}
		email := os.Args[2]
		if err := setUserActive(storageSvc, email, false); err != nil {
			log.Fatalf("Error deactivating user: %v", err)
		}
		fmt.Printf("User %s has been deactivated.\n", email)
	case "reset-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin reset-password <email> <password>")
			os.Exit(1)
		}
		email, password := os.Args[2], os.Args[3]
		if err := resetPassword(storageSvc, email, password); err != nil {
			log.Fatalf("Error resetting password: %v", err)
		}
		fmt.Printf("Password for %s has been reset.\n", email)
	case "import-news":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin import-news <dir>")
			os.Exit(1)
		}
		dir := os.Args[2]
		count, err := importNews(storageSvc, dir)
		if err != nil {
			log.Fatalf("Error importing news: %v", err)
		}
		fmt.Printf("Imported %d draft articles from %s.\n", count, dir)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createUser(s storage.Storage, name, email string, role models.Role, password string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.CreateUser(&models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
}

func setUserActive(s storage.Storage, email string, active bool) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	user.Active = active
	return s.UpdateUser(user)
}

func resetPassword(s storage.Storage, email, password string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.UpdateUser(user)
}

// importNews scans a folder of article files and bulk-inserts draft rows.
// Files are named <slug>.en.md and <slug>.sw.md (or .txt); the first line
// is the title, the remainder is the content. Swahili files without an
// English sibling are skipped.
func importNews(s storage.Storage, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory: %w", err)
	}

	type draft struct{ titleEn, contentEn, titleSw, contentSw string }
	drafts := make(map[string]*draft)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".md" && ext != ".txt" {
			continue
		}
		base := strings.TrimSuffix(name, ext)

		lang := ""
		slug := base
		if strings.HasSuffix(base, ".en") {
			lang = "en"
			slug = strings.TrimSuffix(base, ".en")
		} else if strings.HasSuffix(base, ".sw") {
			lang = "sw"
			slug = strings.TrimSuffix(base, ".sw")
		} else {
			lang = "en" // untagged files are treated as English
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", name, err)
		}
		title, content := splitArticle(string(data))

		d, ok := drafts[slug]
		if !ok {
			d = &draft{}
			drafts[slug] = d
		}
		if lang == "en" {
			d.titleEn, d.contentEn = title, content
		} else {
			d.titleSw, d.contentSw = title, content
		}
	}

	count := 0
	for slug, d := range drafts {
		if d.titleEn == "" {
			log.Printf("WARNING: Skipping %s: no English version", slug)
			continue
		}
		article := &models.NewsArticle{
			TitleEn:   d.titleEn,
			ContentEn: d.contentEn,
			TitleSw:   d.titleSw,
			ContentSw: d.contentSw,
			Status:    models.ArticleDraft,
		}
		if err := s.CreateArticle(article); err != nil {
			return count, fmt.Errorf("failed to insert %s: %w", slug, err)
		}
		count++
	}
	return count, nil
}

// splitArticle separates the title line from the body, stripping a
// leading markdown heading marker.
func splitArticle(text string) (title, content string) {
	text = strings.TrimSpace(text)
	line, rest, _ := strings.Cut(text, "\n")
	title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	content = strings.TrimSpace(rest)
	return title, content
}
