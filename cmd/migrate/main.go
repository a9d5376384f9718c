package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// Runs migrations, creates the first tenant account from env, and
// optionally imports contacts from a CSV file:
//
//	migrate [contacts.csv]
//
// CSV columns: first_name,last_name,email,phone,status
func main() {
	_ = godotenv.Load()

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "/var/lib/amistack/amistack.db"
	}

	fmt.Printf("Opening DB (%s) at %s...\n", driver, dsn)
	st, err := store.NewStore(driver, dsn)
	if err != nil {
		log.Fatalf("failed to open DB: %v", err)
	}

	user := ensureFirstUser(st)

	if len(os.Args) > 1 {
		importContacts(st, user, os.Args[1])
	}

	fmt.Println("Done.")
}

func ensureFirstUser(st *store.Store) *models.User {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		count, _ := st.UserCount()
		if count == 0 {
			fmt.Println("No users exist and ADMIN_EMAIL/ADMIN_PASSWORD are unset; skipping account creation.")
		}
		u, err := st.GetUserByEmail(email)
		if err != nil {
			return nil
		}
		return u
	}

	if existing, err := st.GetUserByEmail(email); err == nil {
		fmt.Printf("Account %s already exists.\n", email)
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		TokenExpiry:  time.Now(),
		Plan:         "free",
	}
	if err := st.CreateUser(user); err != nil {
		log.Fatalf("failed to create account: %v", err)
	}
	fmt.Printf("Created account %s (log in via the API to obtain a token).\n", email)
	return user
}

func importContacts(st *store.Store, user *models.User, path string) {
	if user == nil {
		log.Fatal("cannot import contacts without a tenant account (set ADMIN_EMAIL)")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	fmt.Printf("Importing contacts from %s...\n", path)
	reader := csv.NewReader(f)
	count := 0
	skipped := 0

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("csv error: %v", err)
		}
		if len(rec) < 3 {
			skipped++
			continue
		}
		// Header row
		if count == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "first_name") {
			continue
		}

		contact := &models.Contact{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(rec[0]),
			LastName:  strings.TrimSpace(rec[1]),
			Email:     strings.TrimSpace(rec[2]),
			Status:    models.StatusNew,
			Source:    "import",
		}
		if len(rec) > 3 {
			contact.Phone = strings.TrimSpace(rec[3])
		}
		if len(rec) > 4 && models.ValidContactStatus(strings.TrimSpace(rec[4])) {
			contact.Status = strings.TrimSpace(rec[4])
		}

		if contact.Email != "" {
			if _, err := st.FindContactByEmail(user.ID, contact.Email); err == nil {
				skipped++
				continue
			}
		}

		if err := st.CreateContact(contact); err != nil {
			log.Printf("skipping row: %v", err)
			skipped++
			continue
		}
		count++
	}

	fmt.Printf("Imported %d contacts (%d skipped).\n", count, skipped)
}
