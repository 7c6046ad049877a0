package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/twofourteen/hr-portal/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"leave_request", "break_log", "attendance_log", "users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		seedAccounts := []struct {
			Email     string
			FirstName string
			LastName  string
			Role      string
		}{
			{"alice@example.com", "Alice", "Nakamura", auth.RoleEmployee},
			{"bob@example.com", "Bob", "Feld", auth.RoleEmployee},
			{"hr@example.com", "Hanna", "Reyes", auth.RoleHR},
			{"admin@example.com", "Ade", "Min", auth.RoleAdmin},
		}

		for _, acc := range seedAccounts {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", acc.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", acc.Email)
				continue
			}

			now := time.Now()
			_, err := db.Exec(
				`INSERT INTO users (id, first_name, last_name, email, password_hash, role, status, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
				uuid.NewString(), acc.FirstName, acc.LastName, acc.Email,
				string(hash), acc.Role, auth.StatusActive, now,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", acc.Email, err)
			}
			fmt.Println("Seeded user:", acc.Email, "role:", acc.Role)
		}

		fmt.Println("Seeding complete; every account uses password:", password)
	},
}
