package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/spf13/cobra"
)

var (
	seedRole       string
	seedEmployeeID string
	seedTTL        time.Duration
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Mint a development token and open a session for it",
	Long: `Mint a signed development token with security.jwt_secret and store a console
session for it. Paste the token into the landing page hand-off form, or send the
printed cookie directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := initLogger(cfg)

		inspector := session.NewTokenInspector(cfg.Security.JWTSecret)
		token, err := inspector.Mint("dev-seed", session.Role(seedRole), seedEmployeeID, seedTTL)
		if err != nil {
			log.Fatalf("failed to mint token: %v", err)
		}

		repo, closeStore, err := openSessionRepository(cfg, lg)
		if err != nil {
			log.Fatalf("failed to open session store: %v", err)
		}
		defer closeStore()

		svc := session.NewService(repo, inspector, seedTTL, lg)
		sess, err := svc.Open(context.Background(), session.HandoffDTO{
			JWTToken:   token,
			UserRole:   seedRole,
			EmployeeID: seedEmployeeID,
		})
		if err != nil {
			log.Fatalf("failed to open session: %v", err)
		}

		fmt.Println("token:", token)
		if cfg.Database.Enabled() {
			fmt.Printf("cookie: %s=%s (expires %s)\n", cfg.Security.SessionCookieName, sess.ID, sess.ExpiresAt.Format(time.RFC3339))
		}
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedRole, "role", string(session.RoleAdmin), "role claim of the minted token")
	seedCmd.Flags().StringVar(&seedEmployeeID, "employee-id", "1", "employee_id claim of the minted token")
	seedCmd.Flags().DurationVar(&seedTTL, "ttl", 8*time.Hour, "token lifetime")
}
