/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/spf13/cobra"
)

var adminTokenTTLHours int

// adminTokenCmd mints a bearer token for the admin-only routes
// (currently the user listing).
var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Mint a bearer token for admin routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		secret := strings.TrimSpace(cfg.JWTSecret)
		if secret == "" {
			return errors.New("JWT_SECRET is required")
		}

		ttl := time.Duration(adminTokenTTLHours) * time.Hour
		token, err := handlers.IssueToken(handlers.AdminSubject, []byte(secret), ttl)
		if err != nil {
			return fmt.Errorf("issue token failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminTokenCmd)
	adminTokenCmd.Flags().IntVar(&adminTokenTTLHours, "ttl-hours", 24, "token lifetime in hours")
}
