package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/config"
	"github.com/jonathan/career-analyzer/internal/server"
	"github.com/jonathan/career-analyzer/internal/types"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token",
	Long:  `Signs a token with JWT_SECRET for calling the authenticated endpoints of a local server.`,
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenRole   string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User UUID (random when empty)")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", string(types.RoleFree), "Subscription role: free, pro, premium or admin")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	role, err := types.ParseUserRole(tokenRole)
	if err != nil {
		return err
	}
	userID := uuid.New()
	if tokenUserID != "" {
		if userID, err = uuid.Parse(tokenUserID); err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID, role)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
