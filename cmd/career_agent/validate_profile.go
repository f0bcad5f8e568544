package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/profile"
)

var validateProfileCmd = &cobra.Command{
	Use:   "validate-profile",
	Short: "Check a career profile file without calling the model",
	RunE:  runValidateProfile,
}

var validateProfilePath string

func init() {
	validateProfileCmd.Flags().StringVarP(&validateProfilePath, "profile", "p", "", "Path to career profile JSON file")
	_ = validateProfileCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(validateProfileCmd)
}

func runValidateProfile(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	p, err := readProfileFile(validateProfilePath)
	if err != nil {
		var invalid *profile.InvalidProfileError
		if errors.As(err, &invalid) {
			fmt.Fprintf(out, "Profile %s is invalid:\n", validateProfilePath)
			for _, fe := range invalid.Fields {
				fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	fmt.Fprintf(out, "Profile %s is valid (%s -> %s, %d skills)\n",
		validateProfilePath, p.CurrentRole, p.DesiredRole, len(p.Skills))
	return nil
}
