// Package main is the password strength meter: a web form plus CLI helpers.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "meter",
	Short:         "Password strength meter",
	Long:          "Scores passwords against length, case, digit and special-character rules, and generates strong ones.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
