package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/5w1tchy/password-meter/internal/security/password"
	"github.com/5w1tchy/password-meter/internal/validate"
)

var (
	generateLength  int
	generateUniform bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	Long: `Generate a password from letters, digits and !@#$%^&*.
By default one character of each class is guaranteed; --uniform draws every character independently.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validate.Length(generateLength); err != nil {
			return err
		}
		gen := password.GenerateStrong
		if generateUniform {
			gen = password.Generate
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), gen(generateLength))
		return err
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "n", password.DefaultLength, "Password length")
	generateCmd.Flags().BoolVar(&generateUniform, "uniform", false, "Draw each character uniformly without guaranteeing every class")
	rootCmd.AddCommand(generateCmd)
}
