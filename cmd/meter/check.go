package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/5w1tchy/password-meter/internal/security/password"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Score a password",
	Long: `Score a password against the length, case, digit and special-character rules.
Without an argument the password is read from the first line of stdin, which keeps it out of shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pwd, err := readPassword(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return writeAssessment(cmd.OutOrStdout(), password.Assess(pwd), checkFormat)
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(checkCmd)
}

func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeAssessment(w io.Writer, a password.Assessment, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(a)
	case "text":
		return writeText(w, a)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, a password.Assessment) error {
	if a.Blacklisted {
		_, err := fmt.Fprintln(w, color.Red.Sprint(a.Message))
		return err
	}

	label := color.HEX(a.Level.Color).Sprint(a.Level.Label)
	bar := color.HEX(a.Level.Color).Sprint(strings.Repeat("█", a.Result.Score)) +
		strings.Repeat("░", password.MaxScore-a.Result.Score)

	var b strings.Builder
	fmt.Fprintf(&b, "Strength: %s %s (%d/%d)\n", label, bar, a.Result.Score, password.MaxScore)
	fmt.Fprintln(&b, verdictColor(a.Verdict).Sprint(a.Message))
	for _, f := range a.Result.Feedback {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func verdictColor(v password.Verdict) color.Color {
	switch v {
	case password.VerdictSuccess:
		return color.Green
	case password.VerdictWarning:
		return color.Yellow
	default:
		return color.Red
	}
}
