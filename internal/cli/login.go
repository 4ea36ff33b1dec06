package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session token",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func runLogin(_ *cobra.Command, _ []string) error {
	username, err := promptLine("username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			DisplayName string `json:"display_name"`
			Username    string `json:"username"`
		} `json:"user"`
	}
	if err := client().Post("/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out); err != nil {
		return err
	}

	if err := SaveSession(flagServer, out.Token); err != nil {
		return err
	}

	name := out.User.DisplayName
	if name == "" {
		name = out.User.Username
	}
	fmt.Printf("\n  Logged in as %s.\n", name)
	return nil
}

func runRegister(_ *cobra.Command, _ []string) error {
	username, err := promptLine("username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("password (8-32, upper+lower+digit): ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("confirm password: ")
	if err != nil {
		return err
	}

	if err := client().Post("/api/auth/register", map[string]string{
		"username":         username,
		"password":         password,
		"confirm_password": confirm,
	}, nil); err != nil {
		return err
	}

	fmt.Println("\n  Account created. Run `numberctl login` to sign in.")
	return nil
}
