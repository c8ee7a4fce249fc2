package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mytime/console/internal/core/domain"
)

var flagPasswordFile string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and keep the session locally",
	Long: `Authenticates against the backend and stores the token and user record in
the session store. The password is prompted for with echo disabled unless
--password-file is given ("-" reads it from stdin).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(flagPasswordFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		res := a.Account.Authenticate(cmd.Context(), domain.Credentials{Username: args[0], Password: password})
		switch res.Status {
		case domain.LoginStatusOK:
		case domain.LoginStatusInvalidCredentials:
			return errors.New("login failed: invalid username or password")
		default:
			return fmt.Errorf("login failed: %w", res.Err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Logged in as %s (%s)\n", displayName(res.User), res.User.RoleName())
		fmt.Fprintf(out, "Landing page: %s\n", a.Navigator.CurrentPath())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		a.Account.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagPasswordFile, "password-file", "", `file holding the password, or "-" for stdin`)
	rootCmd.AddCommand(loginCmd, logoutCmd)
}

// readPassword reads from path, from stdin for "-", or prompts on the
// terminal when path is empty.
func readPassword(path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no terminal for the password prompt (use --password-file)")
		}
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	case "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return trimPassword(b)
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return trimPassword(b)
	}
}

func trimPassword(b []byte) (string, error) {
	p := strings.TrimRight(string(b), "\r\n")
	if p == "" {
		return "", errors.New("password is empty")
	}
	return p, nil
}

func displayName(u *domain.CurrentUser) string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
