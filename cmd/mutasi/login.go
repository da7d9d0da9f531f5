package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hwgcc/mutasi-flow/internal/auth"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Login dan simpan sesi",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLogin,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := newAPIClient()
	if err != nil {
		return err
	}
	store, err := newAuthStore()
	if err != nil {
		return err
	}

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("failed to read email: %w", readErr)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("email wajib diisi")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	token, err := client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	if err := store.Save(auth.Credentials{
		Email:       email,
		AccessToken: token,
		SavedAt:     time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("login successful", "email", email)
	fmt.Println("Login berhasil. Sesi tersimpan.")
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Hapus sesi tersimpan",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := newAuthStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Sesi dihapus.")
			return nil
		},
	}
}
