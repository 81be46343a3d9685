package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mossfell/cashfall/internal/cli"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage sign-in",
	}

	cmd.AddCommand(authSignUpCmd())
	cmd.AddCommand(authSignInCmd())
	cmd.AddCommand(authSignOutCmd())
	cmd.AddCommand(authStatusCmd())
	return cmd
}

func authSignUpCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			identity, err := initIdentity(store)
			if err != nil {
				return err
			}

			sess, err := identity.SignUp(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Signed in as " + sess.Email)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func authSignInCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			identity, err := initIdentity(store)
			if err != nil {
				return err
			}

			sess, err := identity.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Signed in as " + sess.Email)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func authSignOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			identity, err := initIdentity(store)
			if err != nil {
				return err
			}

			if err := identity.SignOut(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Signed out")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current sign-in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			identity, err := initIdentity(store)
			if err != nil {
				return err
			}

			sess, err := identity.CurrentSession(ctx)
			if err != nil {
				fmt.Println(cli.FormatWarning("Not signed in")) //nolint:forbidigo // User-facing output
				return nil
			}
			fmt.Println(cli.FormatSuccess("Signed in as " + sess.Email)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func closeStorage(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}
