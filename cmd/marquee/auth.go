package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/app"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the marquee backend",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and library totals",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update username, display name, bio or avatar",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	loginCmd.Flags().String("email", "", "Account email (prompted if empty)")
	loginCmd.Flags().String("password", "", "Password (prompted if empty)")

	registerCmd.Flags().String("email", "", "Account email (prompted if empty)")
	registerCmd.Flags().String("username", "", "Username (prompted if empty)")
	registerCmd.Flags().String("password", "", "Password (prompted if empty)")

	profileUpdateCmd.Flags().String("username", "", "New username")
	profileUpdateCmd.Flags().String("display-name", "", "New display name")
	profileUpdateCmd.Flags().String("bio", "", "New bio")
	profileUpdateCmd.Flags().String("avatar", "", "New avatar URL")
}

// flagOrPrompt returns the flag value, prompting for it when empty.
func flagOrPrompt(cmd *cobra.Command, p *prompter, name, label string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v != "" {
		return v, nil
	}
	return p.required(label)
}

func runLogin(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	email, err := flagOrPrompt(cmd, p, "email", "Email")
	if err != nil {
		return err
	}
	password, err := flagOrPrompt(cmd, p, "password", "Password")
	if err != nil {
		return err
	}

	return withSession(cmd, func(s *app.Session) error {
		user, err := s.Profile.Login(cmd.Context(), api.Credentials{Email: email, Password: password})
		if err != nil {
			return errReported
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), user)
		}
		return nil
	})
}

func runRegister(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	var reg api.Registration
	var err error
	if reg.Email, err = flagOrPrompt(cmd, p, "email", "Email"); err != nil {
		return err
	}
	if reg.Username, err = flagOrPrompt(cmd, p, "username", "Username"); err != nil {
		return err
	}
	if reg.Password, err = flagOrPrompt(cmd, p, "password", "Password"); err != nil {
		return err
	}

	return withSession(cmd, func(s *app.Session) error {
		user, err := s.Profile.Register(cmd.Context(), reg)
		if err != nil {
			return errReported
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), user)
		}
		return nil
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		_, err := check(s.Profile.Logout())
		return err
	})
}

func runWhoami(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Profile.LoadCurrentUser(ctx)); err != nil {
			return err
		}
		if _, err := check(s.Library.Load(ctx)); err != nil {
			return err
		}
		prof, _ := s.Profile.Profile()

		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, prof)
		}
		u := prof.User
		fmt.Fprintf(w, "%s <%s>\n", u.Username, u.Email)
		if u.DisplayName != "" {
			fmt.Fprintf(w, "  Name:      %s\n", u.DisplayName)
		}
		if u.Bio != "" {
			fmt.Fprintf(w, "  Bio:       %s\n", u.Bio)
		}
		fmt.Fprintf(w, "  Joined:    %s\n", formatDate(u.CreatedAt))
		fmt.Fprintf(w, "  Favorites: %d\n", prof.Stats.TotalFavorites)
		fmt.Fprintf(w, "  Watched:   %d", prof.Stats.TotalWatched)
		if prof.Stats.RatedCount > 0 {
			fmt.Fprintf(w, " (%d rated, avg %.1f)", prof.Stats.RatedCount, prof.Stats.AverageRating)
		}
		fmt.Fprintln(w)
		return nil
	})
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	var update api.ProfileUpdate
	update.Username, _ = cmd.Flags().GetString("username")
	update.DisplayName, _ = cmd.Flags().GetString("display-name")
	update.Bio, _ = cmd.Flags().GetString("bio")
	update.AvatarURL, _ = cmd.Flags().GetString("avatar")
	if update == (api.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one of --username, --display-name, --bio, --avatar")
	}

	return withSession(cmd, func(s *app.Session) error {
		user, err := s.Profile.UpdateUser(cmd.Context(), update)
		if err != nil {
			return errReported
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), user)
		}
		return nil
	})
}
