package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonhub/internal/progress"
)

func newSettingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your profile and notification settings",
	}
	c.AddCommand(newSettingsShowCmd(), newSettingsSetCmd())
	return c
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				printSettings(cmd.OutOrStdout(), e.progress.Settings(cmd.Context()))
				return nil
			})
		},
	}
}

func printSettings(w io.Writer, s progress.Settings) {
	orNone := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	fmt.Fprintf(w, "Name:  %s\n", orNone(s.Name))
	fmt.Fprintf(w, "Email: %s\n", orNone(s.Email))
	fmt.Fprintf(w, "Team:  %s\n", orNone(s.Team))
	fmt.Fprintf(w, "Role:  %s\n", s.Role)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notifications")
	fmt.Fprintf(w, "  new-lessons:   %s\n", onOff(s.Notifications.NewLessons))
	fmt.Fprintf(w, "  tool-updates:  %s\n", onOff(s.Notifications.ToolUpdates))
	fmt.Fprintf(w, "  team-activity: %s\n", onOff(s.Notifications.TeamActivity))
	fmt.Fprintf(w, "  weekly-digest: %s\n", onOff(s.Notifications.WeeklyDigest))
}

func newSettingsSetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the flags given are updated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(e *env) error {
				s := e.progress.Settings(cmd.Context())
				flags := cmd.Flags()

				strs := map[string]*string{"name": &s.Name, "email": &s.Email, "team": &s.Team}
				for name, dst := range strs {
					if flags.Changed(name) {
						*dst, _ = flags.GetString(name)
					}
				}
				if flags.Changed("role") {
					role, _ := flags.GetString("role")
					s.Role = progress.Role(role)
				}
				bools := map[string]*bool{
					"notify-new-lessons":   &s.Notifications.NewLessons,
					"notify-tool-updates":  &s.Notifications.ToolUpdates,
					"notify-team-activity": &s.Notifications.TeamActivity,
					"notify-weekly-digest": &s.Notifications.WeeklyDigest,
				}
				for name, dst := range bools {
					if flags.Changed(name) {
						*dst, _ = flags.GetBool(name)
					}
				}

				if err := e.progress.SaveSettings(cmd.Context(), s); err != nil {
					return err
				}
				printSettings(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
	f := c.Flags()
	f.String("name", "", "Display name")
	f.String("email", "", "Email address")
	f.String("team", "", "Team name")
	f.String("role", "", "Role: admin or member")
	f.Bool("notify-new-lessons", true, "Notify about new lessons")
	f.Bool("notify-tool-updates", true, "Notify about tool updates")
	f.Bool("notify-team-activity", false, "Notify about team activity")
	f.Bool("notify-weekly-digest", true, "Send a weekly digest")
	return c
}
