package traindiary

import (
	"encoding/json"
	"fmt"

	"github.com/Hirosolo/train-diary-cli/internal/db"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check local state and backend reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			issues := 0

			token, hasToken, err := db.GetValue(env.DB, db.StateToken)
			if err != nil {
				return err
			}
			rawUser, hasUser, err := db.GetValue(env.DB, db.StateUser)
			if err != nil {
				return err
			}
			switch {
			case hasToken != hasUser:
				fmt.Fprintln(cmd.OutOrStdout(), "Stored session: INCONSISTENT (token and user must be stored together)")
				issues++
			case hasToken && token == "":
				fmt.Fprintln(cmd.OutOrStdout(), "Stored session: INVALID (empty token)")
				issues++
			case hasUser:
				var user model.User
				if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.UserID <= 0 || user.Email == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Stored session: CORRUPT (user record is not valid)")
					issues++
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Stored session: ok (%s)\n", user.Email)
				}
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Stored session: none")
			}

			if _, err := env.Client.ListExercises(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Backend %s: UNREACHABLE (%v)\n", env.Client.BaseURL, err)
				issues++
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Backend %s: ok\n", env.Client.BaseURL)
			}

			if issues > 0 {
				return fmt.Errorf("doctor found %d issue(s)", issues)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
