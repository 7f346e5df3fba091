package traindiary

import (
	"fmt"

	"github.com/Hirosolo/train-diary-cli/internal/track"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Browse and apply workout plans",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workout plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			plans := track.NewPlans(env.Client, env.Bus, user.UserID)
			if err := plans.Fetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tDAYS/WEEK\tDESCRIPTION")
			for _, p := range plans.Items() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%s\n", p.PlanID, p.Name, p.DaysPerWeek, p.Description)
			}
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show a plan's days and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			plans := track.NewPlans(env.Client, env.Bus, user.UserID)
			details, err := plans.Details(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s — %s\n", details.Name, details.Description)
			for _, day := range details.Days {
				fmt.Fprintf(cmd.OutOrStdout(), "\nDay %d (%s)\n", day.DayNumber, day.Type)
				for _, ex := range day.Exercises {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s — %d x %d\n", ex.Name, ex.PlannedSets, ex.PlannedReps)
				}
			}
			return nil
		})
	},
}

var planStartDate string

var planApplyCmd = &cobra.Command{
	Use:   "apply <plan-id>",
	Short: "Apply a plan, scheduling its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			plans := track.NewPlans(env.Client, env.Bus, user.UserID)
			if err := plans.Apply(cmd.Context(), id, planStartDate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied plan %d starting %s\n", id, planStartDate)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planListCmd, planShowCmd, planApplyCmd)

	planApplyCmd.Flags().StringVar(&planStartDate, "start", "", "Start date YYYY-MM-DD")
	_ = planApplyCmd.MarkFlagRequired("start")
}
