package traindiary

import (
	"fmt"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/track"
	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage workout sessions",
}

var (
	workoutDate  string
	workoutType  string
	workoutNotes string
)

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			items := sessions.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workouts scheduled.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "POS\tID\tDATE\tTYPE\tSTATUS\tNOTES")
			for i, s := range items {
				status := "incomplete"
				if s.Completed {
					status = "complete"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%s\t%s\t%s\n", i+1, s.SessionID, s.ScheduledDate, s.Type, status, s.Notes)
			}
			return nil
		})
	},
}

var workoutScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			id, err := sessions.Schedule(cmd.Context(), workoutDate, workoutType, workoutNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled session %d for %s\n", id, workoutDate)
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("session id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", id)
			return nil
		})
	},
}

var workoutReorderCmd = &cobra.Command{
	Use:   "reorder <from-pos> <to-pos>",
	Short: "Move a session to a new position (positions as shown by 'workout list')",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseIntArg("from position", args[0])
		if err != nil {
			return err
		}
		to, err := parseIntArg("to position", args[1])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			if err := sessions.Reorder(cmd.Context(), from-1, to-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved position %d to %d\n", from, to)
			return nil
		})
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's exercises and logged sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("session id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			ws, err := sessions.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			status := "incomplete"
			if ws.Session.Completed {
				status = "complete"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %d — %s (%s, %s)\n", ws.Session.SessionID, ws.Session.ScheduledDate, ws.Session.Type, status)
			if ws.Session.Notes != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Notes: %s\n", ws.Session.Notes)
			}
			if len(ws.Details) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercises added yet.")
				return nil
			}
			for _, d := range ws.Details {
				fmt.Fprintf(cmd.OutOrStdout(), "\n[%d] %s — planned %d x %d\n", d.SessionDetailID, d.Name, d.PlannedSets, d.PlannedReps)
				for _, l := range ws.LogsFor(d.SessionDetailID) {
					note := ""
					if l.Notes != "" {
						note = " (" + l.Notes + ")"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  log %d: %d x %d @ %.1fkg%s\n", l.LogID, l.ActualSets, l.ActualReps, l.WeightKg, note)
				}
			}
			if !ws.Session.Completed {
				if ws.Completable() {
					fmt.Fprintln(cmd.OutOrStdout(), "\nAll exercises logged — complete with 'traindiary workout complete'.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "\nLog at least one set for every exercise to complete this session.")
				}
			}
			return nil
		})
	},
}

var workoutCompleteCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Mark a session completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("session id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			ws, err := sessions.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := sessions.Complete(cmd.Context(), ws); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %d completed\n", id)
			return nil
		})
	},
}

var (
	addExSessionID int64
	addExID        int64
	addExSets      int
	addExReps      int
)

var workoutAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise",
	Short: "Add a planned exercise to a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			if err := sessions.AddExercise(cmd.Context(), addExSessionID, addExID, addExSets, addExReps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise %d to session %d\n", addExID, addExSessionID)
			return nil
		})
	},
}

var (
	logSetSessionID int64
	logSetDetailID  int64
	logSetSets      int
	logSetReps      int
	logSetWeight    float64
	logSetNotes     string
)

var workoutLogSetCmd = &cobra.Command{
	Use:   "log-set",
	Short: "Log a performed set against a planned exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			id, err := sessions.LogSet(cmd.Context(), logSetSessionID, logSetDetailID, logSetSets, logSetReps, logSetWeight, logSetNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged set %d\n", id)
			return nil
		})
	},
}

var workoutDeleteLogCmd = &cobra.Command{
	Use:   "delete-log <log-id>",
	Short: "Delete a logged set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.DeleteLog(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted log %d\n", id)
			return nil
		})
	},
}

var workoutStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			sessions := track.NewSessions(env.Client, env.Bus, user.UserID)
			if err := sessions.Fetch(cmd.Context()); err != nil {
				return err
			}
			stats := track.ComputeStats(sessions.Items(), nil, time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "Total workouts:\t%d\n", stats.TotalCompleted)
			fmt.Fprintf(cmd.OutOrStdout(), "Completed today:\t%v\n", stats.CompletedToday)
			fmt.Fprintf(cmd.OutOrStdout(), "This week:\t%d\n", stats.WeeklyStreak)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutListCmd, workoutScheduleCmd, workoutDeleteCmd, workoutReorderCmd,
		workoutShowCmd, workoutCompleteCmd, workoutAddExerciseCmd, workoutLogSetCmd, workoutDeleteLogCmd, workoutStatsCmd)

	workoutScheduleCmd.Flags().StringVar(&workoutDate, "date", "", "Scheduled date YYYY-MM-DD")
	workoutScheduleCmd.Flags().StringVar(&workoutType, "type", "", "Session type (Push, Pull, Legs, Full Body, ...)")
	workoutScheduleCmd.Flags().StringVar(&workoutNotes, "notes", "", "Optional notes")
	_ = workoutScheduleCmd.MarkFlagRequired("date")
	_ = workoutScheduleCmd.MarkFlagRequired("type")

	workoutAddExerciseCmd.Flags().Int64Var(&addExSessionID, "session", 0, "Session id")
	workoutAddExerciseCmd.Flags().Int64Var(&addExID, "exercise", 0, "Exercise id")
	workoutAddExerciseCmd.Flags().IntVar(&addExSets, "sets", 0, "Planned sets")
	workoutAddExerciseCmd.Flags().IntVar(&addExReps, "reps", 0, "Planned reps")
	_ = workoutAddExerciseCmd.MarkFlagRequired("session")
	_ = workoutAddExerciseCmd.MarkFlagRequired("exercise")
	_ = workoutAddExerciseCmd.MarkFlagRequired("sets")
	_ = workoutAddExerciseCmd.MarkFlagRequired("reps")

	workoutLogSetCmd.Flags().Int64Var(&logSetSessionID, "session", 0, "Session id")
	workoutLogSetCmd.Flags().Int64Var(&logSetDetailID, "detail", 0, "Session detail id (from 'workout show')")
	workoutLogSetCmd.Flags().IntVar(&logSetSets, "sets", 0, "Actual sets")
	workoutLogSetCmd.Flags().IntVar(&logSetReps, "reps", 0, "Actual reps")
	workoutLogSetCmd.Flags().Float64Var(&logSetWeight, "weight-kg", 0, "Weight in kg")
	workoutLogSetCmd.Flags().StringVar(&logSetNotes, "notes", "", "Optional notes")
	_ = workoutLogSetCmd.MarkFlagRequired("session")
	_ = workoutLogSetCmd.MarkFlagRequired("detail")
	_ = workoutLogSetCmd.MarkFlagRequired("sets")
	_ = workoutLogSetCmd.MarkFlagRequired("reps")
}
