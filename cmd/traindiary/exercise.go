package traindiary

import (
	"fmt"

	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercise catalog",
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			exercises, err := env.Client.ListExercises(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tDEFAULT\tDESCRIPTION")
			for _, ex := range exercises {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%dx%d\t%s\n",
					ex.ExerciseID, ex.Name, ex.Category, ex.DefaultSets, ex.DefaultReps, ex.Description)
			}
			return nil
		})
	},
}

var (
	exName        string
	exCategory    string
	exSets        int
	exReps        int
	exDescription string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			resp, err := env.Client.CreateExercise(cmd.Context(), model.Exercise{
				Name:        exName,
				Category:    exCategory,
				DefaultSets: exSets,
				DefaultReps: exReps,
				Description: exDescription,
			})
			if err != nil {
				return err
			}
			if resp.ExerciseID == 0 {
				return fmt.Errorf("add exercise: %s", resp.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise %d\n", resp.ExerciseID)
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <exercise-id>",
	Short: "Delete a catalog exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			if _, err := env.Client.DeleteExercise(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseListCmd, exerciseAddCmd, exerciseDeleteCmd)

	exerciseAddCmd.Flags().StringVar(&exName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().StringVar(&exCategory, "category", "", "Category (chest, back, legs, ...)")
	exerciseAddCmd.Flags().IntVar(&exSets, "default-sets", 0, "Default planned sets")
	exerciseAddCmd.Flags().IntVar(&exReps, "default-reps", 0, "Default planned reps")
	exerciseAddCmd.Flags().StringVar(&exDescription, "description", "", "Optional description")
	_ = exerciseAddCmd.MarkFlagRequired("name")
}
