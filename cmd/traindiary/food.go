package traindiary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/track"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var (
	foodName     string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFat      float64
	foodServing  string
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			foods, err := env.Client.ListFoods(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL/100G\tPROTEIN\tCARBS\tFAT\tSERVING")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					f.FoodID, f.Name, f.CaloriesPerServing, f.ProteinPerServing, f.CarbsPerServing, f.FatPerServing, f.ServingType)
			}
			return nil
		})
	},
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			resp, err := env.Client.CreateFood(cmd.Context(), model.Food{
				Name:               foodName,
				CaloriesPerServing: foodCalories,
				ProteinPerServing:  foodProtein,
				CarbsPerServing:    foodCarbs,
				FatPerServing:      foodFat,
				ServingType:        foodServing,
			})
			if err != nil {
				return err
			}
			if resp.FoodID == 0 {
				return fmt.Errorf("add food: %s", resp.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d\n", resp.FoodID)
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <food-id>",
	Short: "Update a catalog food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			_, err := env.Client.UpdateFood(cmd.Context(), model.Food{
				FoodID:             id,
				Name:               foodName,
				CaloriesPerServing: foodCalories,
				ProteinPerServing:  foodProtein,
				CarbsPerServing:    foodCarbs,
				FatPerServing:      foodFat,
				ServingType:        foodServing,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %d\n", id)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <food-id>",
	Short: "Delete a catalog food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			if _, err := env.Client.DeleteFood(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %d\n", id)
			return nil
		})
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and review meals",
}

var (
	mealDate  string
	mealType  string
	mealFoods []string
)

var mealLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a meal",
	Long:  "Log a meal with one or more foods, each given as <food-id>:<grams>.",
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := parseMealFoods(mealFoods)
		if err != nil {
			return err
		}
		date := mealDate
		if strings.TrimSpace(date) == "" {
			date = todayDate()
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			meals := track.NewMeals(env.Client, env.Bus, user.UserID)
			id, err := meals.Log(cmd.Context(), date, mealType, foods)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %d for %s\n", mealType, id, date)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			meals := track.NewMeals(env.Client, env.Bus, user.UserID)
			if err := meals.Fetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tKCAL\tPROTEIN\tCARBS\tFAT")
			for _, m := range meals.Items() {
				n := track.MealNutrition(m.Foods)
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n",
					m.MealID, m.LogDate, m.MealType, n.Calories, n.Protein, n.Carbs, n.Fat)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			meals := track.NewMeals(env.Client, env.Bus, user.UserID)
			if err := meals.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", id)
			return nil
		})
	},
}

var mealTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's nutrition totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			user, err := env.requireUser()
			if err != nil {
				return err
			}
			meals := track.NewMeals(env.Client, env.Bus, user.UserID)
			if err := meals.Fetch(cmd.Context()); err != nil {
				return err
			}
			t := meals.DailyTotals(todayDate())
			fmt.Fprintf(cmd.OutOrStdout(), "Calories:\t%.0f kcal\n", t.Calories)
			fmt.Fprintf(cmd.OutOrStdout(), "Protein:\t%.1f g\n", t.Protein)
			fmt.Fprintf(cmd.OutOrStdout(), "Carbs:\t%.1f g\n", t.Carbs)
			fmt.Fprintf(cmd.OutOrStdout(), "Fat:\t%.1f g\n", t.Fat)
			return nil
		})
	},
}

func parseMealFoods(specs []string) ([]api.MealFoodAmount, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --food <food-id>:<grams> is required")
	}
	out := make([]api.MealFoodAmount, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --food %q (expected <food-id>:<grams>)", spec)
		}
		id, err := parseInt64Arg("food id", parts[0])
		if err != nil {
			return nil, err
		}
		grams, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || grams < 0 {
			return nil, fmt.Errorf("invalid grams in --food %q", spec)
		}
		out = append(out, api.MealFoodAmount{FoodID: id, AmountGrams: grams})
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(foodCmd, mealCmd)
	foodCmd.AddCommand(foodListCmd, foodAddCmd, foodUpdateCmd, foodDeleteCmd)
	mealCmd.AddCommand(mealLogCmd, mealListCmd, mealDeleteCmd, mealTodayCmd)

	for _, c := range []*cobra.Command{foodAddCmd, foodUpdateCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per 100g serving")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per 100g serving")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carb grams per 100g serving")
		c.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams per 100g serving")
		c.Flags().StringVar(&foodServing, "serving", "100g", "Serving type")
		_ = c.MarkFlagRequired("name")
	}

	mealLogCmd.Flags().StringVar(&mealDate, "date", "", "Log date YYYY-MM-DD (default today)")
	mealLogCmd.Flags().StringVar(&mealType, "type", "breakfast", "Meal type: breakfast, lunch, dinner or snack")
	mealLogCmd.Flags().StringArrayVar(&mealFoods, "food", nil, "Food as <food-id>:<grams> (repeatable)")
}
