package model

type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Exercise struct {
	ExerciseID  int64  `json:"exercise_id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	DefaultSets int    `json:"default_sets,omitempty"`
	DefaultReps int    `json:"default_reps,omitempty"`
	Description string `json:"description,omitempty"`
}

type WorkoutSession struct {
	SessionID     int64  `json:"session_id"`
	ScheduledDate string `json:"scheduled_date"`
	Completed     bool   `json:"completed"`
	Notes         string `json:"notes"`
	Type          string `json:"type,omitempty"`
	Position      int    `json:"position,omitempty"`
}

type SessionDetail struct {
	SessionDetailID int64  `json:"session_detail_id"`
	ExerciseID      int64  `json:"exercise_id"`
	PlannedSets     int    `json:"planned_sets"`
	PlannedReps     int    `json:"planned_reps"`
	Name            string `json:"name"`
	Category        string `json:"category,omitempty"`
	Description     string `json:"description,omitempty"`
}

type SessionLog struct {
	LogID           int64   `json:"log_id"`
	SessionDetailID int64   `json:"session_detail_id"`
	ActualSets      int     `json:"actual_sets"`
	ActualReps      int     `json:"actual_reps"`
	WeightKg        float64 `json:"weight_kg"`
	DurationSeconds int     `json:"duration_seconds"`
	Notes           string  `json:"notes"`
}

type Food struct {
	FoodID             int64   `json:"food_id"`
	Name               string  `json:"name"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatPerServing      float64 `json:"fat_per_serving"`
	ServingType        string  `json:"serving_type"`
}

// MealFood is one logged food inside a meal. Nutrition values are per
// 100g serving; actual intake is scaled by AmountGrams.
type MealFood struct {
	FoodID             int64   `json:"food_id"`
	Name               string  `json:"name"`
	AmountGrams        float64 `json:"amount_grams"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatPerServing      float64 `json:"fat_per_serving"`
}

type Meal struct {
	MealID   int64      `json:"meal_id"`
	LogDate  string     `json:"log_date"`
	MealType string     `json:"meal_type"`
	Foods    []MealFood `json:"foods,omitempty"`
}

type Plan struct {
	PlanID      int64  `json:"plan_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DaysPerWeek int    `json:"days_per_week,omitempty"`
}

type PlanDayExercise struct {
	ExerciseID  int64  `json:"exercise_id"`
	Name        string `json:"name"`
	PlannedSets int    `json:"planned_sets"`
	PlannedReps int    `json:"planned_reps"`
}

type PlanDay struct {
	DayNumber int               `json:"day_number"`
	Type      string            `json:"type,omitempty"`
	Exercises []PlanDayExercise `json:"exercises,omitempty"`
}

type PlanDetails struct {
	Plan
	Days []PlanDay `json:"days,omitempty"`
}

type DailyData struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Workouts int     `json:"workouts"`
	GrScore  float64 `json:"gr_score"`
}

// Summary is the backend-generated read model for one period. The client
// never computes it locally; it is always the result of a generate-then-fetch
// round trip keyed by (user, period type, period start).
type Summary struct {
	TotalWorkouts        int         `json:"total_workouts"`
	TotalCaloriesIntake  float64     `json:"total_calories_intake"`
	AvgProtein           float64     `json:"avg_protein"`
	AvgCarbs             float64     `json:"avg_carbs"`
	AvgFat               float64     `json:"avg_fat"`
	TotalDurationMinutes int         `json:"total_duration_minutes"`
	TotalGrScore         float64     `json:"total_gr_score"`
	AvgGrScore           float64     `json:"avg_gr_score"`
	DailyData            []DailyData `json:"dailyData"`
}
