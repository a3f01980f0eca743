package coach

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var allHeaders = []string{
	"=== PROFILE ===",
	"=== TODAY'S NUTRITION ===",
	"=== HYDRATION ===",
	"=== TODAY'S ACTIVITY ===",
	"=== TRAINING HISTORY ===",
}

func fullContext() *UserContext {
	return &UserContext{
		Profile: &UserProfile{
			Name:          "Anna",
			Age:           29,
			Gender:        "female",
			Weight:        61.5,
			Height:        168,
			ActivityLevel: ActivityModerate,
			Goal:          GoalLoseWeight,
		},
		Nutrition: &NutritionData{
			CalorieGoal:   1800,
			ProteinGoal:   110,
			CarbsGoal:     200,
			FatsGoal:      60,
			TodayCalories: 1234.6,
			TodayProtein:  80.4,
			TodayCarbs:    150.5,
			TodayFats:     40.2,
			MealsLogged:   3,
		},
		Hydration: &HydrationData{WaterGlasses: 5, WaterGoal: 8},
		Activity: &ActivityData{
			Steps:         7400,
			StepsGoal:     10000,
			ActiveMinutes: 35,
			HeartRate:     68,
			SleepHours:    7.5,
		},
		Training: &TrainingData{
			RecentWorkouts: []RecentWorkout{
				{Date: "2024-05-01", Name: "Full body", Duration: 45, ExercisesCompleted: 6},
			},
			TotalWorkoutsThisMonth: 4,
			ActiveDaysThisMonth:    6,
		},
	}
}

func TestBuildSystemPromptWithoutContext(t *testing.T) {
	prompt := BuildSystemPrompt(nil)

	require.Contains(t, prompt, "same language the user writes in")
	require.Contains(t, prompt, noContextNote)
	for _, h := range allHeaders {
		require.NotContains(t, prompt, h)
	}
}

func TestBuildSystemPromptHydrationOnly(t *testing.T) {
	prompt := BuildSystemPrompt(&UserContext{Hydration: &HydrationData{WaterGlasses: 3, WaterGoal: 8}})

	require.Contains(t, prompt, "HYDRATION")
	require.Contains(t, prompt, "3/8 glasses")
	require.NotContains(t, prompt, noContextNote)
	for _, word := range []string{"PROFILE", "NUTRITION", "ACTIVITY", "TRAINING"} {
		require.NotContains(t, prompt, word)
	}
}

func TestBuildSystemPromptSectionOrder(t *testing.T) {
	prompt := BuildSystemPrompt(fullContext())

	last := -1
	for _, h := range allHeaders {
		idx := strings.Index(prompt, h)
		require.Greater(t, idx, last, "header %q out of order", h)
		last = idx
	}
	require.Equal(t, len(allHeaders), strings.Count(prompt, "=== "))
}

func TestBuildSystemPromptNutritionRounding(t *testing.T) {
	prompt := BuildSystemPrompt(fullContext())

	require.Contains(t, prompt, "Calories: 1235 / 1800 kcal (remaining: 565 kcal)")
	require.Contains(t, prompt, "Protein: 80 / 110 g")
	require.Contains(t, prompt, "Carbs: 151 / 200 g")
	require.Contains(t, prompt, "Fats: 40 / 60 g")
}

func TestBuildSystemPromptRemainingCaloriesNotClamped(t *testing.T) {
	prompt := BuildSystemPrompt(&UserContext{Nutrition: &NutritionData{CalorieGoal: 2000, TodayCalories: 2350}})

	require.Contains(t, prompt, "remaining: -350 kcal")
}

func TestBuildSystemPromptEnums(t *testing.T) {
	prompt := BuildSystemPrompt(fullContext())
	require.Contains(t, prompt, "Goal: "+GoalLoseWeight.Describe())
	require.Contains(t, prompt, "Activity level: "+ActivityModerate.Describe())

	ctx := &UserContext{Profile: &UserProfile{Goal: "run_marathon", ActivityLevel: "couch"}}
	prompt = BuildSystemPrompt(ctx)
	require.Contains(t, prompt, "Goal: run_marathon")
	require.Contains(t, prompt, "Activity level: couch")
}

func TestBuildSystemPromptNotTracked(t *testing.T) {
	prompt := BuildSystemPrompt(&UserContext{Activity: &ActivityData{Steps: 100, StepsGoal: 10000}})

	require.Contains(t, prompt, "Heart rate: Not tracked")
	require.Contains(t, prompt, "Sleep: Not tracked")

	prompt = BuildSystemPrompt(fullContext())
	require.Contains(t, prompt, "Heart rate: 68 bpm")
	require.Contains(t, prompt, "Sleep: 7.5 hours")
}

func TestBuildSystemPromptLimitsWorkouts(t *testing.T) {
	var workouts []RecentWorkout
	for i := 1; i <= 8; i++ {
		workouts = append(workouts, RecentWorkout{
			Date:               fmt.Sprintf("2024-05-0%d", i),
			Name:               fmt.Sprintf("Workout %d", i),
			Duration:           30,
			ExercisesCompleted: float64(i),
		})
	}

	prompt := BuildSystemPrompt(&UserContext{Training: &TrainingData{RecentWorkouts: workouts}})

	require.Contains(t, prompt, "2024-05-01: Workout 1 (30 min, 1 exercises)")
	require.Contains(t, prompt, "2024-05-05: Workout 5 (30 min, 5 exercises)")
	require.NotContains(t, prompt, "Workout 6")
	require.NotContains(t, prompt, "Workout 8")
}

func TestGoalDescribeIsExhaustive(t *testing.T) {
	for _, g := range []Goal{GoalLoseWeight, GoalMaintain, GoalGainWeight, GoalGainMuscle} {
		require.NotEqual(t, string(g), g.Describe())
	}
	for _, a := range []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive} {
		require.NotEqual(t, string(a), a.Describe())
	}
}

func TestBuildSystemPromptRoundsFractionalCounts(t *testing.T) {
	prompt := BuildSystemPrompt(&UserContext{
		Hydration: &HydrationData{WaterGlasses: 2.5, WaterGoal: 8},
		Activity:  &ActivityData{Steps: 7400.4, StepsGoal: 10000, ActiveMinutes: 29.6, HeartRate: 71.7},
	})

	require.Contains(t, prompt, "Water: 3/8 glasses")
	require.Contains(t, prompt, "Steps: 7400 / 10000")
	require.Contains(t, prompt, "Active minutes: 30")
	require.Contains(t, prompt, "Heart rate: 72 bpm")
}

func TestUserContextAcceptsFractionalJSON(t *testing.T) {
	var ctx UserContext
	err := json.Unmarshal([]byte(`{
		"profile": {"age": 30.5},
		"hydration": {"waterGlasses": 2.5, "waterGoal": 8},
		"activity": {"steps": 100.5, "heartRate": 0.2},
		"training": {"totalWorkoutsThisMonth": 3.0, "recentWorkouts": [{"exercisesCompleted": 4.5}]}
	}`), &ctx)

	require.NoError(t, err)
	require.Equal(t, 2.5, ctx.Hydration.WaterGlasses)
	require.Contains(t, BuildSystemPrompt(&ctx), "Heart rate: Not tracked")
}
