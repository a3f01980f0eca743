package coach

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRecentWorkouts caps the workouts listed in the training section.
const MaxRecentWorkouts = 5

const persona = `You are a personal fitness and nutrition coach inside a mobile fitness app.
Always reply in the same language the user writes in.
Be concise, practical and supportive. Give safe advice about workouts, nutrition, hydration and recovery.
Do not invent facts. The user's data below is current: use it and never ask again for anything it already contains.`

const noContextNote = `No personal data was shared with this question. If the answer depends on the user's goal, weight, age or activity, ask them for the missing details.`

// BuildSystemPrompt renders the system instruction for a coaching request.
// Sections are omitted when the matching part of ctx is nil.
func BuildSystemPrompt(ctx *UserContext) string {
	var b strings.Builder
	b.WriteString(persona)

	if ctx == nil {
		b.WriteString("\n\n")
		b.WriteString(noContextNote)
		return b.String()
	}

	if p := ctx.Profile; p != nil {
		section(&b, "PROFILE")
		line(&b, "Name: %s", p.Name)
		line(&b, "Age: %d", round(p.Age))
		line(&b, "Gender: %s", p.Gender)
		line(&b, "Weight: %s kg", formatFloat(p.Weight))
		line(&b, "Height: %s cm", formatFloat(p.Height))
		line(&b, "Activity level: %s", p.ActivityLevel.Describe())
		line(&b, "Goal: %s", p.Goal.Describe())
	}

	if n := ctx.Nutrition; n != nil {
		section(&b, "TODAY'S NUTRITION")
		line(&b, "Calories: %d / %d kcal (remaining: %d kcal)",
			round(n.TodayCalories), round(n.CalorieGoal), round(n.CalorieGoal-n.TodayCalories))
		line(&b, "Protein: %d / %d g", round(n.TodayProtein), round(n.ProteinGoal))
		line(&b, "Carbs: %d / %d g", round(n.TodayCarbs), round(n.CarbsGoal))
		line(&b, "Fats: %d / %d g", round(n.TodayFats), round(n.FatsGoal))
		line(&b, "Meals logged: %d", round(n.MealsLogged))
	}

	if h := ctx.Hydration; h != nil {
		section(&b, "HYDRATION")
		line(&b, "Water: %d/%d glasses", round(h.WaterGlasses), round(h.WaterGoal))
	}

	if a := ctx.Activity; a != nil {
		section(&b, "TODAY'S ACTIVITY")
		line(&b, "Steps: %d / %d", round(a.Steps), round(a.StepsGoal))
		line(&b, "Active minutes: %d", round(a.ActiveMinutes))
		if round(a.HeartRate) == 0 {
			line(&b, "Heart rate: Not tracked")
		} else {
			line(&b, "Heart rate: %d bpm", round(a.HeartRate))
		}
		if a.SleepHours == 0 {
			line(&b, "Sleep: Not tracked")
		} else {
			line(&b, "Sleep: %s hours", formatFloat(a.SleepHours))
		}
	}

	if t := ctx.Training; t != nil {
		section(&b, "TRAINING HISTORY")
		line(&b, "Workouts this month: %d", round(t.TotalWorkoutsThisMonth))
		line(&b, "Active days this month: %d", round(t.ActiveDaysThisMonth))
		if len(t.RecentWorkouts) > 0 {
			line(&b, "Recent workouts:")
			for _, w := range t.RecentWorkouts[:min(len(t.RecentWorkouts), MaxRecentWorkouts)] {
				line(&b, "%s: %s (%s min, %d exercises)", w.Date, w.Name, formatFloat(w.Duration), round(w.ExercisesCompleted))
			}
		}
	}

	return b.String()
}

func section(b *strings.Builder, name string) {
	b.WriteString("\n\n=== ")
	b.WriteString(name)
	b.WriteString(" ===")
}

func line(b *strings.Builder, format string, args ...any) {
	b.WriteString("\n- ")
	fmt.Fprintf(b, format, args...)
}

func round(v float64) int {
	return int(math.Round(v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
