package coach

// Goal is the user's fitness goal.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainWeight Goal = "gain_weight"
	GoalGainMuscle Goal = "gain_muscle"
)

// Describe returns the phrase used in the prompt; unknown values pass through verbatim.
func (g Goal) Describe() string {
	switch g {
	case GoalLoseWeight:
		return "lose weight (calorie deficit)"
	case GoalMaintain:
		return "maintain current weight"
	case GoalGainWeight:
		return "gain weight (calorie surplus)"
	case GoalGainMuscle:
		return "build muscle (strength training with a protein focus)"
	default:
		return string(g)
	}
}

// ActivityLevel is the user's self-reported daily activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Describe returns the phrase used in the prompt; unknown values pass through verbatim.
func (a ActivityLevel) Describe() string {
	switch a {
	case ActivitySedentary:
		return "sedentary (little or no exercise)"
	case ActivityLight:
		return "lightly active (exercise 1-3 days/week)"
	case ActivityModerate:
		return "moderately active (exercise 3-5 days/week)"
	case ActivityActive:
		return "active (exercise 6-7 days/week)"
	case ActivityVeryActive:
		return "very active (hard exercise or a physical job)"
	default:
		return string(a)
	}
}

type UserProfile struct {
	Name          string        `json:"name"`
	Age           float64       `json:"age"`
	Gender        string        `json:"gender"`
	Weight        float64       `json:"weight"` // kg
	Height        float64       `json:"height"` // cm
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

type NutritionData struct {
	CalorieGoal   float64 `json:"calorieGoal"`
	ProteinGoal   float64 `json:"proteinGoal"`
	CarbsGoal     float64 `json:"carbsGoal"`
	FatsGoal      float64 `json:"fatsGoal"`
	TodayCalories float64 `json:"todayCalories"`
	TodayProtein  float64 `json:"todayProtein"`
	TodayCarbs    float64 `json:"todayCarbs"`
	TodayFats     float64 `json:"todayFats"`
	MealsLogged   float64 `json:"mealsLogged"`
}

type HydrationData struct {
	WaterGlasses float64 `json:"waterGlasses"`
	WaterGoal    float64 `json:"waterGoal"`
}

type ActivityData struct {
	Steps         float64 `json:"steps"`
	StepsGoal     float64 `json:"stepsGoal"`
	ActiveMinutes float64 `json:"activeMinutes"`
	HeartRate     float64 `json:"heartRate"`
	SleepHours    float64 `json:"sleepHours"`
}

type RecentWorkout struct {
	Date               string  `json:"date"`
	Name               string  `json:"name"`
	Duration           float64 `json:"duration"` // minutes
	ExercisesCompleted float64 `json:"exercisesCompleted"`
}

type TrainingData struct {
	RecentWorkouts         []RecentWorkout `json:"recentWorkouts"`
	TotalWorkoutsThisMonth float64         `json:"totalWorkoutsThisMonth"`
	ActiveDaysThisMonth    float64         `json:"activeDaysThisMonth"`
}

// UserContext is the per-request personalisation data. Every part is optional.
// Numbers are float64 because clients send plain JSON numbers; counts are
// rounded when the prompt is rendered.
type UserContext struct {
	Profile   *UserProfile   `json:"profile,omitempty"`
	Nutrition *NutritionData `json:"nutrition,omitempty"`
	Hydration *HydrationData `json:"hydration,omitempty"`
	Activity  *ActivityData  `json:"activity,omitempty"`
	Training  *TrainingData  `json:"training,omitempty"`
}
