package health

const (
	MaxHeartRate  = 300
	MaxSleepHours = 24.0

	DefaultStepsGoal = 10000
)

// Metrics is the current health snapshot.
type Metrics struct {
	Steps         int     `json:"steps"`
	StepsGoal     int     `json:"stepsGoal"`
	HeartRate     int     `json:"heartRate"`
	SleepHours    float64 `json:"sleepHours"`
	ActiveMinutes int     `json:"activeMinutes"`
}

// Update is a partial update; nil fields are left untouched.
type Update struct {
	Steps         *int     `json:"steps,omitempty"`
	StepsGoal     *int     `json:"stepsGoal,omitempty"`
	HeartRate     *int     `json:"heartRate,omitempty"`
	SleepHours    *float64 `json:"sleepHours,omitempty"`
	ActiveMinutes *int     `json:"activeMinutes,omitempty"`
}

// Empty reports whether no field is present.
func (u Update) Empty() bool {
	return u.Steps == nil && u.StepsGoal == nil && u.HeartRate == nil &&
		u.SleepHours == nil && u.ActiveMinutes == nil
}

// Response is what every /health endpoint returns.
type Response struct {
	Metrics
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
