package health

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var ErrInvalidValue = errors.New("invalid value")

// Handler exposes the Store over HTTP.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleGet обрабатывает GET /health
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Metrics: h.store.Get(),
		Message: "Health metrics retrieved",
	})
}

// HandleUpdate обрабатывает POST /health
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	req, err := body.toUpdate()
	if err != nil {
		h.handleError(w, err)
		return
	}

	metrics := h.store.Update(req)
	recordUpdate(req)

	zerolog.Ctx(r.Context()).Debug().
		Int("steps", metrics.Steps).
		Int("heart_rate", metrics.HeartRate).
		Float64("sleep_hours", metrics.SleepHours).
		Msg("health metrics updated")

	writeJSON(w, http.StatusOK, Response{
		Metrics: metrics,
		Message: "Health metrics updated",
	})
}

// HandleSetSteps обрабатывает PUT /health/steps?steps=N
func (h *Handler) HandleSetSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := intParam(r, "steps")
	if err != nil {
		h.handleError(w, err)
		return
	}
	metrics := h.store.SetSteps(steps)
	recordField("steps")
	writeJSON(w, http.StatusOK, Response{
		Metrics: metrics,
		Message: fmt.Sprintf("Steps updated to %d", metrics.Steps),
	})
}

// HandleSetHeartRate обрабатывает PUT /health/heart-rate?bpm=N
func (h *Handler) HandleSetHeartRate(w http.ResponseWriter, r *http.Request) {
	bpm, err := intParam(r, "bpm")
	if err != nil {
		h.handleError(w, err)
		return
	}
	metrics := h.store.SetHeartRate(bpm)
	recordField("heartRate")
	writeJSON(w, http.StatusOK, Response{
		Metrics: metrics,
		Message: fmt.Sprintf("Heart rate updated to %d bpm", metrics.HeartRate),
	})
}

// HandleSetSleep обрабатывает PUT /health/sleep?hours=N
func (h *Handler) HandleSetSleep(w http.ResponseWriter, r *http.Request) {
	hours, err := floatParam(r, "hours")
	if err != nil {
		h.handleError(w, err)
		return
	}
	metrics := h.store.SetSleep(hours)
	recordField("sleepHours")
	writeJSON(w, http.StatusOK, Response{
		Metrics: metrics,
		Message: fmt.Sprintf("Sleep updated to %s hours", strconv.FormatFloat(metrics.SleepHours, 'f', -1, 64)),
	})
}

// HandleSetActiveMinutes обрабатывает PUT /health/active-minutes?minutes=N
func (h *Handler) HandleSetActiveMinutes(w http.ResponseWriter, r *http.Request) {
	minutes, err := intParam(r, "minutes")
	if err != nil {
		h.handleError(w, err)
		return
	}
	metrics := h.store.SetActiveMinutes(minutes)
	recordField("activeMinutes")
	writeJSON(w, http.StatusOK, Response{
		Metrics: metrics,
		Message: fmt.Sprintf("Active minutes updated to %d", metrics.ActiveMinutes),
	})
}

// HandleReset обрабатывает DELETE /health
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Metrics: h.store.Reset(),
		Message: "Health metrics reset",
	})
}

// HandleReport обрабатывает GET /health/report?format=pdf|csv
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	format := Format(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		format = FormatPDF
	}

	data, err := RenderReport(h.store.Get(), format)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "health-report."+string(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidValue), errors.Is(err, ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// rawParam reads name from the query string, falling back to a JSON body field.
func rawParam(r *http.Request, name string) (string, error) {
	if raw := strings.TrimSpace(r.URL.Query().Get(name)); raw != "" {
		return raw, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s is required", ErrInvalidValue, name)
		}
		return "", fmt.Errorf("%w: invalid JSON body", ErrInvalidValue)
	}
	num, ok := body[name].(json.Number)
	if !ok {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidValue, name)
	}
	return num.String(), nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw, err := rawParam(r, name)
	if err != nil {
		return 0, err
	}
	return parseInt(name, raw)
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw, err := rawParam(r, name)
	if err != nil {
		return 0, err
	}
	return parseFloat(name, raw)
}

// parseInt accepts any integral number, including exponent forms like 1e4.
// Values outside the int range saturate so the store can clamp them.
func parseInt(name, raw string) (int, error) {
	v, err := strconv.ParseInt(raw, 10, 0)
	if err == nil {
		return int(v), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(raw, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}

	f, err := parseFloat(name, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, name)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidValue, name)
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt, nil
	case f <= math.MinInt64:
		return math.MinInt, nil
	default:
		return int(f), nil
	}
}

// parseFloat rejects NaN and Inf literals but lets out-of-range magnitudes
// through as ±Inf, which the store clamps.
func parseFloat(name, raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	switch {
	case err == nil && (math.IsNaN(f) || math.IsInf(f, 0)):
		return 0, fmt.Errorf("%w: %s must be a finite number", ErrInvalidValue, name)
	case err == nil, errors.Is(err, strconv.ErrRange):
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidValue, name)
	}
}

// updateRequest is the POST /health body. Numbers are kept as text so values
// of any magnitude reach the clamps instead of failing to decode.
type updateRequest struct {
	Steps         *json.Number `json:"steps"`
	StepsGoal     *json.Number `json:"stepsGoal"`
	HeartRate     *json.Number `json:"heartRate"`
	SleepHours    *json.Number `json:"sleepHours"`
	ActiveMinutes *json.Number `json:"activeMinutes"`
}

func (req updateRequest) toUpdate() (Update, error) {
	var u Update
	ints := []struct {
		name string
		in   *json.Number
		out  **int
	}{
		{"steps", req.Steps, &u.Steps},
		{"stepsGoal", req.StepsGoal, &u.StepsGoal},
		{"heartRate", req.HeartRate, &u.HeartRate},
		{"activeMinutes", req.ActiveMinutes, &u.ActiveMinutes},
	}
	for _, f := range ints {
		if f.in == nil {
			continue
		}
		v, err := parseInt(f.name, f.in.String())
		if err != nil {
			return Update{}, err
		}
		*f.out = &v
	}

	if req.SleepHours != nil {
		v, err := parseFloat("sleepHours", req.SleepHours.String())
		if err != nil {
			return Update{}, err
		}
		u.SleepHours = &v
	}
	return u, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
