package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"setlog/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Not found").Write(w)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Title string
	}{
		Title: "Setlog",
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	workout, err := ParseWorkoutForm(r.Form)
	if err != nil {
		UnprocessableEntityError("Invalid number in sets, reps or weight").Write(w)
		return
	}

	if err := workout.Validate(); err != nil {
		if errors.Is(err, core.ErrEmptyExercise) {
			// A blank name is rejected without error text: the 422 and
			// the refocus trigger are the whole signal, and the typed
			// values stay in the form.
			NewHTMXResponse().
				Status(http.StatusUnprocessableEntity).
				TriggerFormRefocus("exercise").
				Write(w)
			return
		}
		UnprocessableEntityError(validationMessage(err)).Write(w)
		return
	}

	id, err := s.store.Append(r.Context(), workout)
	if err != nil {
		slog.ErrorContext(r.Context(), "Workout append error", "error", err, "exercise", workout.Exercise)
		InternalServerError("Could not save the workout").Write(w)
		return
	}

	s.invalidateWorkouts()

	NewHTMXResponse().
		TriggerWorkoutLogged(id).
		TriggerFormReset().
		BodyHTML(`<div class="success">Logged ` +
			template.HTMLEscapeString(workout.Exercise) +
			` ` + formatSetsReps(workout.Sets, workout.Reps) +
			` @ ` + formatWeight(workout.WeightKg) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}

	id, ok := ParseIDFromPath(r.URL.Path, "/workouts/", "/delete")
	if !ok {
		BadRequestError("Invalid workout id").Write(w)
		return
	}

	removed, err := s.store.Remove(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Workout delete error", "error", err, "id", id)
		InternalServerError("Could not delete the workout").Write(w)
		return
	}

	// Deleting an unknown entry is a no-op, not an error: the row may
	// already be gone in another tab.
	resp := NewHTMXResponse()
	if removed {
		s.invalidateWorkouts()
		resp.TriggerWorkoutDeleted(id)
	}
	resp.Write(w)
}

// handleWorkoutGroups renders the grouped workout list partial.
func (s *Server) handleWorkoutGroups(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	items, err := s.listWorkouts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Workout list error", "error", err)
		_, _ = w.Write([]byte(`<section id="workout-groups" class="workout-groups"><div class="placeholder">Could not load workouts</div></section>`))
		return
	}

	groups := core.GroupByDay(items, time.Now())

	type itemView struct {
		ID       int64
		Exercise string
		SetsReps string
		Weight   string
	}
	type groupView struct {
		Label string
		Items []itemView
	}
	data := struct {
		Groups []groupView
		Empty  bool
	}{Empty: len(items) == 0}

	for _, g := range groups {
		gv := groupView{Label: g.Label}
		for _, workout := range g.Workouts {
			gv.Items = append(gv.Items, itemView{
				ID:       workout.ID,
				Exercise: workout.Exercise,
				SetsReps: formatSetsReps(workout.Sets, workout.Reps),
				Weight:   formatWeight(workout.WeightKg),
			})
		}
		data.Groups = append(data.Groups, gv)
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="workout-groups" class="workout-groups"><div class="placeholder">No template available</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "workout_groups.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "workout_groups.html")
		_, _ = w.Write([]byte(`<section id="workout-groups" class="workout-groups"><div class="placeholder">Could not render workouts</div></section>`))
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyExercise):
		return "Exercise name is required"
	case errors.Is(err, core.ErrExerciseTooLong):
		return "Exercise name is too long"
	case errors.Is(err, core.ErrNegativeCount):
		return "Sets and reps cannot be negative"
	case errors.Is(err, core.ErrNegativeWeight):
		return "Weight cannot be negative"
	default:
		return "Invalid workout data"
	}
}
