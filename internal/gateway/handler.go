package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/picarx/gateway/internal/command"
	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/models"
)

// maxBody bounds command request bodies.
const maxBody = 4 << 10

// Handler exposes the gateway over HTTP.
type Handler struct {
	facade *Facade
}

// NewHandler creates a Handler backed by the given Facade.
func NewHandler(facade *Facade) *Handler {
	return &Handler{facade: facade}
}

// Routes registers every gateway endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/v1/commands", h.ListCommands)
	r.Post("/api/v1/commands/{role}", h.PostCommand)

	// Field names used by the dashboard pages.
	r.Post("/api/control", h.DashboardCommand(models.RoleDrive, "direction"))
	r.Post("/api/steering", h.DashboardCommand(models.RoleSteering, "direction"))
	r.Post("/api/camera", h.DashboardCommand(models.RoleCamera, "command"))
	r.Post("/api/line-tracking", h.DashboardCommand(models.RoleLineTracking, "cmd"))
	r.Post("/api/obstacle-avoidance", h.DashboardCommand(models.RoleObstacleAvoidance, "cmd"))
	r.Post("/api/tts", h.DashboardCommand(models.RoleTextToSpeech, "text"))

	r.Get("/api/live", h.Live)
	r.Get("/api/v1/readings", h.Readings)
	r.Get("/api/v1/charts", h.Charts)
	r.Get("/api/v1/charts/ultrasonic", h.UltrasonicChart)
	r.Get("/api/v1/charts/grayscale", h.GrayscaleChart)
}

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

// RoleIntents describes what one command role accepts.
type RoleIntents struct {
	Role     models.Role `json:"role" swaggertype:"string" example:"drive"`
	Intents  []string    `json:"intents,omitempty" example:"backward,forward,stop"`
	FreeText bool        `json:"free_text,omitempty"`
}

// CommandsResponse is the response for GET /api/v1/commands.
type CommandsResponse struct {
	Roles []RoleIntents `json:"roles"`
}

// CommandRequest is the body of POST /api/v1/commands/{role}.
type CommandRequest struct {
	Intent string `json:"intent" example:"forward"`
}

type errorResponse struct {
	Status string      `json:"status" example:"error"`
	Error  string      `json:"error" example:"reading store unavailable"`
	Code   errors.Code `json:"code" swaggertype:"string" example:"store_unavailable"`
}

// ---------------------------------------------------------------------------
// GET /api/v1/commands
// ---------------------------------------------------------------------------

// ListCommands godoc
//
//	@Summary		List command roles
//	@Description	Returns every command role with its legal intents. Free-text roles accept any non-blank text.
//	@Tags			commands
//	@Produce		json
//	@Success		200	{object}	CommandsResponse
//	@Router			/api/v1/commands [get]
func (h *Handler) ListCommands(w http.ResponseWriter, _ *http.Request) {
	roles := command.Roles()
	out := make([]RoleIntents, len(roles))
	for i, role := range roles {
		intents := command.Intents(role)
		out[i] = RoleIntents{Role: role, Intents: intents, FreeText: intents == nil}
	}
	WriteJSON(w, http.StatusOK, CommandsResponse{Roles: out})
}

// ---------------------------------------------------------------------------
// POST /api/v1/commands/{role}
// ---------------------------------------------------------------------------

// PostCommand godoc
//
//	@Summary		Send a command
//	@Description	Validates the intent against the role's allowed set and publishes it to the role's feed.
//	@Tags			commands
//	@Accept			json
//	@Produce		json
//	@Param			role	path		string			true	"Command role"	Enums(drive, steering, camera, line-tracking, obstacle-avoidance, text-to-speech)
//	@Param			body	body		CommandRequest	true	"Intent"
//	@Success		200		{object}	CommandResult
//	@Failure		400		{object}	CommandResult
//	@Failure		502		{object}	CommandResult
//	@Failure		503		{object}	CommandResult
//	@Router			/api/v1/commands/{role} [post]
func (h *Handler) PostCommand(w http.ResponseWriter, r *http.Request) {
	role := models.Role(chi.URLParam(r, "role"))
	h.command(w, r, role, "intent")
}

// DashboardCommand returns a handler that reads the intent from field, in
// a JSON body or a form, and sends it for role.
//
//	@Summary		Send a dashboard command
//	@Description	Dashboard form endpoints. /api/control and /api/steering read "direction", /api/camera reads "command", /api/line-tracking and /api/obstacle-avoidance read "cmd", /api/tts reads "text".
//	@Tags			commands
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Success		200	{object}	CommandResult
//	@Failure		400	{object}	CommandResult
//	@Failure		502	{object}	CommandResult
//	@Failure		503	{object}	CommandResult
//	@Router			/api/control [post]
//	@Router			/api/steering [post]
//	@Router			/api/camera [post]
//	@Router			/api/line-tracking [post]
//	@Router			/api/obstacle-avoidance [post]
//	@Router			/api/tts [post]
func (h *Handler) DashboardCommand(role models.Role, field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.command(w, r, role, field)
	}
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request, role models.Role, field string) {
	intent, err := readField(w, r, field)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, CommandResult{
			Status: "error",
			Error:  err.Error(),
			Code:   errors.ErrInvalidArgument,
		})
		return
	}

	res := h.facade.Command(r.Context(), role, intent)
	if !res.OK() {
		WriteJSON(w, StatusFor(res.Code), res)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// readField returns a string field from a JSON object body or, for any
// other content type, from the form. A missing or non-string JSON field
// reads as empty.
func readField(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("invalid form body: %w", err)
		}
		return r.PostFormValue(field), nil
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}
	s, _ := body[field].(string)
	return s, nil
}

// ---------------------------------------------------------------------------
// GET /api/live
// ---------------------------------------------------------------------------

// Live godoc
//
//	@Summary		Live telemetry
//	@Description	Latest ultrasonic and grayscale-mid feed values on one label axis, the last spoken text and today's grayscale history.
//	@Description	Sources that could not be read are listed in "unavailable"; the request fails only when every source fails.
//	@Tags			telemetry
//	@Produce		json
//	@Success		200	{object}	Snapshot
//	@Failure		502	{object}	errorResponse
//	@Router			/api/live [get]
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	snap, err := h.facade.Telemetry(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

// ---------------------------------------------------------------------------
// GET /api/v1/readings
// ---------------------------------------------------------------------------

// Readings godoc
//
//	@Summary		Readings of one day
//	@Description	Up to 200 sensor readings of the given UTC date, most recent first. A missing or invalid date means today.
//	@Tags			history
//	@Produce		json
//	@Param			date	query		string	false	"Date (YYYY-MM-DD)"	example(2025-06-01)
//	@Success		200		{object}	history.Table
//	@Failure		502		{object}	errorResponse
//	@Router			/api/v1/readings [get]
func (h *Handler) Readings(w http.ResponseWriter, r *http.Request) {
	table, err := h.facade.Table(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, table)
}

// ---------------------------------------------------------------------------
// GET /api/v1/charts...
// ---------------------------------------------------------------------------

// Charts godoc
//
//	@Summary		Sensor chart
//	@Description	One sensor gives its readings in time order; several sensors are aligned on a shared label axis with null where a sensor has no reading.
//	@Tags			history
//	@Produce		json
//	@Param			date	query		string		false	"Date (YYYY-MM-DD)"	example(2025-06-01)
//	@Param			sensor	query		[]string	true	"Sensor names"		collectionFormat(multi)
//	@Success		200		{object}	history.Chart
//	@Failure		400		{object}	errorResponse
//	@Failure		502		{object}	errorResponse
//	@Router			/api/v1/charts [get]
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, sensors := q.Get("date"), q["sensor"]

	var (
		chart any
		err   *errors.Error
	)
	if len(sensors) == 1 {
		chart, err = h.facade.Chart(r.Context(), date, sensors[0])
	} else {
		chart, err = h.facade.Aligned(r.Context(), date, sensors)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, chart)
}

// UltrasonicChart godoc
//
//	@Summary		Ultrasonic distance chart
//	@Tags			history
//	@Produce		json
//	@Param			date	query		string	false	"Date (YYYY-MM-DD)"	example(2025-06-01)
//	@Success		200		{object}	history.Chart
//	@Failure		502		{object}	errorResponse
//	@Router			/api/v1/charts/ultrasonic [get]
func (h *Handler) UltrasonicChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.facade.Ultrasonic(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, chart)
}

// GrayscaleChart godoc
//
//	@Summary		Grayscale chart
//	@Description	Left, mid and right grayscale sensors aligned by second.
//	@Tags			history
//	@Produce		json
//	@Param			date	query		string	false	"Date (YYYY-MM-DD)"	example(2025-06-01)
//	@Success		200		{object}	history.Chart
//	@Failure		502		{object}	errorResponse
//	@Router			/api/v1/charts/grayscale [get]
func (h *Handler) GrayscaleChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.facade.Grayscale(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, chart)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// StatusFor maps an error code to its HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrInvalidCommand, errors.ErrEmptyInput, errors.ErrInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrMisconfiguredCredentials:
		return http.StatusServiceUnavailable
	case errors.ErrRemoteUnavailable, errors.ErrStoreUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err *errors.Error) {
	status := StatusFor(err.Code)
	if status >= 500 {
		slog.Error("request failed", "code", err.Code, "error", err)
	}
	WriteJSON(w, status, errorResponse{Status: "error", Error: err.Error(), Code: err.Code})
}
