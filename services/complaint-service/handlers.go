package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"complaint-portal/pkg/middleware"
	"complaint-portal/pkg/queue"
	"complaint-portal/pkg/response"
	"complaint-portal/services/complaint-service/models"
	"complaint-portal/services/complaint-service/store"
	"complaint-portal/services/complaint-service/utils"
)

const (
	eventQueueName = "complaint_events"
	storeTimeout   = 5 * time.Second
)

type application struct {
	store  store.Store
	events *queue.Publisher // nil when event publishing is disabled
}

func (app *application) rootHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Complaint portal API is running",
	})
}

func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	health := map[string]interface{}{
		"status":  "UP",
		"service": "complaint-service",
	}

	if err := app.store.Ping(ctx); err != nil {
		health["status"] = "DOWN"
		health["store"] = "disconnected"
		response.JSON(w, http.StatusServiceUnavailable, health)
		return
	}

	health["store"] = "connected"
	response.JSON(w, http.StatusOK, health)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", "")
		return
	}

	if !utils.VerifyAdminPassword(input.Password) {
		middleware.LogInfo(middleware.GetTraceID(r), "Failed admin login attempt")
		response.Error(w, http.StatusUnauthorized, "Invalid password", "")
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		middleware.LogError(middleware.GetTraceID(r), "Failed to generate admin token", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}

func (app *application) listComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	complaints, err := app.store.List(ctx)
	if err != nil {
		middleware.LogError(middleware.GetTraceID(r), "Failed to list complaints", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := complaints[:0]
		for _, c := range complaints {
			if c.Status == status {
				filtered = append(filtered, c)
			}
		}
		complaints = filtered
	}

	response.JSON(w, http.StatusOK, complaints)
}

func (app *application) createComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var input createComplaintInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", "")
		return
	}

	if fields := validateCreate(&input); len(fields) > 0 {
		response.Invalid(w, fields)
		return
	}

	now := time.Now().UTC()
	complaint := models.Complaint{
		ID:          models.NewComplaintID(),
		Name:        input.Name,
		IssueType:   input.IssueType,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Status:      models.StatusPending,
		Upvotes:     0,
		Upvoters:    []string{},
		PhotoData:   input.PhotoData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := app.store.Append(ctx, &complaint); err != nil {
		middleware.LogError(middleware.GetTraceID(r), "Failed to save complaint", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	app.publishEvent(middleware.GetTraceID(r), models.ComplaintEvent{
		Type:      models.EventComplaintCreated,
		ID:        complaint.ID,
		Title:     complaint.Title,
		IssueType: complaint.IssueType,
		Location:  complaint.Location,
		Status:    complaint.Status,
		CreatedAt: complaint.CreatedAt,
	})

	response.JSON(w, http.StatusCreated, complaint)
}

func (app *application) upvoteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	complaint, err := app.store.Upvote(ctx, id, middleware.ClientAddr(r))
	if errors.Is(err, store.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Complaint not found", "")
		return
	}
	if err != nil {
		middleware.LogError(middleware.GetTraceID(r), "Failed to record upvote", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response.JSON(w, http.StatusOK, complaint)
}

func (app *application) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload", "")
		return
	}

	if fields := validateStatus(input.Status); len(fields) > 0 {
		response.Invalid(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	complaint, err := app.store.SetStatus(ctx, id, input.Status)
	if errors.Is(err, store.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Complaint not found", "")
		return
	}
	if err != nil {
		middleware.LogError(middleware.GetTraceID(r), "Failed to update status", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	app.publishEvent(middleware.GetTraceID(r), models.ComplaintEvent{
		Type:      models.EventStatusUpdated,
		ID:        complaint.ID,
		Title:     complaint.Title,
		IssueType: complaint.IssueType,
		Location:  complaint.Location,
		Status:    complaint.Status,
		CreatedAt: complaint.CreatedAt,
	})

	response.JSON(w, http.StatusOK, complaint)
}

// publishEvent is best effort: a queue failure is logged and never fails the
// request that triggered it.
func (app *application) publishEvent(traceID string, event models.ComplaintEvent) {
	if app.events == nil {
		return
	}
	if err := app.events.Publish(event); err != nil {
		middleware.LogError(traceID, "Complaint saved but event publish failed", err)
	}
}
