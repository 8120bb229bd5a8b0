package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leavedesk/leave-backend-go/internal/domain/leave"
	"github.com/leavedesk/leave-backend-go/internal/domain/notification"
	"github.com/leavedesk/leave-backend-go/internal/handler/http/response"
	leaveService "github.com/leavedesk/leave-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListAllRequests(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	MarkNotificationRead(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService *leaveService.Service
	notifService notification.Service
}

func NewLeaveHandler(svc *leaveService.Service, notifService notification.Service) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: svc,
		notifService: notifService,
	}
}

// CreateRequest handles POST /leaves
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Owner comes from the token, never from the payload
	req.OwnerID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		slog.Error("create leave request failed", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leave.ToResponse(created))
}

// GetMyRequests handles GET /leaves
func (h *leaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.leaveService.ListMine(r.Context(), userID)
	if err != nil {
		slog.Error("list my leave requests failed", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.RequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = leave.ToResponse(req)
	}
	response.Success(w, responses)
}

// ListAllRequests handles GET /leaves/all (admin only)
func (h *leaveHandlerImpl) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListAll(r.Context())
	if err != nil {
		slog.Error("list all leave requests failed", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.RequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = leave.ToResponse(req)
	}
	response.Success(w, responses)
}

// UpdateStatus handles PUT /leaves/{id} (admin only)
func (h *leaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.leaveService.TransitionStatus(r.Context(), requestID, req)
	if err != nil {
		slog.Error("leave status transition failed", "request_id", requestID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(updated))
}

// MarkNotificationRead handles PUT /leaves/notify/{id}
func (h *leaveHandlerImpl) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	notifID := chi.URLParam(r, "id")
	if notifID == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notifService.MarkRead(r.Context(), userID, notifID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}
