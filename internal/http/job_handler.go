package http

import (
	"net/http"

	"serverlog-analyser/internal/jobs"
	"serverlog-analyser/internal/models"

	"github.com/go-chi/chi/v5"
)

const urlParamJobID = "jobID"

// CancelResponse is returned by POST /jobs/{jobID}/cancel.
type CancelResponse struct {
	JobID  string           `json:"job_id"`
	Status models.JobStatus `json:"status"`
}

type listJobsHandler struct {
	scheduler jobs.Scheduler
}

func NewListJobsHandler(scheduler jobs.Scheduler) AppHttpHandler {
	return &listJobsHandler{scheduler: scheduler}
}

// Handle processes GET /jobs and answers with snapshots keyed by job id.
func (h *listJobsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshots := h.scheduler.List(r.Context())
	byID := make(map[string]models.JobSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byID[snapshot.JobID] = snapshot
	}

	writeJSON(w, http.StatusOK, byID)
	return nil
}

type getJobHandler struct {
	scheduler jobs.Scheduler
}

func NewGetJobHandler(scheduler jobs.Scheduler) AppHttpHandler {
	return &getJobHandler{scheduler: scheduler}
}

// Handle processes GET /jobs/{jobID}.
func (h *getJobHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshot, svcErr := h.scheduler.Get(r.Context(), chi.URLParam(r, urlParamJobID))
	if svcErr != nil {
		return svcErr
	}

	writeJSON(w, http.StatusOK, snapshot)
	return nil
}

type cancelJobHandler struct {
	scheduler jobs.Scheduler
}

func NewCancelJobHandler(scheduler jobs.Scheduler) AppHttpHandler {
	return &cancelJobHandler{scheduler: scheduler}
}

// Handle processes POST /jobs/{jobID}/cancel.
func (h *cancelJobHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshot, svcErr := h.scheduler.Cancel(r.Context(), chi.URLParam(r, urlParamJobID))
	if svcErr != nil {
		return svcErr
	}

	writeJSON(w, http.StatusOK, CancelResponse{JobID: snapshot.JobID, Status: snapshot.Status})
	return nil
}
