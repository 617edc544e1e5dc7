package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
	"github.com/yokitheyo/logsweep/internal/service"
	"github.com/yokitheyo/logsweep/internal/taskmgr"
)

// Engine is the set of operations served over HTTP.
type Engine interface {
	Search(roots []string, query string) (*service.SearchOutcome, error)
	SearchDirectory(root, query string) (*service.SearchOutcome, error)
	CountErrors(roots []string) (*service.FrequencyOutcome, error)
	CountDuplicateErrors(roots []string) (*service.FrequencyOutcome, error)
	SearchBySize(roots []string, minKB, maxKB int64) (*service.SizeOutcome, error)
	CountTotalLogs(roots []string, rng model.DateRange) (*service.CountOutcome, error)
	DeleteLogs(root string, rng model.DateRange) (*service.DeleteOutcome, error)
	ArchiveLogs(roots []string, rng model.DateRange) (*service.ArchiveOutcome, error)
}

type APIHandler struct {
	Engine Engine
	TM     *taskmgr.TaskManager
}

func RegisterHandlers(r *gin.Engine, engine Engine, tm *taskmgr.TaskManager) {
	h := &APIHandler{Engine: engine, TM: tm}

	r.GET("/search", h.search)
	r.GET("/count", h.countErrors)
	r.GET("/count-duplicates", h.countDuplicateErrors)
	r.DELETE("/delete-logs", h.deleteLogs)
	r.POST("/archive", h.archiveLogs)
	r.GET("/total-logs", h.totalLogs)
	r.GET("/search-by-size", h.searchBySize)
	r.GET("/search-by-directory", h.searchByDirectory)

	r.GET("/tasks/:id/status", h.getStatus)
}

func (h *APIHandler) search(c *gin.Context) {
	out, err := h.Engine.Search(c.QueryArray("directories"), c.Query("query"))
	task := h.record("search", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.ID, "results": out.Results, "failures": task.Failures})
}

func (h *APIHandler) searchByDirectory(c *gin.Context) {
	out, err := h.Engine.SearchDirectory(c.Query("directory"), c.Query("query"))
	task := h.record("search-by-directory", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.ID, "results": out.Results, "failures": task.Failures})
}

func (h *APIHandler) countErrors(c *gin.Context) {
	out, err := h.Engine.CountErrors(c.QueryArray("directories"))
	h.respondFrequency(c, "count", "Error count is: ", out, err)
}

func (h *APIHandler) countDuplicateErrors(c *gin.Context) {
	out, err := h.Engine.CountDuplicateErrors(c.QueryArray("directories"))
	h.respondFrequency(c, "count-duplicates", "Duplicate Count is: ", out, err)
}

func (h *APIHandler) respondFrequency(c *gin.Context, op, prefix string, out *service.FrequencyOutcome, err error) {
	task := h.record(op, failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":  task.ID,
		"message":  prefix + out.Report,
		"counts":   out.Counts,
		"failures": task.Failures,
	})
}

func (h *APIHandler) deleteLogs(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		respondError(c, nil, err)
		return
	}
	out, err := h.Engine.DeleteLogs(c.Query("directory"), rng)
	task := h.record("delete-logs", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":  task.ID,
		"message":  "Logs deleted successfully.",
		"deleted":  out.Deleted,
		"failures": task.Failures,
	})
}

func (h *APIHandler) archiveLogs(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		respondError(c, nil, err)
		return
	}
	out, err := h.Engine.ArchiveLogs(c.QueryArray("directories"), rng)
	task := h.record("archive", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":  task.ID,
		"message":  fmt.Sprintf("Logs archived to %s successfully.", out.ArchiveName),
		"archives": out.Archives,
		"deleted":  out.Deleted,
		"failures": task.Failures,
	})
}

func (h *APIHandler) totalLogs(c *gin.Context) {
	rng, err := dateRange(c)
	if err != nil {
		respondError(c, nil, err)
		return
	}
	out, err := h.Engine.CountTotalLogs(c.QueryArray("directories"), rng)
	task := h.record("total-logs", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":  task.ID,
		"message":  fmt.Sprintf("Total logs in the specified period: %d", out.Total),
		"total":    out.Total,
		"failures": task.Failures,
	})
}

func (h *APIHandler) searchBySize(c *gin.Context) {
	minKB, err := int64Param(c, "minSizeKB")
	if err != nil {
		respondError(c, nil, err)
		return
	}
	maxKB, err := int64Param(c, "maxSizeKB")
	if err != nil {
		respondError(c, nil, err)
		return
	}
	out, err := h.Engine.SearchBySize(c.QueryArray("directories"), minKB, maxKB)
	task := h.record("search-by-size", failuresOf(out, err), err)
	if err != nil {
		respondError(c, task, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.ID, "results": out.Results, "failures": task.Failures})
}

func (h *APIHandler) getStatus(c *gin.Context) {
	task, err := h.TM.GetTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *APIHandler) record(op string, failures []model.Failure, err error) *model.Task {
	return h.TM.Record(op, failures, err)
}

// failuresOf pulls the failure list out of any outcome type.
func failuresOf(out any, err error) []model.Failure {
	if err != nil {
		return nil
	}
	switch o := out.(type) {
	case *service.SearchOutcome:
		return o.Failures
	case *service.FrequencyOutcome:
		return o.Failures
	case *service.SizeOutcome:
		return o.Failures
	case *service.CountOutcome:
		return o.Failures
	case *service.DeleteOutcome:
		return o.Failures
	case *service.ArchiveOutcome:
		return o.Failures
	}
	return nil
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(kind logerr.Kind) int {
	switch kind {
	case logerr.InvalidInput:
		return http.StatusBadRequest
	case logerr.DirectoryNotFound:
		return http.StatusNotFound
	case logerr.AccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, task *model.Task, err error) {
	kind := logerr.KindOf(err)
	body := gin.H{"error": err.Error(), "kind": kind}
	if task != nil {
		body["task_id"] = task.ID
	}
	c.JSON(StatusFor(kind), body)
}

func dateRange(c *gin.Context) (model.DateRange, error) {
	from, err := model.ParseDate(c.Query("fromDate"))
	if err != nil {
		return model.DateRange{}, fmt.Errorf("fromDate: %w", err)
	}
	to, err := model.ParseDate(c.Query("toDate"))
	if err != nil {
		return model.DateRange{}, fmt.Errorf("toDate: %w", err)
	}
	return model.DateRange{From: from, To: to}, nil
}

// int64Param reads an optional integer query parameter, defaulting to 0.
func int64Param(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, logerr.New(logerr.InvalidInput, name+" must be an integer", err)
	}
	return n, nil
}
