package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goassoc/domain/core"
	"goassoc/domain/dataset"
	"goassoc/domain/task"
	"goassoc/internal/report"
)

// errorResponse writes the standard error body returned by every failed
// submission, so clients can treat all rejections uniformly.
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":          "error",
		"message":         message,
		"steps_completed": []string{},
	})
}

// ProcessRequest is the submission body: raw rows plus the column selection.
type ProcessRequest struct {
	Data            []map[string]any `json:"data"`
	SelectedColumns []string         `json:"selected_columns"`
}

// handleProcess validates the submission, allocates a task and launches the
// pipeline in the background. The response returns immediately with the id.
func (s *Server) handleProcess(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Request body is not valid JSON.")
		return
	}
	if len(req.Data) == 0 {
		errorResponse(c, http.StatusBadRequest, "Input data is empty or not properly formatted.")
		return
	}
	if len(req.SelectedColumns) == 0 {
		errorResponse(c, http.StatusBadRequest, "Selected columns are missing or not in the correct format.")
		return
	}

	ds := dataset.FromRows(req.Data)
	selection := dataset.NormalizeSelection(req.SelectedColumns)
	if err := dataset.ValidateSelection(ds, selection); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(selection) < 2 {
		errorResponse(c, http.StatusBadRequest, "At least two selected columns are required for association analysis.")
		return
	}

	id := s.registry.Create()
	log.Printf("[API] Task %s created for %d rows, %d columns", id, ds.Len(), len(selection))
	go s.run(context.Background(), id.String(), ds, selection)

	c.JSON(http.StatusOK, gin.H{"status": "processing", "task_id": id.String()})
}

// handleProgress returns a consistent snapshot of the task record. An
// unknown id yields a distinct not-found response, never the shape of a
// valid progress record.
func (s *Server) handleProgress(c *gin.Context) {
	id := core.TaskID(c.Param("task_id"))
	rec, ok := s.registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status":          "error",
			"message":         "Invalid task ID.",
			"steps_completed": []string{},
		})
		return
	}
	c.JSON(http.StatusOK, progressBody(rec))
}

// handleReport renders the HTML report of a terminal task.
func (s *Server) handleReport(c *gin.Context) {
	id := core.TaskID(c.Param("task_id"))
	rec, ok := s.registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status":          "error",
			"message":         "Invalid task ID.",
			"steps_completed": []string{},
		})
		return
	}
	if !rec.Status.Terminal() {
		c.JSON(http.StatusAccepted, gin.H{"status": string(rec.Status), "progress": rec.Progress})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(rec))
}

// progressBody maps a record snapshot to the polling wire shape.
func progressBody(rec task.Record) gin.H {
	switch rec.Status {
	case task.StatusSuccess:
		body := gin.H{
			"status":          string(rec.Status),
			"progress":        rec.Progress,
			"steps_completed": rec.StepsCompleted,
			"eta":             rec.ETA,
			"error_logs":      rec.ErrorLogs,
		}
		if rec.Bundle != nil {
			body["average_cramers_v"] = rec.Bundle.AverageCramersV
			body["logistic_regression_results"] = rec.Bundle.LogisticRegression
			body["decision_tree_results"] = rec.Bundle.DecisionTree
			body["random_forest_results"] = rec.Bundle.RandomForest
			body["chi_square_results"] = rec.Bundle.ChiSquare
			body["multi_variable_results"] = rec.Bundle.MultiVariable
		}
		return body
	case task.StatusError:
		return gin.H{
			"status":          string(rec.Status),
			"message":         rec.Message,
			"steps_completed": rec.StepsCompleted,
			"error_logs":      rec.ErrorLogs,
		}
	default:
		return gin.H{
			"status":          string(rec.Status),
			"progress":        rec.Progress,
			"steps_completed": rec.StepsCompleted,
			"eta":             rec.ETA,
			"start_time":      rec.StartTime.Unix(),
		}
	}
}
