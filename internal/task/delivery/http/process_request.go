package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
)

// processCreateReq binds and validates the create task request body.
func (h *handler) processCreateReq(c *gin.Context) (task.CreateInput, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.CreateInput{}, err
	}
	return req.toInput()
}

// processListReq binds and validates the list tasks query parameters.
func (h *handler) processListReq(c *gin.Context) (task.ListInput, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return task.ListInput{}, err
	}
	return req.toInput()
}

// processUpdateReq binds and validates the update task request body + URI param.
func (h *handler) processUpdateReq(c *gin.Context) (task.UpdateInput, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.UpdateInput{}, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return task.UpdateInput{}, errMissingID
	}
	return req.toInput()
}

// processUpdateStatusReq binds the status move body + URI param.
func (h *handler) processUpdateStatusReq(c *gin.Context) (task.UpdateStatusInput, error) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return task.UpdateStatusInput{}, err
	}
	id := c.Param("id")
	if id == "" {
		return task.UpdateStatusInput{}, errMissingID
	}
	return task.UpdateStatusInput{ID: id, Status: model.Status(req.Status)}, nil
}
