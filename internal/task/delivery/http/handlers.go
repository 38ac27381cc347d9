package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-board/pkg/response"
)

// Create godoc
// @Summary     Create a task
// @Description Creates a task. Status defaults to "To Do" and priority to "Medium". A due date schedules a calendar reminder when a calendar is configured.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createReq true "Task data"
// @Success     200  {object} createResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Create(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// List godoc
// @Summary     List tasks
// @Description Returns tasks newest first with optional filters.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       status   query string false "To Do, In Progress or Done"
// @Param       priority query string false "Low, Medium, High or Urgent"
// @Param       search   query string false "Substring of title or description"
// @Param       overdue  query bool   false "Only tasks past their due date and not done"
// @Param       from     query string false "Due on or after (RFC 3339 or YYYY-MM-DD)"
// @Param       to       query string false "Due on or before (RFC 3339 or YYYY-MM-DD)"
// @Param       limit    query int    false "Page size (default: 50)"
// @Param       offset   query int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.List(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get task detail
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID)
		return
	}

	t, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(t))
}

// Update godoc
// @Summary     Update a task
// @Description Partial update. Omitted fields are kept; an empty dueDate clears it.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path string    true "Task ID"
// @Param       body body updateReq true "Fields to update"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [PUT]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	t, err := h.uc.Update(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(t))
}

// UpdateStatus godoc
// @Summary     Move a task to another column
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id   path string          true "Task ID"
// @Param       body body updateStatusReq true "New status"
// @Success     200 {object} detailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/status [PATCH]
func (h *handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processUpdateStatusReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	t, err := h.uc.UpdateStatus(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateStatus: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(t))
}

// Delete godoc
// @Summary     Delete a task
// @Tags        Tasks
// @Produce     json
// @Param       id path string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errMissingID)
		return
	}

	if err := h.uc.Delete(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
