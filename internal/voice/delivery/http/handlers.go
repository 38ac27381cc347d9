package http

import (
	"github.com/gin-gonic/gin"

	"voice-task-board/pkg/response"
)

// Transcribe godoc
// @Summary     Transcribe a recording and extract task fields
// @Description Uploads one recording, transcribes it and returns the transcript with the parsed task fields. Nothing is saved.
// @Tags        Voice
// @Accept      multipart/form-data
// @Produce     json
// @Param       audio    formData file   true  "Recorded audio (webm, wav, mp3, ogg)"
// @Param       timezone formData string false "IANA timezone of the speaker (default: UTC)"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "No audio or empty transcript"
// @Failure     413 {object} response.Resp "Upload too large"
// @Failure     415 {object} response.Resp "Unsupported audio type"
// @Failure     429 {object} response.Resp "Too many requests"
// @Failure     500 {object} response.Resp "Failed to process voice recording"
// @Router      /api/v1/voice/transcribe [POST]
func (h *handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processTranscribeReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Process(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		response.ErrorWithDetails(c, h.mapError(err), errorDetails(err))
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// Parse godoc
// @Summary     Extract task fields from text
// @Description Runs field extraction on an already transcribed text.
// @Tags        Voice
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Transcript and timezone"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/voice/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Parse(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Parse: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newProcessResp(output))
}
