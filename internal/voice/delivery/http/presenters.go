package http

import (
	"voice-task-board/internal/voice"
)

// --- Request DTOs ---

type parseReq struct {
	Transcript string `json:"transcript" binding:"required,max=10000"`
	Timezone   string `json:"timezone"`
}

func (r parseReq) toInput() voice.ParseInput {
	return voice.ParseInput{
		Transcript: r.Transcript,
		Timezone:   r.Timezone,
	}
}

// --- Response DTOs ---

type processResp struct {
	Transcript string                    `json:"transcript"`
	Parsed     voice.ExtractedTaskFields `json:"parsed" swaggertype:"object"`
}

func (h *handler) newProcessResp(out voice.ProcessOutput) processResp {
	return processResp{
		Transcript: out.Transcript,
		Parsed:     out.Parsed,
	}
}
