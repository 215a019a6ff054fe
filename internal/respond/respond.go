// Package respond assembles the final response payload, the only artifact
// consumers of the pipeline see.
package respond

import (
	"encoding/json"
	"fmt"
	"os"

	"edumuse/internal/answer"
)

// Response is the formatted pipeline output.
type Response struct {
	AnswerText        string   `json:"answer_text"`
	Visuals           string   `json:"visuals,omitempty"`
	Verified          bool     `json:"verified"`
	VerificationNotes string   `json:"verification_notes,omitempty"`
	Sources           []string `json:"sources"`
	TTSText           string   `json:"tts_text,omitempty"`
	AudioPath         string   `json:"audio_path,omitempty"`
}

// Format is pure assembly. TTSText mirrors the answer only when speech was
// requested; it is the single hook the synthesis collaborator consumes.
func Format(answerText, visualOutput string, verification answer.Verification, sources []string, ttsRequested bool) *Response {
	if sources == nil {
		sources = []string{}
	}
	resp := &Response{
		AnswerText:        answerText,
		Visuals:           visualOutput,
		Verified:          verification.Verdict,
		VerificationNotes: verification.Notes,
		Sources:           sources,
	}
	if ttsRequested {
		resp.TTSText = answerText
	}
	return resp
}

// Dump writes the response as indented JSON to path.
func (r *Response) Dump(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
