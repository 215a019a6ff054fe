package respond

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"edumuse/internal/answer"

	"github.com/stretchr/testify/require"
)

func TestFormatKeysAlwaysPresent(t *testing.T) {
	resp := Format("Paris.", "", answer.Verification{Verdict: true}, nil, false)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Contains(t, raw, "answer_text")
	require.Contains(t, raw, "verified")
	require.Contains(t, raw, "sources")
	require.NotContains(t, raw, "tts_text", "tts_text must be absent when TTS was not requested")
	require.Equal(t, []any{}, raw["sources"], "nil sources must serialize as an empty list")
}

func TestFormatTTSTextMirrorsAnswer(t *testing.T) {
	resp := Format("Paris.", "", answer.Verification{Verdict: true}, []string{"src"}, true)
	require.Equal(t, "Paris.", resp.TTSText)

	resp = Format("Paris.", "", answer.Verification{Verdict: true}, []string{"src"}, false)
	require.Empty(t, resp.TTSText)
}

func TestFormatCarriesVerificationAndVisuals(t *testing.T) {
	v := answer.Verification{Verdict: false, Notes: "date unsupported"}
	resp := Format("answer", "<VISUAL_PLACEHOLDER>", v, []string{"p1", "p2"}, false)

	require.False(t, resp.Verified)
	require.Equal(t, "date unsupported", resp.VerificationNotes)
	require.Equal(t, "<VISUAL_PLACEHOLDER>", resp.Visuals)
	require.Equal(t, []string{"p1", "p2"}, resp.Sources)
}

func TestDump(t *testing.T) {
	resp := Format("Paris.", "", answer.Verification{Verdict: true}, []string{"s"}, true)
	path := filepath.Join(t.TempDir(), "run.json")

	require.NoError(t, resp.Dump(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var roundTripped Response
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	require.Equal(t, *resp, roundTripped)
}
