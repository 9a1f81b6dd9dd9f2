package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	streamModelName = "gemini-proxy"

	// Short pause between the content frame and the finish frame so the
	// receiving client does not cut the stream before reading the full
	// sentence.
	streamGuardDelay = 50 * time.Millisecond
)

type streamDelta struct {
	Content string `json:"content,omitempty"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
}

// writeStream emits the whole reply as exactly three SSE frames: one
// content chunk carrying the full text (no sub-chunking, the front end is
// more reliable with one delta), one finish chunk, and the [DONE] sentinel.
func writeStream(w http.ResponseWriter, text string) error {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, _ := w.(http.Flusher)
	now := time.Now()
	id := "chatcmpl-" + strconv.FormatInt(now.UnixMilli(), 10)
	created := now.Unix()

	content := streamChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   streamModelName,
		Choices: []streamChoice{{Delta: streamDelta{Content: text}}},
	}
	if err := writeFrame(w, content); err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}

	time.Sleep(streamGuardDelay)

	stop := "stop"
	finish := streamChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   streamModelName,
		Choices: []streamChoice{{FinishReason: &stop}},
	}
	if err := writeFrame(w, finish); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "data: [DONE]\n\n"); err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}
	return nil
}

func writeFrame(w http.ResponseWriter, chunk streamChunk) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
