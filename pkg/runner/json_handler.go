package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Each input line is a JSON array of symbols, a JSON string, or plain text.
// Each result is written as one JSON object.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// SystemMessage is the line emitted for meta-messages in JSON mode.
type SystemMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// Input ignores the prompt; JSON mode is not interactive.
func (h *JSONHandler) Input(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var symbols []string
	if err := json.Unmarshal([]byte(text), &symbols); err == nil {
		return strings.Join(symbols, " "), nil
	}

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}

	return text, nil
}

func (h *JSONHandler) Output(ctx context.Context, res *domain.Result) error {
	return h.Encoder.Encode(res)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(SystemMessage{Type: "system", Message: msg})
}
