package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/pkg/domain"
)

// TextHandler implements the console interface: prompts on the writer, one
// line per run, and the text report after each run.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// Colorize decorates the verdict line of the text report.
	Colorize func(domain.Verdict, string) string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer renders the markdown report through renderer instead
// of printing the plain text report.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerColor configures the verdict line decoration.
func WithTextHandlerColor(colorize func(domain.Verdict, string) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Colorize = colorize
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult, DefaultInputBufferSize)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour context cancellation.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context, prompt string) (string, error) {
	h.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprint(h.Writer, prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			fmt.Fprintln(h.Writer)
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

func (h *TextHandler) Output(ctx context.Context, res *domain.Result) error {
	if h.Renderer != nil {
		if rendered, err := h.Renderer(report.Markdown(res)); err == nil {
			_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(rendered))
			return err
		}
	}

	text := report.Text(res)
	if h.Colorize != nil {
		msg := report.Message(res)
		text = strings.Replace(text, msg, h.Colorize(res.Verdict, msg), 1)
	}
	_, err := fmt.Fprint(h.Writer, text)
	return err
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}
