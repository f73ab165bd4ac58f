// Package console renders a single agent run for a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/casualjim/rxagent/agent"
	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/pkg/jsonx"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(string) (string, error)
}

// NewMarkdownRenderer returns a glamour renderer that picks its style from the
// terminal background.
func NewMarkdownRenderer() (Renderer, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Hook prints the conversation of a run as it happens.
type Hook struct {
	w        io.Writer
	renderer Renderer
	verbose  bool
}

var _ agent.Hook = (*Hook)(nil)

// NewHook creates a Hook writing to w. Assistant messages are rendered with
// renderer when it is not nil. Nudges are only shown when verbose is set.
func NewHook(w io.Writer, renderer Renderer, verbose bool) *Hook {
	return &Hook{w: w, renderer: renderer, verbose: verbose}
}

func (h *Hook) render(content string) string {
	if h.renderer == nil {
		return content
	}
	out, err := h.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func (h *Hook) OnUserPrompt(_ context.Context, msg messages.Message) {
	fmt.Fprintf(h.w, "%s: %s\n\n", color.CyanString("User"), msg.Content)
}

func (h *Hook) OnAssistantMessage(_ context.Context, msg messages.Message) {
	fmt.Fprint(h.w, color.MagentaString("Assistant")+": ")
	fmt.Fprintln(h.w, h.render(msg.Content))
}

func (h *Hook) OnToolCall(_ context.Context, call agent.ToolCall) {
	name := color.YellowString(call.CanonicalName)
	if call.Failed() {
		name = color.RedString(call.CanonicalName)
	}
	args := strings.ReplaceAll(jsonx.String(call.Adapted), ":", "=")
	suffix := ""
	if call.CacheHit {
		suffix = color.HiBlackString(" (cached)")
	}
	fmt.Fprintf(h.w, "%s: %s%s%s\n", color.YellowString("Tool"), name, args, suffix)
}

func (h *Hook) OnNudge(_ context.Context, msg messages.Message) {
	if !h.verbose {
		return
	}
	fmt.Fprintf(h.w, "%s: %s\n", color.HiBlackString("Nudge"), msg.Content)
}

func (h *Hook) OnResult(context.Context, agent.Result) {}

func (h *Hook) OnError(_ context.Context, err error) {
	fmt.Fprintf(h.w, "%s: %v\n", color.RedString("Error"), err)
}

// PrintResult writes the final choice followed by the trace of tool calls.
func PrintResult(w io.Writer, res agent.Result) {
	choice := res.FinalChoice
	if choice == "" {
		choice = "(none)"
	}
	fmt.Fprintf(w, "\n%s %s\n", color.GreenString("Final choice:"), color.New(color.Bold).Sprint(choice))
	if len(res.Tools) == 0 {
		fmt.Fprintln(w, "No tools were called.")
		return
	}
	fmt.Fprintln(w, "Tool trace:")
	for i, call := range res.Tools {
		status := "ok"
		if call.Failed() {
			status = "failed"
		} else if call.CacheHit {
			status = "cached"
		}
		fmt.Fprintf(w, "%d. round %d %s -> %s [%s]\n", i+1, call.Round+1, call.RequestedName, call.CanonicalName, status)
	}
}
