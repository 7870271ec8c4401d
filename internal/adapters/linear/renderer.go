// Package linear provides a line-oriented renderer for task progress.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/ui/output"
	"go.trai.ch/press/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer by printing one line per task transition.
// Nested tasks are indented under their parent.
type Renderer struct {
	out *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState // spanID -> task state
}

type taskState struct {
	name      string
	depth     int
	startTime time.Time
}

// NewRenderer creates a Renderer writing to w. A nil w means stderr.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		out:   output.NewWithProfile(w, output.ColorProfileANSI),
		tasks: make(map[string]*taskState),
	}
}

// OnTaskStart prints a task start message.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.tasks[parentID]; ok {
		depth = parent.depth + 1
	}
	r.tasks[spanID] = &taskState{name: name, depth: depth, startTime: startTime}

	_, _ = fmt.Fprintf(r.out, "%s%s Starting...\n", indent(depth), r.prefix(name))
}

// OnTaskComplete prints completion status and the elapsed time.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	duration := formatDuration(endTime.Sub(task.startTime))
	lead := indent(task.depth) + r.prefix(task.name)

	if err != nil {
		symbol := r.paint(style.Cross, style.Red)
		_, _ = fmt.Fprintf(r.out, "%s %s Failed after %s: %v\n", lead, symbol, duration, err)
		return
	}
	symbol := r.paint(style.Check, style.Green)
	_, _ = fmt.Fprintf(r.out, "%s %s Completed in %s\n", lead, symbol, duration)
}

func (r *Renderer) prefix(name string) string {
	return r.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
}

func (r *Renderer) paint(s string, c lipgloss.Color) string {
	return r.out.String(s).Foreground(r.out.Color(string(c))).String()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
