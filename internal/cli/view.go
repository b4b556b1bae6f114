package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphbrot/pkg/pipeline"
)

// copyToClipboard is swapped out in tests.
var (
	defaultCopy     = clipboard.WriteAll
	copyToClipboard = defaultCopy
)

var (
	viewFooterStyle = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand creates the interactive pager for one frame.
func (c *CLI) viewCommand() *cobra.Command {
	var frame frameOpts

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Page a frame in the terminal",
		Long: `Render one frame and open it in a scrollable pager.

Keys: arrows/pgup/pgdn scroll, y copies the frame to the clipboard, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), cmd, &frame)
		},
	}

	addFrameFlags(cmd, &frame)
	_ = cmd.RegisterFlagCompletionFunc("region", c.completeRegions)
	return cmd
}

func (c *CLI) runView(ctx context.Context, cmd *cobra.Command, f *frameOpts) error {
	f.format = pipeline.DefaultFormat
	opts, err := c.options(cmd, f)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, c.backend(f))
	defer c.closeCache(runner)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(newViewModel(result), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

// =============================================================================
// viewModel - scrollable frame pager
// =============================================================================

// clipboardMsg reports the outcome of a copy.
type clipboardMsg struct{ err error }

// viewModel is the bubbletea model for the frame pager.
type viewModel struct {
	title  string
	lines  []string
	vp     viewport.Model
	ready  bool
	status string
	err    error
}

func newViewModel(result *pipeline.Result) viewModel {
	vp := result.Viewport
	title := fmt.Sprintf("x %g … %g   y %g … %g   %dx%d @ %d",
		vp.XMin, vp.XMax, vp.YMin, vp.YMax,
		result.Resolution.Width, result.Resolution.Height, result.MaxIters)
	return viewModel{title: title, lines: result.Lines}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "y":
			frame := strings.Join(m.lines, "\n") + "\n"
			return m, func() tea.Msg { return clipboardMsg{err: copyToClipboard(frame)} }
		}

	case clipboardMsg:
		m.err = msg.err
		m.status = ""
		if msg.err == nil {
			m.status = fmt.Sprintf("copied %d rows", len(m.lines))
		}
		return m, nil

	case tea.WindowSizeMsg:
		height := max(msg.Height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.SetContent(strings.Join(m.lines, "\n"))
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	if !m.ready {
		return "loading…"
	}
	return m.header() + "\n" + m.vp.View() + "\n" + m.footer()
}

func (m viewModel) header() string {
	return StyleTitle.Render(m.title)
}

func (m viewModel) footer() string {
	help := "↑/↓ scroll  y copy  q quit"
	if m.ready {
		help = fmt.Sprintf("%3.0f%%  %s", m.vp.ScrollPercent()*100, help)
	}
	switch {
	case m.err != nil:
		return viewFooterStyle.Render(help) + "  " + viewErrorStyle.Render("copy failed: "+m.err.Error())
	case m.status != "":
		return viewFooterStyle.Render(help) + "  " + StyleSuccess.Render(m.status)
	default:
		return viewFooterStyle.Render(help)
	}
}
