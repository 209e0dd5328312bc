package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"reportserver/client"
	"reportserver/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type SummarizeCommand struct {
	File      string `help:"The PDF report to summarize." arg:"" type:"existingfile"`
	ServerURL string `help:"The URL of the report server." env:"REPORT_SERVER_URL" default:"http://localhost:4000"`
	Width     int    `help:"The width to wrap the summary output to." env:"WIDTH" default:"80"`
}

func (c SummarizeCommand) Run(ctx context.Context) (err error) {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", c.File, err)
	}

	rsc := client.New(c.ServerURL)

	// Buffered so the request goroutine can finish even if the user quits
	// before the response arrives.
	summaries := make(chan string, 1)
	errors := make(chan error, 1)

	go func() {
		resp, err := rsc.SummarizePost(ctx, models.SummarizeRequest{
			FileData: base64.StdEncoding.EncodeToString(data),
			FileType: models.PDFMediaType,
		})
		if err != nil {
			errors <- err
			return
		}
		summaries <- resp.Summary
	}()

	m := newSummarizeModel(ctx, c.File, summaries, errors)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return err
	}
	final, ok := result.(summarizeModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", result)
	}
	if final.err != nil {
		return final.err
	}

	fmt.Println(summaryStyle.Render(wordwrap.String(final.summary, c.Width)))
	return nil
}

var (
	waitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bd93f9"))
	summaryStyle = lipgloss.NewStyle().Padding(1).Foreground(lipgloss.Color("#8be9fd"))
)

type summarizeModel struct {
	ctx     context.Context
	file    string
	spinner spinner.Model

	summaries chan string
	errors    chan error

	summary string
	err     error
}

func newSummarizeModel(ctx context.Context, file string, summaries chan string, errors chan error) summarizeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = waitingStyle
	return summarizeModel{
		ctx:       ctx,
		file:      file,
		spinner:   s,
		summaries: summaries,
		errors:    errors,
	}
}

type summaryMsg string

type errMsg struct{ err error }

func (m summarizeModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.subscribeToSummaries(),
		m.subscribeToErrors(),
	)
}

func (m summarizeModel) subscribeToSummaries() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-m.summaries:
			return summaryMsg(s)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m summarizeModel) subscribeToErrors() tea.Cmd {
	return func() tea.Msg {
		select {
		case err := <-m.errors:
			return errMsg{err: err}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m summarizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.summary = string(msg)
		return m, tea.Quit
	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m summarizeModel) View() string {
	if m.summary != "" || m.err != nil {
		return ""
	}
	return fmt.Sprintf("%s Summarizing %s...", m.spinner.View(), m.file)
}
