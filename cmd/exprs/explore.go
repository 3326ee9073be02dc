package main

import (
	"flag"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/midbel/cli"

	"github.com/midbel/exprs/environ"
	"github.com/midbel/exprs/mathexpr"
	"github.com/midbel/exprs/tree"
)

var exploreCmd = cli.Command{
	Name:    "explore",
	Summary: "show the tree of a formula while typing it",
	Handler: &ExploreCmd{},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))
	treeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type ExploreCmd struct {
	ProfileOptions
}

func (e *ExploreCmd) Run(args []string) error {
	set := flag.NewFlagSet("explore", flag.ContinueOnError)
	set.StringVar(&e.Config, "config", "", "profile file (yaml or toml) defining operators and functions")
	if err := set.Parse(args); err != nil {
		return err
	}
	parser, err := e.compile()
	if err != nil {
		return err
	}
	env, err := parser.Environ(nil)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newExplorer(parser, env, strings.Join(set.Args(), " ")))
	_, err = p.Run()
	return err
}

type explorer struct {
	parser *mathexpr.Parser
	env    environ.Environ[float64]
	input  textinput.Model
	width  int

	tree  string
	value string
	err   error
}

func newExplorer(parser *mathexpr.Parser, env environ.Environ[float64], str string) explorer {
	ti := textinput.New()
	ti.Placeholder = "1 + 2 * max(x, 3)"
	ti.Prompt = "formula> "
	ti.Focus()
	ti.SetValue(str)

	m := explorer{
		parser: parser,
		env:    env,
		input:  ti,
	}
	m.refresh()
	return m
}

func (m explorer) Init() tea.Cmd {
	return textinput.Blink
}

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *explorer) refresh() {
	m.tree, m.value, m.err = "", "", nil

	str := strings.TrimSpace(m.input.Value())
	if str == "" {
		return
	}
	node, err := m.parser.Parse(str)
	if err != nil {
		m.err = err
		return
	}
	m.tree = strings.TrimRight(tree.Tree(node, mathexpr.Op.String), "\n")
	if res, err := mathexpr.Eval(node, m.env); err == nil {
		m.value = formatNumber(res)
	} else {
		m.value = err.Error()
	}
}

func (m explorer) View() string {
	var str strings.Builder
	str.WriteString(titleStyle.Render("exprs explorer"))
	str.WriteString("\n\n")
	str.WriteString(m.input.View())
	str.WriteString("\n\n")
	switch {
	case m.err != nil:
		str.WriteString(errorStyle.Render(m.err.Error()))
	case m.tree != "":
		str.WriteString(treeStyle.Render(m.tree))
		str.WriteString("\n")
		str.WriteString("= ")
		str.WriteString(m.value)
	}
	str.WriteString("\n\n")
	str.WriteString(helpStyle.Render("esc/ctrl+c: quit"))
	str.WriteString("\n")
	return str.String()
}
