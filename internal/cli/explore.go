package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/groupio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags groupFlags

	cmd := &cobra.Command{
		Use:   "explore [generators...]",
		Short: "Browse the stabilizer chain interactively",
		Long: `Build the stabilizer chain and browse it in an interactive terminal UI:
one row per level, with the selected level's orbit and generators shown in
a detail pane.`,
		Example: `  schreier explore "(0 1)" "(0 1 2 3 4)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGroup(withLogger(cmd.Context(), c.Logger), &flags, args)
			if err != nil {
				return err
			}

			doc, err := groupio.Summarize(g)
			if errors.Is(err, errors.ErrCodeUnverifiedGroup) {
				printWarning("Chain not verified: shown data is probable, not proven")
			} else if err != nil {
				return err
			}
			if len(doc.Levels) == 0 {
				printInfo("Trivial group: the chain has no levels")
				return nil
			}

			model := NewChainModel(doc)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	c.addGroupFlags(cmd, &flags)
	return cmd
}

// ChainModel is the bubbletea model for interactive chain browsing.
type ChainModel struct {
	Doc    groupio.ChainDocument
	Cursor int
	Height int
	Offset int
}

// NewChainModel creates a chain browser over a summarized chain.
func NewChainModel(doc groupio.ChainDocument) ChainModel {
	return ChainModel{
		Doc:    doc,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ChainModel) Init() tea.Cmd {
	return nil
}

func (m ChainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Doc.Levels)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m ChainModel) View() string {
	var b strings.Builder

	verified := "verified"
	if !m.Doc.Verified {
		verified = "unverified"
	}
	b.WriteString(StyleTitle.Render("Stabilizer Chain"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  order %s · %s", m.Doc.Order, verified)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Doc.Levels) {
		end = len(m.Doc.Levels)
	}

	for i := m.Offset; i < end; i++ {
		lv := m.Doc.Levels[i]
		line := fmt.Sprintf("level %d  base %d  orbit %d  gens %d",
			i, lv.BasePoint, len(lv.Orbit), len(lv.Generators))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	lv := m.Doc.Levels[m.Cursor]
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("orbit: %v", lv.Orbit)))
	b.WriteString("\n")
	if len(lv.Generators) > 0 {
		b.WriteString(listDimStyle.Render("generators: " + strings.Join(lv.Generators, "  ")))
		b.WriteString("\n")
	}

	return b.String()
}
