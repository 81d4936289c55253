// Package tui is the terminal front end: a feed of listings with infinite
// scroll, a filter form, and the account tab.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beyt_client/auth"
	"beyt_client/i18n"
	"beyt_client/listings"
	"beyt_client/services"
	"beyt_client/tui/styles"
	"beyt_client/tui/views"
)

type tab int

const (
	tabFeed tab = iota
	tabFilters
	tabAccount
)

type commonDataMsg struct {
	types []string
}

type model struct {
	activeTab     tab
	width, height int
	msgs          *i18n.Bundle
	common        *services.CommonDataService

	feed    views.Feed
	filters views.FilterBar
	account views.Account
}

// Run wires the views together and blocks until the user quits.
func Run(fetcher *listings.Fetcher, authSvc *auth.Service, session *auth.Session,
	common *services.CommonDataService, msgs *i18n.Bundle) error {

	m := model{
		msgs:    msgs,
		common:  common,
		feed:    views.NewFeed(fetcher, msgs),
		filters: views.NewFilterBar(msgs),
		account: views.NewAccount(authSvc, session, msgs),
	}

	// Start on the feed with no constraints.
	fetcher.SetFilters(listings.Filters{})

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.feed.Init(),
		m.account.Init(),
		m.loadCommonData(),
	)
}

func (m model) loadCommonData() tea.Cmd {
	common := m.common
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		types, err := common.PropertyTypes(ctx)
		if err != nil {
			return commonDataMsg{}
		}
		return commonDataMsg{types: types}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Text inputs need the letter itself.
			if !m.capturingText() {
				return m, tea.Quit
			}
		case "tab":
			m.activeTab = (m.activeTab + 1) % 3
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feed = m.feed.SetSize(msg.Width, msg.Height-4)
		m.filters = m.filters.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case commonDataMsg:
		m.filters = m.filters.SetPropertyTypes(msg.types)
		return m, nil

	case views.FiltersAppliedMsg:
		var cmd tea.Cmd
		m.feed, cmd = m.feed.ApplyFilters(msg.Filters)
		m.activeTab = tabFeed
		return m, cmd
	}

	// Key messages go to the active tab only; everything else fans out.
	switch msg.(type) {
	case tea.KeyMsg:
		switch m.activeTab {
		case tabFeed:
			feed, cmd := m.feed.Update(msg)
			m.feed = feed
			cmds = append(cmds, cmd)
		case tabFilters:
			filters, cmd := m.filters.Update(msg)
			m.filters = filters
			cmds = append(cmds, cmd)
		case tabAccount:
			account, cmd := m.account.Update(msg)
			m.account = account
			cmds = append(cmds, cmd)
		}
	default:
		feed, cmd := m.feed.Update(msg)
		m.feed = feed
		cmds = append(cmds, cmd)

		account, cmd2 := m.account.Update(msg)
		m.account = account
		cmds = append(cmds, cmd2)
	}

	return m, tea.Batch(cmds...)
}

// capturingText reports whether plain letters currently belong to an input
// field rather than to global shortcuts.
func (m model) capturingText() bool {
	return m.activeTab == tabFilters || m.activeTab == tabAccount
}

func (m model) View() string {
	tabs := m.renderTabs()
	var content string
	switch m.activeTab {
	case tabFeed:
		content = m.feed.View()
	case tabFilters:
		content = m.filters.View()
	case tabAccount:
		content = m.account.View()
	}

	status := styles.StatusBar.Render("tab: switch · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, tabs, content, status)
}

func (m model) renderTabs() string {
	names := []string{
		m.msgs.T("feed.title"),
		m.msgs.T("filters.title"),
		m.msgs.T("login.title"),
	}
	var rendered []string
	for i, name := range names {
		if tab(i) == m.activeTab {
			rendered = append(rendered, styles.TabActive.Render(name))
		} else {
			rendered = append(rendered, styles.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
