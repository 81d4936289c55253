package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"beyt_client/auth"
	"beyt_client/i18n"
	"beyt_client/models"
	"beyt_client/tui/styles"
)

type loginResultMsg struct {
	user *models.User
	err  error
}

type loggedOutMsg struct{}

type accountField int

const (
	accountEmail accountField = iota
	accountPassword
)

// Account is the login/logout tab. Signup, OTP reset and Google login go
// through the auth service as well but only email login is wired into the
// terminal UI.
type Account struct {
	svc     *auth.Service
	session *auth.Session
	msgs    *i18n.Bundle

	user     *models.User
	field    accountField
	email    string
	password string
	busy     bool
	errText  string
}

func NewAccount(svc *auth.Service, session *auth.Session, msgs *i18n.Bundle) Account {
	return Account{svc: svc, session: session, msgs: msgs}
}

func (a Account) Init() tea.Cmd {
	if !a.session.LoggedIn() {
		return nil
	}
	svc := a.svc
	return func() tea.Msg {
		user, err := svc.CurrentUser(context.Background())
		return loginResultMsg{user: user, err: err}
	}
}

func (a Account) Update(msg tea.Msg) (Account, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		a.busy = false
		if msg.err != nil {
			a.errText = a.msgs.T("login.loginFailed")
			return a, nil
		}
		a.user = msg.user
		a.errText = ""
		a.password = ""

	case loggedOutMsg:
		a.user = nil

	case tea.KeyMsg:
		if a.busy {
			return a, nil
		}
		if a.user != nil {
			if msg.String() == "o" {
				session := a.session
				return a, func() tea.Msg {
					session.Logout()
					return loggedOutMsg{}
				}
			}
			return a, nil
		}
		return a.updateForm(msg)
	}

	return a, nil
}

func (a Account) updateForm(key tea.KeyMsg) (Account, tea.Cmd) {
	switch key.Type {
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		if a.field == accountEmail {
			a.field = accountPassword
		} else {
			a.field = accountEmail
		}
	case tea.KeyEnter:
		if a.field == accountEmail {
			a.field = accountPassword
			return a, nil
		}
		a.busy = true
		svc, email, password := a.svc, a.email, a.password
		return a, func() tea.Msg {
			user, err := svc.LoginWithEmail(context.Background(), email, password)
			return loginResultMsg{user: user, err: err}
		}
	case tea.KeyBackspace:
		field := a.activeField()
		if len(*field) > 0 {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		*a.activeField() += string(key.Runes)
	}
	return a, nil
}

func (a *Account) activeField() *string {
	if a.field == accountEmail {
		return &a.email
	}
	return &a.password
}

func (a Account) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(a.msgs.T("login.title")))
	b.WriteString("\n\n")

	if a.user != nil {
		b.WriteString(styles.StatusSuccess.Render(a.msgs.T("login.loggedInAs") + " " + a.user.Name))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(a.user.Email))
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("o: " + a.msgs.T("login.logout")))
		return b.String()
	}

	if a.busy {
		b.WriteString(styles.Muted.Render(a.msgs.T("feed.loading")))
		return b.String()
	}

	b.WriteString(renderInput(a.msgs.T("login.email"), a.email, a.field == accountEmail, false))
	b.WriteByte('\n')
	b.WriteString(renderInput(a.msgs.T("login.password"), a.password, a.field == accountPassword, true))
	b.WriteString("\n\n")

	if a.errText != "" {
		b.WriteString(styles.StatusError.Render(a.errText))
		b.WriteByte('\n')
	}
	b.WriteString(styles.Muted.Render("enter: " + a.msgs.T("login.login")))
	return b.String()
}

func renderInput(label, value string, active, mask bool) string {
	if mask {
		value = strings.Repeat("*", len([]rune(value)))
	}
	marker := "  "
	if active {
		marker = "> "
		value += "_"
	}
	return marker + styles.FieldLabel.Render(padRight(label, 14)) + styles.FieldValue.Render(value)
}
