package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beyt_client/i18n"
	"beyt_client/listings"
	"beyt_client/models"
	"beyt_client/tui/styles"
)

// FeedUpdatedMsg signals that the fetcher's state changed and the feed
// should re-render from a fresh snapshot.
type FeedUpdatedMsg struct{}

// fetchMoreThreshold is how close to the end the cursor may get before the
// next page is requested.
const fetchMoreThreshold = 3

type Feed struct {
	fetcher       *listings.Fetcher
	msgs          *i18n.Bundle
	width, height int
	cursor        int
	snap          listings.Snapshot
}

func NewFeed(fetcher *listings.Fetcher, msgs *i18n.Bundle) Feed {
	return Feed{fetcher: fetcher, msgs: msgs}
}

func (f Feed) Init() tea.Cmd {
	return f.fetchFirst()
}

func (f Feed) SetSize(w, h int) Feed {
	f.width = w
	f.height = h
	return f
}

func (f Feed) fetchFirst() tea.Cmd {
	fetcher := f.fetcher
	return func() tea.Msg {
		fetcher.FetchFirst(context.Background())
		return FeedUpdatedMsg{}
	}
}

func (f Feed) fetchMore() tea.Cmd {
	fetcher := f.fetcher
	return func() tea.Msg {
		fetcher.FetchMore(context.Background())
		return FeedUpdatedMsg{}
	}
}

func (f Feed) refetch() tea.Cmd {
	fetcher := f.fetcher
	return func() tea.Msg {
		fetcher.Refetch(context.Background())
		return FeedUpdatedMsg{}
	}
}

// ApplyFilters swaps the active query. A no-op when the normalized query is
// unchanged.
func (f Feed) ApplyFilters(flt listings.Filters) (Feed, tea.Cmd) {
	if !f.fetcher.SetFilters(flt) {
		return f, nil
	}
	f.cursor = 0
	f.snap = f.fetcher.Snapshot()
	return f, f.fetchFirst()
}

func (f Feed) Update(msg tea.Msg) (Feed, tea.Cmd) {
	switch msg := msg.(type) {
	case FeedUpdatedMsg:
		f.snap = f.fetcher.Snapshot()
		if f.cursor >= len(f.snap.Items) {
			f.cursor = len(f.snap.Items) - 1
		}
		if f.cursor < 0 {
			f.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case "down", "j":
			if f.cursor < len(f.snap.Items)-1 {
				f.cursor++
			}
			return f, f.maybeFetchMore()
		case "pgdown", "ctrl+d":
			f.cursor += 10
			if f.cursor >= len(f.snap.Items) {
				f.cursor = len(f.snap.Items) - 1
			}
			if f.cursor < 0 {
				f.cursor = 0
			}
			return f, f.maybeFetchMore()
		case "g", "home":
			f.cursor = 0
		case "G", "end":
			if len(f.snap.Items) > 0 {
				f.cursor = len(f.snap.Items) - 1
			}
			return f, f.maybeFetchMore()
		case "r":
			return f, f.retry()
		}
	}

	return f, nil
}

// maybeFetchMore issues the next page request once the cursor gets near the
// end of what has been fetched. The fetcher itself suppresses duplicates.
func (f Feed) maybeFetchMore() tea.Cmd {
	if !f.snap.HasMore {
		return nil
	}
	if f.cursor < len(f.snap.Items)-fetchMoreThreshold {
		return nil
	}
	return f.fetchMore()
}

// retry re-runs whatever failed: the first page when nothing is shown, the
// next page otherwise. With no error it refreshes the feed.
func (f Feed) retry() tea.Cmd {
	switch {
	case f.snap.State == listings.StateError && len(f.snap.Items) == 0:
		return f.fetchFirst()
	case f.snap.State == listings.StateError:
		return f.fetchMore()
	default:
		return f.refetch()
	}
}

func (f Feed) View() string {
	switch f.snap.State {
	case listings.StateIdle, listings.StateLoadingFirst:
		return styles.Muted.Render(f.msgs.T("feed.loading"))
	case listings.StateError:
		if len(f.snap.Items) == 0 {
			return styles.StatusError.Render(errorText(f.msgs, f.snap.Err)) +
				"\n" + styles.Muted.Render(f.msgs.T("feed.retry"))
		}
	}

	if len(f.snap.Items) == 0 {
		return styles.Muted.Render(f.msgs.T("feed.noPropertiesFound"))
	}

	visible := f.visibleRows()
	start := 0
	if f.cursor >= visible {
		start = f.cursor - visible + 1
	}
	end := start + visible
	if end > len(f.snap.Items) {
		end = len(f.snap.Items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(f.renderCard(&f.snap.Items[i], i == f.cursor))
		b.WriteByte('\n')
	}

	b.WriteString(f.footer())
	return b.String()
}

func (f Feed) renderCard(l *models.Listing, selected bool) string {
	title := l.Title
	if f.msgs.RTL() && l.TitleArabic != "" {
		title = l.TitleArabic
	}
	if title == "" {
		title = l.Type
	}

	price := l.Price
	if f.msgs.RTL() && l.PriceArabic != "" {
		price = l.PriceArabic
	}

	city := ""
	if l.Location != nil {
		city = l.Location.City
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.FieldValue.Render(title),
		"  ",
		styles.Price.Render(price),
	)
	line2 := styles.Muted.Render(fmt.Sprintf("%s · %s %s · %s %s · %s",
		city,
		l.Bedrooms, f.msgs.T("feed.bedrooms"),
		l.Bathrooms, f.msgs.T("feed.bathrooms"),
		l.Status,
	))

	card := line1 + "\n" + line2
	if selected {
		return styles.CardSelected.Width(f.width - 4).Render(card)
	}
	return styles.Card.Width(f.width - 4).Render(card)
}

func (f Feed) footer() string {
	switch {
	case f.snap.State == listings.StateLoadingMore:
		return styles.Muted.Render(f.msgs.T("feed.loadingMore"))
	case f.snap.State == listings.StateRefetching:
		return styles.Muted.Render(f.msgs.T("feed.loading"))
	case f.snap.State == listings.StateError:
		// Inline load-more error: earlier pages stay on screen.
		return styles.StatusError.Render(errorText(f.msgs, f.snap.Err)) +
			" " + styles.Muted.Render(f.msgs.T("feed.retry"))
	case !f.snap.HasMore:
		return styles.Muted.Render(f.msgs.T("feed.endOfResults"))
	default:
		return styles.Muted.Render(fmt.Sprintf("%d/%d · %d/%d",
			f.cursor+1, len(f.snap.Items), f.snap.LastPage, f.snap.TotalPages))
	}
}

// visibleRows estimates how many cards fit: each card takes four terminal
// lines with its border.
func (f Feed) visibleRows() int {
	rows := (f.height - 1) / 4
	if rows < 1 {
		return 1
	}
	return rows
}
