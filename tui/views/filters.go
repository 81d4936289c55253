package views

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"beyt_client/i18n"
	"beyt_client/listings"
	"beyt_client/tui/styles"
)

// FiltersAppliedMsg carries a wholesale replacement of the filter set back
// to the root model.
type FiltersAppliedMsg struct {
	Filters listings.Filters
}

type filterField int

const (
	fieldLocation filterField = iota
	fieldType
	fieldStatus
	fieldBeds
	fieldBaths
	fieldSort
	fieldPriceFrom
	fieldPriceTo
	fieldCount
)

var statusChoices = []string{"", "rent", "sale"}
var sortChoices = []string{"", "price_asc", "price_desc", "newest"}

type FilterBar struct {
	msgs    *i18n.Bundle
	types   []string // known property types, from common data
	working listings.Filters
	field   filterField
	editing bool
	input   string
	width   int
}

func NewFilterBar(msgs *i18n.Bundle) FilterBar {
	return FilterBar{msgs: msgs}
}

// SetPropertyTypes installs the server's known types for the type picker.
func (v FilterBar) SetPropertyTypes(types []string) FilterBar {
	v.types = types
	return v
}

func (v FilterBar) SetSize(w, _ int) FilterBar {
	v.width = w
	return v
}

func (v FilterBar) Update(msg tea.Msg) (FilterBar, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.editing {
		return v.updateEditing(key)
	}

	switch key.String() {
	case "up", "k":
		if v.field > 0 {
			v.field--
		}
	case "down", "j":
		if v.field < fieldCount-1 {
			v.field++
		}
	case "left", "h":
		v.cycle(-1)
	case "right", "l":
		v.cycle(1)
	case "enter":
		if v.field == fieldLocation || v.field == fieldPriceFrom || v.field == fieldPriceTo {
			v.editing = true
			v.input = v.currentText()
		}
	case "backspace", "x":
		v.clearCurrent()
	case "c":
		v.working = listings.Filters{}
	case "a":
		applied := v.working
		return v, func() tea.Msg { return FiltersAppliedMsg{Filters: applied} }
	}
	return v, nil
}

func (v FilterBar) updateEditing(key tea.KeyMsg) (FilterBar, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		v.commitText()
		v.editing = false
	case tea.KeyEsc:
		v.editing = false
	case tea.KeyBackspace:
		if len(v.input) > 0 {
			runes := []rune(v.input)
			v.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		v.input += " "
	case tea.KeyRunes:
		v.input += string(key.Runes)
	}
	return v, nil
}

func (v *FilterBar) currentText() string {
	switch v.field {
	case fieldLocation:
		return v.working.Location
	case fieldPriceFrom:
		if v.working.PriceFrom == 0 {
			return ""
		}
		return strconv.Itoa(v.working.PriceFrom)
	case fieldPriceTo:
		if v.working.PriceTo == 0 {
			return ""
		}
		return strconv.Itoa(v.working.PriceTo)
	}
	return ""
}

func (v *FilterBar) commitText() {
	switch v.field {
	case fieldLocation:
		v.working.Location = strings.TrimSpace(v.input)
	case fieldPriceFrom:
		v.working.PriceFrom, _ = strconv.Atoi(strings.TrimSpace(v.input))
	case fieldPriceTo:
		v.working.PriceTo, _ = strconv.Atoi(strings.TrimSpace(v.input))
	}
}

// cycle steps a choice field through its options. Counts step between 0
// (unset) and 10.
func (v *FilterBar) cycle(dir int) {
	switch v.field {
	case fieldType:
		v.working.Types = cycleTypes(v.working.Types, v.types, dir)
	case fieldStatus:
		v.working.Status = cycleChoice(v.working.Status, statusChoices, dir)
	case fieldSort:
		v.working.SortBy = cycleChoice(v.working.SortBy, sortChoices, dir)
	case fieldBeds:
		v.working.Beds = clampCount(v.working.Beds + dir)
	case fieldBaths:
		v.working.Baths = clampCount(v.working.Baths + dir)
	}
}

func (v *FilterBar) clearCurrent() {
	switch v.field {
	case fieldLocation:
		v.working.Location = ""
	case fieldType:
		v.working.Types = nil
	case fieldStatus:
		v.working.Status = ""
	case fieldBeds:
		v.working.Beds = 0
	case fieldBaths:
		v.working.Baths = 0
	case fieldSort:
		v.working.SortBy = ""
	case fieldPriceFrom:
		v.working.PriceFrom = 0
	case fieldPriceTo:
		v.working.PriceTo = 0
	}
}

func cycleChoice(current string, choices []string, dir int) string {
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(choices)) % len(choices)
	return choices[idx]
}

// cycleTypes toggles through: all unset, then each single type in turn.
func cycleTypes(current, known []string, dir int) []string {
	if len(known) == 0 {
		return nil
	}
	idx := -1
	if len(current) == 1 {
		for i, t := range known {
			if t == current[0] {
				idx = i
				break
			}
		}
	}
	idx += dir
	if idx < -1 {
		idx = len(known) - 1
	}
	if idx >= len(known) {
		idx = -1
	}
	if idx == -1 {
		return nil
	}
	return []string{known[idx]}
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

func (v FilterBar) View() string {
	rows := []struct {
		field filterField
		label string
		value string
	}{
		{fieldLocation, v.msgs.T("filters.location"), v.working.Location},
		{fieldType, v.msgs.T("filters.type"), strings.Join(v.working.Types, ", ")},
		{fieldStatus, v.msgs.T("filters.status"), v.working.Status},
		{fieldBeds, v.msgs.T("filters.beds"), countLabel(v.working.Beds)},
		{fieldBaths, v.msgs.T("filters.baths"), countLabel(v.working.Baths)},
		{fieldSort, v.msgs.T("filters.sortBy"), v.working.SortBy},
		{fieldPriceFrom, v.msgs.T("filters.priceFrom"), countLabel(v.working.PriceFrom)},
		{fieldPriceTo, v.msgs.T("filters.priceTo"), countLabel(v.working.PriceTo)},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(v.msgs.T("filters.title")))
	b.WriteString("\n\n")

	for _, row := range rows {
		marker := "  "
		value := row.value
		if row.field == v.field {
			marker = "> "
			if v.editing {
				value = v.input + "_"
			}
		}
		if value == "" {
			value = "—"
		}
		b.WriteString(marker)
		b.WriteString(styles.FieldLabel.Render(padRight(row.label, 14)))
		b.WriteString(styles.FieldValue.Render(value))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("a: " + v.msgs.T("filters.apply") + "  c: " + v.msgs.T("filters.clear")))
	return b.String()
}

func countLabel(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func padRight(s string, width int) string {
	for len([]rune(s)) < width {
		s += " "
	}
	return s
}
