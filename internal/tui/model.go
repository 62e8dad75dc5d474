// Package tui renders one ad placement in the terminal. It is a thin
// presentation shell over widget.Controller: every keypress maps to a
// controller action and the view is drawn from the latest Snapshot.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coinworks/adwidget/internal/domain"
	"github.com/coinworks/adwidget/internal/widget"
)

// defaultRewardCredits is what the reward surface grants on claim; the
// real platform's reward modal decides the amount.
const defaultRewardCredits = 5

type refreshMsg struct{}

type tickMsg time.Time

// Model is the bubbletea model for one placement.
type Model struct {
	ctrl   *widget.Controller
	styles Styles

	width     int
	optionIdx int
	showInfo  bool
	quitting  bool
}

// NewModel creates the placement model.
func NewModel(ctrl *widget.Controller) Model {
	return Model{ctrl: ctrl, styles: DefaultStyles(), width: 72}
}

// Init kicks off the ad fetch and the render tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Load(context.Background())
		return refreshMsg{}
	}
}

func (m Model) rewardCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.RequestReward(context.Background())
		return refreshMsg{}
	}
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.SubmitAnswer(context.Background())
		return refreshMsg{}
	}
}

// tick keeps the view fresh while delayed flow transitions are pending.
func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		return m, tick()
	case refreshMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	snap := m.ctrl.Snapshot()

	switch snap.Flow {
	case widget.FlowQuizShown:
		return m.handleQuizKey(msg, snap)
	case widget.FlowRewardShown:
		switch msg.String() {
		case "c", "enter":
			m.ctrl.ClaimReward(defaultRewardCredits)
		case "esc":
			m.ctrl.DismissReward()
		}
		return m, nil
	case widget.FlowQuizLoading:
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.ctrl.CloseWidget()
		m.quitting = true
		return m, tea.Quit
	case "f":
		m.ctrl.FindOutMore()
	case "v":
		m.ctrl.VisitWebsite()
	case "s":
		m.ctrl.Skip()
	case "i":
		m.showInfo = !m.showInfo
	case "r":
		if snap.Phase == widget.PhaseReady && snap.RewardEligible {
			return m, m.rewardCmd()
		}
	case "R":
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) handleQuizKey(msg tea.KeyMsg, snap widget.Snapshot) (tea.Model, tea.Cmd) {
	multiple := snap.Quiz != nil && snap.Quiz.Type == domain.QuestionMultiple && len(snap.Quiz.Options) > 0

	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelQuiz()
		m.optionIdx = 0
		return m, nil
	case tea.KeyEnter:
		if snap.CanSubmit() {
			return m, m.submitCmd()
		}
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if !multiple {
			return m, nil
		}
		if msg.Type == tea.KeyUp && m.optionIdx > 0 {
			m.optionIdx--
		}
		if msg.Type == tea.KeyDown && m.optionIdx < len(snap.Quiz.Options)-1 {
			m.optionIdx++
		}
		m.ctrl.SelectOption(snap.Quiz.Options[m.optionIdx])
		return m, nil
	case tea.KeyBackspace:
		if !multiple && snap.Answer != "" {
			m.ctrl.SetAnswer(snap.Answer[:len(snap.Answer)-1])
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		if !multiple {
			m.ctrl.SetAnswer(snap.Answer + msg.String())
		}
		return m, nil
	}
	return m, nil
}

// View renders the placement.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.ctrl.Snapshot()

	var body string
	switch {
	case snap.Flow == widget.FlowQuizLoading:
		body = m.styles.Body.Render("Loading quiz question...")
	case snap.Flow == widget.FlowQuizShown:
		body = m.viewQuiz(snap)
	case snap.Flow == widget.FlowRewardShown:
		body = m.viewReward(snap)
	case snap.Phase == widget.PhaseLoading:
		body = m.styles.Body.Render("Loading advertisement...")
	case snap.Phase == widget.PhaseError:
		body = m.viewError(snap)
	case snap.Phase == widget.PhaseEmpty:
		body = m.viewEmpty()
	default:
		body = m.viewAd(snap)
	}

	header := m.styles.Badge.Render("Advertisement")
	return m.styles.Frame.Width(min(m.width-2, 76)).Render(header + "\n\n" + body)
}

func (m Model) viewError(snap widget.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.ErrorBox.Render("Error Loading Ad"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render(snap.Err))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("R reload · q close"))
	return b.String()
}

func (m Model) viewEmpty() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("No Ads Available"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render("Nothing to show right now. Enjoy the ad-free moment."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("R reload · q close"))
	return b.String()
}

func (m Model) viewAd(snap widget.Snapshot) string {
	ad := snap.Ad
	var b strings.Builder

	if ad.MediaURL != "" {
		b.WriteString(m.styles.Disabled.Render(mediaBanner(snap.Media, ad.MediaURL)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Title.Render(ad.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Body.Render(ad.Description))
	b.WriteString("\n\n")

	var actions []string
	if ad.FindOutMoreLink != "" {
		actions = append(actions, m.styles.Action.Render("f")+" find out more")
	}
	if snap.RewardEligible {
		actions = append(actions, m.styles.Action.Render("r")+" reward")
	}
	if ad.Link != "" {
		actions = append(actions, m.styles.Action.Render("v")+" visit site")
	}
	actions = append(actions, m.styles.Action.Render("s")+" skip")
	if ad.Advertiser != nil {
		actions = append(actions, m.styles.Action.Render("i")+" advertiser info")
	}
	actions = append(actions, m.styles.Action.Render("q")+" close")
	b.WriteString(m.styles.Help.Render(strings.Join(actions, " · ")))

	if m.showInfo && ad.Advertiser != nil {
		b.WriteString("\n\n")
		b.WriteString(m.viewAdvertiser(ad.Advertiser))
	}
	return b.String()
}

func (m Model) viewAdvertiser(a *domain.Advertiser) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Advertiser Information"))
	b.WriteString("\n")
	rows := []struct{ label, value string }{
		{"Business", a.BusinessName},
		{"Email", a.Email},
		{"Country", a.Country},
		{"State", a.State},
		{"City", a.City},
	}
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "N/A"
		}
		b.WriteString(m.styles.Body.Render(fmt.Sprintf("%-10s %s", row.label, value)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewQuiz(snap widget.Snapshot) string {
	q := snap.Quiz
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Answer to Earn a Reward"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render(q.Question))
	b.WriteString("\n\n")

	if q.Type == domain.QuestionMultiple && len(q.Options) > 0 {
		for i, opt := range q.Options {
			marker := "( )"
			style := m.styles.Body
			if opt == snap.SelectedOption {
				marker = "(x)"
				style = m.styles.Selected
			}
			cursor := "  "
			if i == m.optionIdx {
				cursor = "> "
			}
			b.WriteString(style.Render(cursor + marker + " " + opt))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.styles.Body.Render("Answer: " + snap.Answer + "▌"))
		b.WriteString("\n")
	}

	if snap.Result != nil {
		b.WriteString("\n")
		if snap.Result.Correct {
			b.WriteString(m.styles.Correct.Render(snap.Result.Message))
		} else {
			b.WriteString(m.styles.Incorrect.Render(snap.Result.Message))
		}
		b.WriteString("\n")
	}
	if snap.SubmitErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Incorrect.Render(snap.SubmitErr + " (press enter to retry)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	submit := m.styles.Disabled.Render("enter submit")
	if snap.CanSubmit() {
		submit = m.styles.Action.Render("enter") + " submit"
	}
	b.WriteString(m.styles.Help.Render(submit + " · esc cancel"))
	return b.String()
}

func (m Model) viewReward(snap widget.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Reward Unlocked!"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render(fmt.Sprintf("Claim %d coins for engaging with this ad.", defaultRewardCredits)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(m.styles.Action.Render("c") + " claim · esc dismiss"))
	return b.String()
}

func mediaBanner(kind domain.MediaKind, url string) string {
	switch kind {
	case domain.MediaVideo:
		return "[video] " + url
	case domain.MediaAudio:
		return "[audio] " + url
	case domain.MediaImage:
		return "[image] " + url
	default:
		return url
	}
}
