package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/engine"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

const (
	PlaceHolderText = "输入你的行动..."
	DefaultPlayer   = "林小满"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine       *engine.Engine
	session      *state.Session
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Start menu state
	showStartModal bool
	startOptions   []string
	selectedOption int

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type turnDoneMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(eng *engine.Engine) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	options := []string{"新的开始"}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if eng.HasSave(ctx) {
		options = append(options, "继续上次的故事")
	}
	cancel()

	return ConsoleUI{
		engine:         eng,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		ready:          false,
		showStartModal: true,
		startOptions:   options,
		selectedOption: 0,
	}
}

// speakerStyle returns the display style for a character id, using the
// character's catalog theme color.
func speakerStyle(characterID string) lipgloss.Style {
	if c, ok := catalog.Characters[characterID]; ok && c.ThemeColor != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.ThemeColor)).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
}

func formatMessage(msg state.Message, width int) string {
	switch msg.Type {
	case state.MessageSceneTransition:
		if scene, ok := catalog.SceneByID(msg.SceneID); ok {
			line := fmt.Sprintf("%s 来到了%s", scene.Icon, scene.Name)
			return separatorStyle.Render(line) + "\n" +
				promptStyle.Render(wordwrap.String(scene.Description, width))
		}
		return ""
	case state.MessageDayChange:
		if msg.DayInfo == nil {
			return ""
		}
		header := fmt.Sprintf("── 第 %d 天 · %s ──", msg.DayInfo.Day, msg.DayInfo.Chapter)
		return titleStyle.Render(header)
	}

	switch msg.Role {
	case chat.ChatRolePlayer:
		return userStyle.Render("你: ") + wordwrap.String(msg.Content, width-4)
	case chat.ChatRoleNarrator:
		return formatNarratorMessage(msg.Content, msg.Character, width)
	default:
		return systemStyle.Render(wordwrap.String(msg.Content, width))
	}
}

// formatNarratorMessage colors dialogue lines by the speaking character's
// theme color and wraps everything to the viewport width.
func formatNarratorMessage(content, characterID string, width int) string {
	wrapped := wordwrap.String(content, width)
	lines := strings.Split(wrapped, "\n")
	var formatted []string

	style := speakerStyle(characterID)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "【") {
			if idx := strings.Index(trimmed, "】"); idx > 0 {
				name := trimmed[:idx+len("】")]
				formatted = append(formatted, style.Render(name)+trimmed[idx+len("】"):])
				continue
			}
		}
		formatted = append(formatted, line)
	}
	return strings.Join(formatted, "\n")
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render(catalog.StoryInfo.Emoji+" "+catalog.StoryInfo.Title) + "\n\n")
	content.WriteString(catalog.StoryInfo.Subtitle + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	if m.session != nil {
		for _, msg := range m.session.Messages {
			block := formatMessage(msg, chatWidth)
			if block != "" {
				content.WriteString(block + "\n\n")
			}
		}

		if m.loading && m.session.StreamingContent != "" {
			content.WriteString(formatNarratorMessage(m.session.StreamingContent, m.session.CurrentCharacter, chatWidth) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func writeMetadata(s *state.Session) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("训练状态") + "\n\n")

	if s == nil {
		return content.String()
	}

	period := catalog.Periods[s.PeriodIndex]
	chapter := catalog.CurrentChapter(s.Day)
	content.WriteString(fmt.Sprintf("第 %d/%d 天 %s %s\n", s.Day, catalog.MaxDays, period.Icon, period.Name))
	content.WriteString(fmt.Sprintf("章节: %s\n", chapter.Name))
	content.WriteString(fmt.Sprintf("行动点: %d/%d\n\n", s.ActionPoints, catalog.MaxActionPoints))

	for _, meta := range catalog.GlobalStatMetas {
		content.WriteString(fmt.Sprintf("%s %s: %d\n", meta.Icon, meta.Label, s.Resources.Get(meta.Key)))
	}
	content.WriteString("\n")

	content.WriteString("关系:\n")
	for _, c := range sortedCharacters(s.Day) {
		for _, meta := range c.StatMetas {
			value := s.CharacterStats[c.ID][meta.Key]
			marker := ""
			if c.ID == s.CurrentCharacter {
				marker = " ◀"
			}
			content.WriteString(fmt.Sprintf("%s %s %d%s\n", meta.Icon, c.Name, value, marker))
		}
	}
	content.WriteString("\n")

	content.WriteString("背包:\n")
	hasItems := false
	for _, item := range catalog.Items {
		if count := s.Inventory[item.ID]; count > 0 {
			content.WriteString(fmt.Sprintf("%s %s ×%d\n", item.Icon, item.Name, count))
			hasItems = true
		}
	}
	if !hasItems {
		content.WriteString("空\n")
	}
	content.WriteString("\n")

	if s.EndingID != "" {
		if ending, ok := catalog.EndingByID(s.EndingID); ok {
			content.WriteString(titleStyle.Render("结局: "+ending.Name) + "\n\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: 退出\n")
	content.WriteString("• Enter: 发送\n")
	content.WriteString("• Ctrl+Y: 复制回复\n")
	content.WriteString("• /help: 帮助\n")

	return content.String()
}

// sortedCharacters returns the joined roster in join-day order.
func sortedCharacters(day int) []catalog.Character {
	available := catalog.AvailableCharacters(day)
	chars := make([]catalog.Character, 0, len(available))
	for _, c := range available {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool {
		if chars[i].JoinDay != chars[j].JoinDay {
			return chars[i].JoinDay < chars[j].JoinDay
		}
		return chars[i].ID < chars[j].ID
	})
	return chars
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showStartModal {
		return m.updateStartModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.session))
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			m.copyLastReply()
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			return m, tea.Batch(m.submitTurn(input), progressTick())
		}

	case turnDoneMsg:
		m.loading = false
		m.session = m.engine.Snapshot()
		m.writeChatContent()
		if msg.err != nil {
			m.err = msg.err
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		}
		m.chatViewport.GotoBottom()
		m.metaViewport.SetContent(writeMetadata(m.session))
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			// Pull the in-flight streaming text into the transcript.
			m.session = m.engine.Snapshot()
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) layout() {
	chatWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// copyLastReply puts the most recent narrator message on the clipboard.
func (m *ConsoleUI) copyLastReply() {
	if m.session == nil {
		return
	}
	for i := len(m.session.Messages) - 1; i >= 0; i-- {
		msg := m.session.Messages[i]
		if msg.Role == chat.ChatRoleNarrator && msg.Content != "" {
			_ = clipboard.WriteAll(msg.Content)
			return
		}
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimSpace(input))
	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - 显示帮助
• /scene <id> - 切换场景 (practice/stage/backstage/dormitory)
• /focus <名字> - 指定对话角色, 无参数则清除
• /use <item_id> - 使用道具
• /save - 保存进度
• /load - 读取存档
• Ctrl+Y - 复制最后一条回复
• Ctrl+C - 退出

玩法:
• 输入行动并按 Enter
• 每回合消耗 1 行动点, 3 个时段为一天
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case "/scene":
		m.engine.FocusScene(arg)
		m.refresh()

	case "/focus":
		if arg == "" {
			m.engine.FocusCharacter("")
		} else if id, ok := catalog.ShortNames[arg]; ok {
			m.engine.FocusCharacter(id)
		} else if c, ok := catalog.CharacterByName(arg); ok {
			m.engine.FocusCharacter(c.ID)
		}
		m.refresh()

	case "/use":
		m.engine.UseItem(arg)
		m.refresh()

	case "/save":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		m.engine.Save(ctx)
		cancel()
		m.refresh()

	case "/load":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		m.engine.Load(ctx)
		cancel()
		m.refresh()
	}

	m.textarea.Reset()
	return m, nil
}

func (m *ConsoleUI) refresh() {
	m.session = m.engine.Snapshot()
	m.writeChatContent()
	m.metaViewport.SetContent(writeMetadata(m.session))
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) submitTurn(message string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()
		return turnDoneMsg{err: m.engine.SubmitInput(ctx, message)}
	}
}

func (m ConsoleUI) updateStartModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedOption > 0 {
				m.selectedOption--
			}
		case tea.KeyDown:
			if m.selectedOption < len(m.startOptions)-1 {
				m.selectedOption++
			}
		case tea.KeyEnter:
			if m.startOptions[m.selectedOption] == "继续上次的故事" {
				m.engine.Start(DefaultPlayer)
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				m.engine.Load(ctx)
				cancel()
			} else {
				m.engine.Start(DefaultPlayer)
			}
			m.showStartModal = false
			m.session = m.engine.Snapshot()
			if m.width > 0 && m.height > 0 {
				m.layout()
			}
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.session))
			m.textarea.Focus()
			m.ready = true
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("退出游戏?"))
	content.WriteString("\n\n")
	content.WriteString("确定要离开练习生活吗?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderStartModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(catalog.StoryInfo.Emoji + " " + catalog.StoryInfo.Title))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(catalog.StoryInfo.Description, 52))
	content.WriteString("\n\n")

	for i, option := range m.startOptions {
		if i == m.selectedOption {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", option)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", option)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showStartModal {
		return m.renderStartModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.72) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
