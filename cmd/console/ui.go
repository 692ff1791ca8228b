package main

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/casefile-games/mystery-engine/pkg/engine"
	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

const PlaceHolderText = "Type a number or command..."

// transcript entry roles
const (
	roleTitle = iota
	roleNarration
	rolePlayer
	roleSpeaker
	roleCue
	roleError
)

type transcriptEntry struct {
	role    int
	speaker string
	text    string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config *ConsoleConfig
	client *http.Client
	game   *game.Game
	state  *session.State

	transcript   []transcriptEntry
	entries      []menuEntry
	lastNodeKey  string
	openPuzzleID string
	accuseOpen   bool

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

// menuEntry is one numbered choice the player can pick.
type menuEntry struct {
	label  string
	action engine.Action
}

type actionResultMsg struct {
	resp *ActionResponse
	err  error
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

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	cueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

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
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, g *game.Game, st *session.State) ConsoleUI {
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

	m := ConsoleUI{
		config:       cfg,
		client:       client,
		game:         g,
		state:        st,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
	}
	m.renderScene()
	m.buildEntries()
	return m
}

func (m *ConsoleUI) text(l game.Localized) string {
	return l.Resolve(m.config.Language)
}

func (m *ConsoleUI) itemName(id string) string {
	if it, ok := m.game.Item(id); ok {
		return m.text(it.Name)
	}
	return id
}

func (m *ConsoleUI) npcName(id string) string {
	if n, ok := m.game.NPC(id); ok {
		return m.text(n.Name)
	}
	return id
}

func (m *ConsoleUI) append(role int, speaker, text string) {
	m.transcript = append(m.transcript, transcriptEntry{role: role, speaker: speaker, text: text})
}

// renderScene appends the current scene's header and description.
func (m *ConsoleUI) renderScene() {
	scene, ok := m.game.Scene(m.state.CurrentSceneID)
	if !ok {
		return
	}
	m.append(roleTitle, "", strings.ToUpper(m.text(scene.Name)))
	if desc := m.text(scene.DescriptionText); desc != "" {
		m.append(roleNarration, "", desc)
	}
}

// renderDialogueNode appends the active node's NPC line.
func (m *ConsoleUI) renderDialogueNode() {
	npc, ok := m.game.NPC(m.state.ActiveDialogueNPCID)
	if !ok {
		return
	}
	node, ok := npc.Node(m.state.ActiveDialogueNodeID)
	if !ok {
		return
	}
	m.append(roleSpeaker, m.text(npc.Name), m.text(node.Text))
}

// buildEntries recomputes the numbered menu for the current state.
func (m *ConsoleUI) buildEntries() {
	m.entries = nil

	if m.state.IsGameFinished {
		return
	}

	if m.accuseOpen {
		ids := make([]string, 0, len(m.game.NPCs))
		for id := range m.game.NPCs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			m.entries = append(m.entries, menuEntry{
				label:  m.npcName(id),
				action: engine.SubmitAccusation{NPCID: id},
			})
		}
		return
	}

	if m.state.InDialogue() {
		npc, ok := m.game.NPC(m.state.ActiveDialogueNPCID)
		if !ok {
			return
		}
		node, ok := npc.Node(m.state.ActiveDialogueNodeID)
		if !ok {
			return
		}
		for i := range node.Options {
			label := m.text(node.Options[i].Text)
			if !engine.OptionSelectable(&node.Options[i], m.state) {
				label += " [locked]"
			}
			m.entries = append(m.entries, menuEntry{
				label:  label,
				action: engine.SelectDialogueOption{OptionIndex: i},
			})
		}
		return
	}

	scene, ok := m.game.Scene(m.state.CurrentSceneID)
	if !ok {
		return
	}
	for i := range scene.Hotspots {
		hs := &scene.Hotspots[i]
		if hs.IsSubAction {
			continue
		}
		if hs.InitialHidden && !m.state.HasRevealed(hs.ID) {
			continue
		}
		m.entries = append(m.entries, menuEntry{
			label:  m.text(hs.Label),
			action: engine.TriggerHotspot{HotspotID: hs.ID},
		})
	}
	for i := range scene.Exits {
		ex := &scene.Exits[i]
		label := m.text(ex.Label)
		if label == "" {
			if target, ok := m.game.Scene(ex.TargetSceneID); ok {
				label = "Go to " + m.text(target.Name)
			} else {
				label = ex.ID
			}
		}
		m.entries = append(m.entries, menuEntry{
			label:  label,
			action: engine.TriggerExit{ExitID: ex.ID},
		})
	}
	for _, cfg := range scene.NPCConfigs {
		m.entries = append(m.entries, menuEntry{
			label:  "Talk to " + m.npcName(cfg.NPCID),
			action: engine.TalkToNPC{NPCID: cfg.NPCID},
		})
	}
}

// applyResult folds an action or chat response into the UI.
func (m *ConsoleUI) applyResult(resp *ActionResponse) {
	m.state = resp.State

	for _, e := range resp.Effects {
		switch e.Type {
		case engine.EffectShowMessage:
			if m.state.InDialogue() {
				m.append(roleSpeaker, m.npcName(m.state.ActiveDialogueNPCID), e.Message)
			} else {
				m.append(roleNarration, "", e.Message)
			}
		case engine.EffectShowShake:
			m.append(roleCue, "", "*shake*")
		case engine.EffectShowFlash:
			m.append(roleCue, "", "*flash*")
		case engine.EffectItemObtained:
			m.append(roleCue, "", "You obtained: "+m.itemName(e.ItemID))
		case engine.EffectOpenExamine:
			// The narration arrives as its own message effect.
		case engine.EffectOpenPuzzle:
			m.openPuzzleID = e.HotspotID
			if scene, ok := m.game.Scene(m.state.CurrentSceneID); ok {
				if hs, ok := scene.Hotspot(e.HotspotID); ok && hs.PuzzlePrompt != nil {
					m.append(roleNarration, "", m.text(*hs.PuzzlePrompt))
				}
			}
			m.append(roleCue, "", "Enter the answer with: answer <text>")
		case engine.EffectClosePuzzle:
			m.openPuzzleID = ""
		case engine.EffectSceneChanged:
			m.renderScene()
		case engine.EffectDialogueOpened:
			// The node line renders below via lastNodeKey.
		case engine.EffectDialogueClosed:
			m.append(roleCue, "", "(the conversation ends)")
		case engine.EffectOpenAccusation:
			m.accuseOpen = true
			m.append(roleTitle, "", "WHO IS THE KILLER?")
			m.append(roleCue, "", "Pick a suspect by number, or type close to step back.")
		case engine.EffectGameEnded:
			m.accuseOpen = false
			m.openPuzzleID = ""
			m.renderConclusion(e.Ending)
		}
	}

	// Dialogue advanced without a dedicated effect when an option was
	// selected; render the node whenever its identity changed.
	nodeKey := ""
	if m.state.InDialogue() {
		nodeKey = m.state.ActiveDialogueNPCID + "|" + m.state.ActiveDialogueNodeID
	}
	if nodeKey != "" && nodeKey != m.lastNodeKey {
		m.renderDialogueNode()
	}
	m.lastNodeKey = nodeKey

	m.buildEntries()
}

func (m *ConsoleUI) renderConclusion(ending game.EndingType) {
	c := m.game.Conclusion
	switch ending {
	case game.EndingSuccess:
		if c != nil {
			m.append(roleTitle, "", m.text(c.SuccessTitle))
			m.append(roleNarration, "", m.text(c.SuccessBody))
			if sol := m.text(c.MysterySolution); sol != "" {
				m.append(roleNarration, "", sol)
			}
		} else {
			m.append(roleTitle, "", "CASE CLOSED")
		}
	default:
		if c != nil {
			m.append(roleTitle, "", m.text(c.FailureTitle))
			m.append(roleNarration, "", m.text(c.FailureBody))
		} else {
			m.append(roleTitle, "", "CASE LOST")
		}
	}
	m.append(roleCue, "", "Type restart to investigate again.")
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CASE FILE") + "\n\n")
	content.WriteString(m.text(m.game.Title) + "\n\n")

	if scene, ok := m.game.Scene(m.state.CurrentSceneID); ok {
		content.WriteString("Location:\n")
		content.WriteString(m.text(scene.Name) + "\n\n")
	}

	switch {
	case m.state.IsGameFinished:
		content.WriteString("The case is closed.\n\n")
	case m.accuseOpen:
		content.WriteString("Suspects:\n")
	case m.state.InDialogue():
		content.WriteString("Say:\n")
	default:
		content.WriteString("Actions:\n")
	}
	for i, e := range m.entries {
		content.WriteString(fmt.Sprintf("%2d. %s\n", i+1, e.label))
	}
	content.WriteString("\n")

	content.WriteString("Inventory:\n")
	if len(m.state.Inventory) == 0 {
		content.WriteString("(empty)\n")
	}
	for i, id := range m.state.Inventory {
		name := m.itemName(id)
		if it, ok := m.game.Item(id); ok && it.IsCrucialEvidence {
			name += " *"
		}
		content.WriteString(fmt.Sprintf("%2d. %s\n", i+1, name))
	}
	held, total := engine.EvidenceProgress(m.game, m.state)
	content.WriteString(fmt.Sprintf("\nEvidence: %d/%d\n\n", held, total))

	content.WriteString("Commands:\n")
	content.WriteString("• <n>: Pick action n\n")
	content.WriteString("• back: Previous scene\n")
	content.WriteString("• inspect <n>: Look at item\n")
	content.WriteString("• combine <n> <m>\n")
	if m.state.InDialogue() {
		content.WriteString("• say <text>: Ask freely\n")
	}
	if m.openPuzzleID != "" {
		content.WriteString("• answer <text>\n")
	}
	content.WriteString("• accuse: Name the killer\n")
	content.WriteString("• close: Dismiss\n")
	content.WriteString("• copy: Copy transcript\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

// writeChatContent reformats the transcript for the current viewport
// width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.text(m.game.Title))) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, entry := range m.transcript {
		switch entry.role {
		case roleTitle:
			content.WriteString(titleStyle.Render(entry.text) + "\n\n")
		case roleNarration:
			content.WriteString(narratorStyle.Render(wordwrap.String(entry.text, chatWidth)) + "\n\n")
		case rolePlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(entry.text, chatWidth-6) + "\n\n")
		case roleSpeaker:
			content.WriteString(speakerStyle.Render(entry.speaker+": ") + wordwrap.String(entry.text, chatWidth-6) + "\n\n")
		case roleCue:
			content.WriteString(cueStyle.Render(wordwrap.String(entry.text, chatWidth)) + "\n\n")
		case roleError:
			content.WriteString(errorStyle.Render("Error: "+wordwrap.String(entry.text, chatWidth-8)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// plainTranscript renders the transcript without styling, for the
// clipboard.
func (m *ConsoleUI) plainTranscript() string {
	var b strings.Builder
	for _, entry := range m.transcript {
		switch entry.role {
		case rolePlayer:
			b.WriteString("You: " + entry.text + "\n")
		case roleSpeaker:
			b.WriteString(entry.speaker + ": " + entry.text + "\n")
		default:
			b.WriteString(entry.text + "\n")
		}
	}
	return b.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		chatWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.handleInput(input)
		}

	case actionResultMsg:
		m.loading = false
		if msg.err != nil {
			m.append(roleError, "", msg.err.Error())
		} else {
			m.applyResult(msg.resp)
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// handleInput parses one line of player input into an action, a chat
// message, or a local command.
func (m ConsoleUI) handleInput(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	// Bare number: pick a menu entry.
	if n, err := strconv.Atoi(cmd); err == nil {
		if n < 1 || n > len(m.entries) {
			m.append(roleError, "", fmt.Sprintf("No action %d", n))
			m.writeChatContent()
			return m, nil
		}
		entry := m.entries[n-1]
		m.append(rolePlayer, "", entry.label)
		if _, ok := entry.action.(engine.SubmitAccusation); ok {
			m.accuseOpen = false
		}
		return m.dispatch(entry.action)
	}

	switch cmd {
	case "back":
		return m.dispatch(engine.GoBack{})

	case "restart":
		m.accuseOpen = false
		m.openPuzzleID = ""
		m.lastNodeKey = ""
		return m.dispatch(engine.Restart{})

	case "accuse":
		return m.dispatch(engine.OpenAccusation{})

	case "close":
		switch {
		case m.accuseOpen:
			m.accuseOpen = false
			m.buildEntries()
			m.metaViewport.SetContent(m.writeMetadata())
			return m, nil
		case m.openPuzzleID != "":
			m.openPuzzleID = ""
			m.metaViewport.SetContent(m.writeMetadata())
			return m, nil
		case m.state.InspectedItemID != "":
			return m.dispatch(engine.CloseInspect{})
		case m.state.InDialogue():
			return m.dispatch(engine.CloseDialogue{})
		}
		return m, nil

	case "inspect":
		if len(fields) != 2 {
			m.append(roleError, "", "Usage: inspect <item number>")
			m.writeChatContent()
			return m, nil
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > len(m.state.Inventory) {
			m.append(roleError, "", "No such inventory item")
			m.writeChatContent()
			return m, nil
		}
		itemID := m.state.Inventory[n-1]
		if item, ok := m.game.Item(itemID); ok {
			m.append(roleTitle, "", m.text(item.Name))
			m.append(roleNarration, "", m.text(item.Description))
		}
		return m.dispatch(engine.InspectItem{ItemID: itemID})

	case "combine":
		if len(fields) != 3 {
			m.append(roleError, "", "Usage: combine <n> <m>")
			m.writeChatContent()
			return m, nil
		}
		a, errA := strconv.Atoi(fields[1])
		b, errB := strconv.Atoi(fields[2])
		if errA != nil || errB != nil ||
			a < 1 || a > len(m.state.Inventory) ||
			b < 1 || b > len(m.state.Inventory) || a == b {
			m.append(roleError, "", "Pick two different inventory items by number")
			m.writeChatContent()
			return m, nil
		}
		idA, idB := m.state.Inventory[a-1], m.state.Inventory[b-1]
		m.append(rolePlayer, "", fmt.Sprintf("Combine %s + %s", m.itemName(idA), m.itemName(idB)))
		return m.dispatch(engine.CombineItems{ItemA: idA, ItemB: idB})

	case "answer":
		if m.openPuzzleID == "" {
			m.append(roleError, "", "No puzzle is open")
			m.writeChatContent()
			return m, nil
		}
		answer := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		m.append(rolePlayer, "", answer)
		return m.dispatch(engine.SubmitPuzzleAnswer{HotspotID: m.openPuzzleID, Answer: answer})

	case "say":
		if !m.state.InDialogue() {
			m.append(roleError, "", "There is nobody to talk to")
			m.writeChatContent()
			return m, nil
		}
		message := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		if message == "" {
			return m, nil
		}
		m.append(rolePlayer, "", message)
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.sendChat(message), progressTick())

	case "copy":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			m.append(roleError, "", "Clipboard unavailable: "+err.Error())
		} else {
			m.append(roleCue, "", "Transcript copied to clipboard.")
		}
		m.writeChatContent()
		return m, nil

	case "/help":
		m.append(roleCue, "", helpText)
		m.writeChatContent()
		return m, nil
	}

	m.append(roleError, "", "Unknown command. Type /help for a list.")
	m.writeChatContent()
	return m, nil
}

const helpText = `Pick numbered actions from the right panel.
back          return to the previous scene
inspect <n>   look at an inventory item
combine <n> <m>  try combining two items
say <text>    ask the person you are talking to anything
answer <text> answer an open puzzle
accuse        open the accusation, once all evidence (*) is held
close         dismiss a dialogue, puzzle or item view
restart       start the case over`

// dispatch posts an action and starts the loading animation.
func (m ConsoleUI) dispatch(a engine.Action) (tea.Model, tea.Cmd) {
	m.loading = true
	m.progressTick = 0
	m.writeChatContent()
	return m, tea.Batch(m.sendAction(a), progressTick())
}

func (m ConsoleUI) sendAction(a engine.Action) tea.Cmd {
	return func() tea.Msg {
		resp, err := postAction(m.client, m.config.APIBaseURL, m.state.ID, a)
		return actionResultMsg{resp, err}
	}
}

func (m ConsoleUI) sendChat(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := postChat(m.client, m.config.APIBaseURL, m.state.ID, message)
		return actionResultMsg{resp, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
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
	content.WriteString(modalTitleStyle.Render("Leave the Case?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved on the server.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
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
		usable = 30
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
