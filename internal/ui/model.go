package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"hunterprice/internal/activity"
	"hunterprice/internal/catalog"
	"hunterprice/internal/config"
	"hunterprice/internal/domain"
	"hunterprice/internal/eventbus"
	"hunterprice/internal/listing"
	"hunterprice/internal/log"
	"hunterprice/internal/scroll"
	"hunterprice/internal/suggest"
	"hunterprice/internal/ui/input"
	inputtypes "hunterprice/internal/ui/input/types"
	"hunterprice/internal/ui/logic"
	"hunterprice/internal/ui/views"
)

// maxHistory bounds the back stack
const maxHistory = 50

// Catalog is the part of the storefront API the UI talks to
type Catalog interface {
	listing.PageFetcher
	ProductPage(ctx context.Context, productID string) (catalog.ProductPage, error)
	PriceHistory(ctx context.Context, productID string) ([]domain.PricePoint, error)
	SetLiked(ctx context.Context, productID string, liked bool) error
	Rate(ctx context.Context, productID string, stars int) error
	Subcategories(ctx context.Context, categoryID int) ([]domain.Category, error)
	CategoryProducts(ctx context.Context, categoryID int) ([]domain.ProductSummary, error)
	CategoryPriceHistory(ctx context.Context, categoryID int) ([]domain.CategoryPricePoint, error)
	Favorites(ctx context.Context) ([]domain.ProductSummary, error)
}

// Options holds the dependencies of a Model
type Options struct {
	Context     context.Context
	Config      *config.Config
	Bus         eventbus.EventBus
	Catalog     Catalog
	Suggestions suggest.Source // defaults to Catalog when it can suggest
	User        *domain.CurrentUser
	Activity    activity.Tracker // optional
}

// navEntry is a screen on the back stack
type navEntry struct {
	screen    inputtypes.Screen
	productID string
}

// Model represents the UI state
type Model struct {
	ctx         context.Context
	bus         eventbus.EventBus
	config      *config.Config
	catalog     Catalog
	suggestions suggest.Source
	user        *domain.CurrentUser
	activity    activity.Tracker
	logger      zerolog.Logger

	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	overlay     string // help or report shown in place of the screen
	inPagerMode bool

	screen  inputtypes.Screen
	history []navEntry

	// Search box
	box      *suggest.Box
	debounce time.Duration

	// Search results
	results    *listing.Controller
	resultsNav *logic.Navigator
	signal     *scroll.Signal
	lease      scroll.Lease

	product    productScreen
	productSeq uint64

	categories categoriesScreen
	favorites  listScreen
	listSeq    uint64

	status     string
	statusKind views.StatusKind
	statusSeq  uint64

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	src := opts.Suggestions
	if src == nil {
		src, _ = opts.Catalog.(suggest.Source)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		bus:          opts.Bus,
		config:       cfg,
		catalog:      opts.Catalog,
		suggestions:  src,
		user:         opts.User,
		activity:     opts.Activity,
		logger:       log.For("ui"),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		screen:       inputtypes.ScreenHome,
		box:          suggest.NewBox(cfg.UI.MaxSuggestions),
		debounce:     cfg.UI.Debounce.Duration,
		results:      listing.NewController(ctx, opts.Catalog, cfg.PageSize),
		resultsNav:   logic.NewNavigator(views.RowHeight),
		signal:       scroll.New(cfg.UI.ScrollThreshold, cfg.UI.FrameInterval.Duration),
		categories:   newCategoriesScreen(),
		favorites:    listScreen{nav: logic.NewNavigator(views.RowHeight)},
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
	}
	if m.debounce <= 0 {
		m.debounce = suggest.DefaultDebounce
	}

	// The home screen starts with the search box focused
	m.inputHandler.ChangeMode(inputtypes.ModeSearch, "")
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, m.observeResults()

	case tea.KeyMsg:
		if m.overlay != "" {
			switch msg.String() {
			case "esc", "q", "?", "enter":
				m.overlay = ""
			case "ctrl+c":
				return m, m.quit()
			}
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		// Cursor blink goes to the text input, everything else is ours
		inputCmd := m.inputHandler.Update(msg)
		cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Cargando..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	searching := m.inputHandler.CurrentMode() == inputtypes.ModeSearch
	state := views.ViewState{
		Width:              m.width,
		Height:             m.height,
		Screen:             m.screen,
		Busy:               m.busy(),
		Spinner:            m.spinner.View(),
		Searching:          searching,
		SearchText:         m.box.Text(),
		Suggestions:        m.box.Items(),
		SuggestionIndex:    m.box.SelectedIndex(),
		SuggestionsLoading: m.box.Loading(),
		Results:            m.resultsView(),
		Product:            m.productView(),
		Categories:         m.categoriesView(),
		Favorites:          m.favorites.view(""),
		LoggedIn:           m.user != nil,
		StatusMessage:      m.status,
		StatusKind:         m.statusKind,
		HelpLine:           m.help.ShortHelpView(m.keys.bindings(m.screen, searching)),
		HelpOverlay:        m.overlay,
	}
	if m.user != nil {
		state.UserName = m.user.Name
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.SearchInput = ti.View()
	}
	if m.activity != nil {
		state.Recent = m.activity.Recent()
	}
	return state
}

func (m *Model) busy() bool {
	st := m.results.State()
	return m.box.Loading() ||
		st.Phase == listing.Loading || st.Fetching ||
		m.product.loading ||
		m.categories.list.loading ||
		m.favorites.loading
}

func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{
		CurrentScreen: m.screen,
		Suggestions:   len(m.box.Items()),
	}
	switch m.screen {
	case inputtypes.ScreenResults:
		ctx.Index, ctx.Total = m.resultsNav.SelectedIndex(), m.resultsNav.Total()
	case inputtypes.ScreenCategories:
		ctx.Index, ctx.Total = m.categories.list.nav.SelectedIndex(), m.categories.list.nav.Total()
	case inputtypes.ScreenFavorites:
		ctx.Index, ctx.Total = m.favorites.nav.SelectedIndex(), m.favorites.nav.Total()
	case inputtypes.ScreenProduct:
		ctx.Index, ctx.Total = m.product.selected, len(m.product.page.Recommendations)
	}
	return ctx
}

func (m *Model) updateViewportHeight() {
	lines := views.ListHeight(m.height)
	m.resultsNav.SetViewportHeight(lines)
	m.categories.list.nav.SetViewportHeight(lines)
	m.favorites.nav.SetViewportHeight(lines)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return m.quit()

	case inputtypes.ToggleHelpAction:
		return m.showPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.UpdateTextAction:
		return m.typed(a.Text)

	case inputtypes.MoveSuggestionAction:
		m.box.Move(a.Delta)

	case inputtypes.SubmitTextAction:
		return m.commitSearch()

	case inputtypes.CancelTextAction:
		m.box.Clear()

	case inputtypes.NavigateAction:
		return m.navigate(a.Direction)

	case inputtypes.OpenAction:
		return m.openSelected()

	case inputtypes.BackAction:
		return m.back()

	case inputtypes.ShowScreenAction:
		switch a.Screen {
		case inputtypes.ScreenCategories:
			return m.showCategories()
		case inputtypes.ScreenFavorites:
			return m.showFavorites()
		}

	case inputtypes.SelectTabAction:
		return m.selectRoot(a.Index)

	case inputtypes.RateAction:
		return m.rate(a.Stars)

	case inputtypes.ToggleLikeAction:
		return m.toggleLike()

	case inputtypes.PriceHistoryAction:
		return m.priceHistory()

	case inputtypes.ReloadAction:
		return m.reload()
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case debounceMsg:
		return m.debounceElapsed(msg)

	case suggestionsMsg:
		m.suggestionsArrived(msg)
		return nil

	case pageMsg:
		return m.pageArrived(msg)

	case scrollFrameMsg:
		return m.scrollFrame(msg)

	case productMsg:
		m.productArrived(msg)
		return nil

	case likeMsg:
		return m.likeDone(msg)

	case rateMsg:
		return m.rateDone(msg)

	case subcategoriesMsg:
		m.subcategoriesArrived(msg)
		return nil

	case productListMsg:
		m.productListArrived(msg)
		return nil

	case reportMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("price history failed")
			return m.setStatus(catalog.ErrorMessage(msg.err, "No se pudo cargar el historial de precios."), views.StatusError)
		}
		return m.showPager(msg.content)

	case pagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to showing the content in place
			m.logger.Warn().Err(msg.err).Msg("pager failed")
			m.overlay = msg.content
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return nil
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.results.Close()
	return tea.Quit
}

// show switches the visible screen. The results screen holds the scroll
// lease only while it is shown.
func (m *Model) show(screen inputtypes.Screen) tea.Cmd {
	if m.screen == inputtypes.ScreenResults && screen != inputtypes.ScreenResults {
		m.signal.Release(m.lease)
		m.lease = 0
	}
	entering := screen == inputtypes.ScreenResults && m.screen != inputtypes.ScreenResults
	m.screen = screen
	if entering {
		m.lease = m.signal.Acquire()
		return m.observeResults()
	}
	return nil
}

// pushHistory records the current screen before leaving it
func (m *Model) pushHistory() {
	m.history = append(m.history, navEntry{screen: m.screen, productID: m.product.id})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		return m.show(inputtypes.ScreenHome)
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	cmd := m.show(prev.screen)
	if prev.screen == inputtypes.ScreenProduct && prev.productID != m.product.id {
		return tea.Batch(cmd, m.loadProduct(prev.productID, true))
	}
	return cmd
}

func (m *Model) navigate(direction string) tea.Cmd {
	switch m.screen {
	case inputtypes.ScreenResults:
		moveNavigator(m.resultsNav, direction)
		return m.observeResults()
	case inputtypes.ScreenCategories:
		switch direction {
		case "left":
			return m.cycleSubcategory(-1)
		case "right":
			return m.cycleSubcategory(1)
		}
		moveNavigator(m.categories.list.nav, direction)
	case inputtypes.ScreenFavorites:
		moveNavigator(m.favorites.nav, direction)
	case inputtypes.ScreenProduct:
		m.moveRecommendation(direction)
	}
	return nil
}

func moveNavigator(n *logic.Navigator, direction string) {
	switch direction {
	case "up":
		n.Move(-1)
	case "down":
		n.Move(1)
	case "pageup":
		n.PageUp()
	case "pagedown":
		n.PageDown()
	case "home":
		n.Home()
	case "end":
		n.End()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || m.overlay != "" {
		return nil
	}
	var delta int
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return nil
	}

	switch m.screen {
	case inputtypes.ScreenResults:
		m.resultsNav.Scroll(delta)
		return m.observeResults()
	case inputtypes.ScreenCategories:
		m.categories.list.nav.Scroll(delta)
	case inputtypes.ScreenFavorites:
		m.favorites.nav.Scroll(delta)
	case inputtypes.ScreenProduct:
		if delta < 0 {
			m.moveRecommendation("up")
		} else {
			m.moveRecommendation("down")
		}
	}
	return nil
}

func (m *Model) openSelected() tea.Cmd {
	switch m.screen {
	case inputtypes.ScreenResults:
		items := m.results.State().Items
		if i := m.resultsNav.SelectedIndex(); i < len(items) {
			return m.openProduct(items[i])
		}
	case inputtypes.ScreenCategories:
		if p, ok := m.categories.list.selected(); ok {
			return m.openProduct(p)
		}
	case inputtypes.ScreenFavorites:
		if p, ok := m.favorites.selected(); ok {
			return m.openProduct(p)
		}
	case inputtypes.ScreenProduct:
		recs := m.product.page.Recommendations
		if i := m.product.selected; i >= 0 && i < len(recs) {
			return m.openProduct(recs[i])
		}
	}
	return nil
}

func (m *Model) reload() tea.Cmd {
	switch m.screen {
	case inputtypes.ScreenResults:
		return m.retryResults()
	case inputtypes.ScreenProduct:
		if m.product.id != "" {
			return m.loadProduct(m.product.id, m.product.err != "")
		}
	case inputtypes.ScreenCategories:
		return m.loadCategoryProducts()
	case inputtypes.ScreenFavorites:
		return m.loadFavorites()
	}
	return nil
}

// setStatus shows message in the status line for a few seconds
func (m *Model) setStatus(message string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.status = message
	m.statusKind = kind
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// publishError reports a failed user action on the bus
func (m *Model) publishError(message string, err error) {
	if m.bus != nil {
		m.bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
	}
}

// showPager shows content in ov, or in place when there is no terminal to
// hand over
func (m *Model) showPager(content string) tea.Cmd {
	if m.program == nil || m.pager == nil {
		m.overlay = content
		return nil
	}
	program := m.program
	pager := m.pager
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return pagerMsg{content: content, err: err}
	}
}
