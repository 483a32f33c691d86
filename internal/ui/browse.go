package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/catalog"
	"hunterprice/internal/domain"
	inputtypes "hunterprice/internal/ui/input/types"
	"hunterprice/internal/ui/logic"
	"hunterprice/internal/ui/views"
)

// listScreen is a product list that arrives in one piece
type listScreen struct {
	items   []domain.ProductSummary
	loading bool
	err     string
	nav     *logic.Navigator
	seq     uint64
}

func (l *listScreen) view(query string) views.ListState {
	start, end := l.nav.Window()
	end = min(end, len(l.items))
	start = min(start, end)
	return views.ListState{
		Items:    l.items,
		Selected: l.nav.SelectedIndex(),
		Start:    start,
		End:      end,
		Loading:  l.loading,
		Err:      l.err,
		Query:    query,
	}
}

func (l *listScreen) selected() (domain.ProductSummary, bool) {
	i := l.nav.SelectedIndex()
	if l.loading || i < 0 || i >= len(l.items) {
		return domain.ProductSummary{}, false
	}
	return l.items[i], true
}

// begin starts a new load and returns its sequence number
func (l *listScreen) begin() uint64 {
	l.seq++
	l.loading = true
	l.err = ""
	return l.seq
}

// categoriesScreen browses a root category and its subcategories. Sub 0 is
// the root's own list.
type categoriesScreen struct {
	root int
	subs []domain.Category
	sub  int
	list listScreen
}

func newCategoriesScreen() categoriesScreen {
	return categoriesScreen{list: listScreen{nav: logic.NewNavigator(views.RowHeight)}}
}

// current returns the category whose products are listed
func (c categoriesScreen) current() (domain.Category, bool) {
	if c.root < 0 || c.root >= len(domain.RootCategories) {
		return domain.Category{}, false
	}
	root := domain.RootCategories[c.root]
	if c.sub <= 0 || c.sub >= len(c.subs) {
		return root, true
	}
	return c.subs[c.sub], true
}

func (m *Model) showCategories() tea.Cmd {
	if m.screen == inputtypes.ScreenCategories {
		return nil
	}
	m.pushHistory()
	cmd := m.show(inputtypes.ScreenCategories)
	if m.categories.subs == nil {
		return tea.Batch(cmd, m.selectRoot(m.categories.root))
	}
	return cmd
}

func (m *Model) showFavorites() tea.Cmd {
	if m.screen != inputtypes.ScreenFavorites {
		m.pushHistory()
	}
	cmd := m.show(inputtypes.ScreenFavorites)
	return tea.Batch(cmd, m.loadFavorites())
}

// selectRoot switches to root category i and loads its subcategories
func (m *Model) selectRoot(i int) tea.Cmd {
	if i < 0 || i >= len(domain.RootCategories) {
		return nil
	}
	m.categories.root = i
	m.categories.sub = 0
	m.categories.subs = []domain.Category{{ID: domain.AllSubcategoryID, Name: "Todo"}}

	rootID := domain.RootCategories[i].ID
	ctx := m.ctx
	cat := m.catalog
	load := func() tea.Msg {
		subs, err := cat.Subcategories(ctx, rootID)
		return subcategoriesMsg{rootID: rootID, subs: subs, err: err}
	}
	return tea.Batch(load, m.loadCategoryProducts())
}

func (m *Model) cycleSubcategory(delta int) tea.Cmd {
	n := len(m.categories.subs)
	if n <= 1 {
		return nil
	}
	m.categories.sub = ((m.categories.sub+delta)%n + n) % n
	return m.loadCategoryProducts()
}

func (m *Model) subcategoriesArrived(msg subcategoriesMsg) {
	if domain.RootCategories[m.categories.root].ID != msg.rootID {
		return
	}
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn().Err(msg.err).Int("category", msg.rootID).Msg("subcategories failed")
		}
		return
	}
	subs := []domain.Category{{ID: domain.AllSubcategoryID, Name: "Todo"}}
	for _, s := range msg.subs {
		if s.ID != domain.AllSubcategoryID {
			subs = append(subs, s)
		}
	}
	m.categories.subs = subs
	if m.categories.sub >= len(subs) {
		m.categories.sub = 0
	}
}

func (m *Model) loadCategoryProducts() tea.Cmd {
	category, ok := m.categories.current()
	if !ok {
		return nil
	}
	l := &m.categories.list
	seq := l.begin()
	l.nav.Reset()
	ctx := m.ctx
	cat := m.catalog
	return func() tea.Msg {
		items, err := cat.CategoryProducts(ctx, category.ID)
		return productListMsg{screen: inputtypes.ScreenCategories, seq: seq, items: items, err: err}
	}
}

func (m *Model) loadFavorites() tea.Cmd {
	// Anonymous users get the most viewed products instead
	l := &m.favorites
	seq := l.begin()
	ctx := m.ctx
	cat := m.catalog
	return func() tea.Msg {
		items, err := cat.Favorites(ctx)
		return productListMsg{screen: inputtypes.ScreenFavorites, seq: seq, items: items, err: err}
	}
}

func (m *Model) productListArrived(msg productListMsg) {
	var l *listScreen
	switch msg.screen {
	case inputtypes.ScreenCategories:
		l = &m.categories.list
	case inputtypes.ScreenFavorites:
		l = &m.favorites
	default:
		return
	}
	if msg.seq != l.seq {
		return
	}
	l.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn().Err(msg.err).Str("screen", msg.screen.String()).Msg("product list failed")
		}
		l.err = catalog.ErrorMessage(msg.err, "No se pudieron cargar los productos.")
		return
	}
	l.items = msg.items
	l.err = ""
	l.nav.SetTotal(len(msg.items))
}

func (m *Model) categoriesView() views.CategoriesState {
	return views.CategoriesState{
		Roots:         domain.RootCategories,
		Root:          m.categories.root,
		Subcategories: m.categories.subs,
		Sub:           m.categories.sub,
		List:          m.categories.list.view(""),
	}
}
