package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/catalog"
	"hunterprice/internal/domain"
	"hunterprice/internal/eventbus"
	"hunterprice/internal/pricehistory"
	inputtypes "hunterprice/internal/ui/input/types"
	"hunterprice/internal/ui/views"
)

const loginHint = "Inicia sesión con `hunterprice login` para calificar y guardar favoritos."

// productScreen is the state of the product screen
type productScreen struct {
	id          string
	name        string
	loading     bool
	err         string
	page        catalog.ProductPage
	selected    int // highlighted recommendation, -1 for none
	likePending bool
}

func (m *Model) openProduct(p domain.ProductSummary) tea.Cmd {
	m.pushHistory()
	cmd := m.show(inputtypes.ScreenProduct)
	if m.bus != nil {
		m.bus.Publish(eventbus.ProductOpenedEvent{ProductID: p.ID, User: m.user})
	}
	m.product = productScreen{id: p.ID, name: p.DisplayName}
	return tea.Batch(cmd, m.loadProduct(p.ID, true))
}

// loadProduct fetches the product screen. With blank the old content is
// dropped and a placeholder shown; otherwise it is replaced when the
// answer arrives.
func (m *Model) loadProduct(id string, blank bool) tea.Cmd {
	m.productSeq++
	seq := m.productSeq
	if blank || m.product.id != id {
		m.product = productScreen{id: id, name: m.product.nameFor(id), loading: true, selected: -1}
	}

	ctx := m.ctx
	cat := m.catalog
	return func() tea.Msg {
		page, err := cat.ProductPage(ctx, id)
		return productMsg{seq: seq, id: id, page: page, err: err}
	}
}

func (p productScreen) nameFor(id string) string {
	if p.id == id {
		return p.name
	}
	return ""
}

func (m *Model) productArrived(msg productMsg) {
	if msg.seq != m.productSeq || msg.id != m.product.id {
		return
	}
	m.product.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn().Err(msg.err).Str("product", msg.id).Msg("product load failed")
		}
		m.product.err = catalog.ErrorMessage(msg.err, "No se pudo cargar el producto.")
		return
	}
	m.product.err = ""
	m.product.page = msg.page
	m.product.name = msg.page.Detail.Name
	if m.product.selected >= len(msg.page.Recommendations) {
		m.product.selected = len(msg.page.Recommendations) - 1
	}
}

func (m *Model) productReady() bool {
	return m.screen == inputtypes.ScreenProduct && m.product.id != "" && !m.product.loading && m.product.err == ""
}

func (m *Model) moveRecommendation(direction string) {
	n := len(m.product.page.Recommendations)
	if n == 0 {
		return
	}
	switch direction {
	case "up":
		m.product.selected = max(m.product.selected-1, 0)
	case "down":
		m.product.selected = min(m.product.selected+1, n-1)
	case "home", "pageup":
		m.product.selected = 0
	case "end", "pagedown":
		m.product.selected = n - 1
	}
}

func (m *Model) rate(stars int) tea.Cmd {
	if !m.productReady() {
		return nil
	}
	if m.user == nil {
		return m.setStatus(loginHint, views.StatusWarning)
	}
	ctx := m.ctx
	cat := m.catalog
	id := m.product.id
	return func() tea.Msg {
		return rateMsg{productID: id, stars: stars, err: cat.Rate(ctx, id, stars)}
	}
}

func (m *Model) rateDone(msg rateMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("product", msg.productID).Msg("rating failed")
		text := catalog.ErrorMessage(msg.err, "No se pudo guardar tu calificación.")
		m.publishError(text, msg.err)
		return m.setStatus(text, views.StatusError)
	}
	if m.bus != nil {
		m.bus.Publish(eventbus.ProductRatedEvent{ProductID: msg.productID, Stars: msg.stars})
	}
	status := m.setStatus("¡Gracias por tu calificación!", views.StatusSuccess)
	if msg.productID != m.product.id {
		return status
	}
	m.product.page.Ratings.UserRating = msg.stars
	// Refresh the averages without blanking the screen
	return tea.Batch(status, m.loadProduct(msg.productID, false))
}

func (m *Model) toggleLike() tea.Cmd {
	if !m.productReady() || m.product.likePending {
		return nil
	}
	if m.user == nil {
		return m.setStatus(loginHint, views.StatusWarning)
	}
	m.product.likePending = true
	liked := !m.product.page.Liked
	ctx := m.ctx
	cat := m.catalog
	id := m.product.id
	return func() tea.Msg {
		return likeMsg{productID: id, liked: liked, err: cat.SetLiked(ctx, id, liked)}
	}
}

func (m *Model) likeDone(msg likeMsg) tea.Cmd {
	if msg.productID == m.product.id {
		m.product.likePending = false
	}
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("product", msg.productID).Msg("like failed")
		text := catalog.ErrorMessage(msg.err, "No se pudo actualizar tus favoritos.")
		m.publishError(text, msg.err)
		return m.setStatus(text, views.StatusError)
	}
	if msg.productID == m.product.id {
		m.product.page.Liked = msg.liked
	}
	if m.bus != nil {
		m.bus.Publish(eventbus.LikeToggledEvent{ProductID: msg.productID, Liked: msg.liked})
	}
	if msg.liked {
		return m.setStatus("Agregado a favoritos.", views.StatusSuccess)
	}
	return m.setStatus("Quitado de favoritos.", views.StatusSuccess)
}

func (m *Model) priceHistory() tea.Cmd {
	switch m.screen {
	case inputtypes.ScreenProduct:
		if !m.productReady() {
			return nil
		}
		ctx := m.ctx
		cat := m.catalog
		id, name := m.product.id, m.product.name
		return func() tea.Msg {
			points, err := cat.PriceHistory(ctx, id)
			if err != nil {
				return reportMsg{err: err}
			}
			return reportMsg{content: pricehistory.Report(name, points, "")}
		}
	case inputtypes.ScreenCategories:
		category, ok := m.categories.current()
		if !ok {
			return nil
		}
		ctx := m.ctx
		cat := m.catalog
		return func() tea.Msg {
			points, err := cat.CategoryPriceHistory(ctx, category.ID)
			if err != nil {
				return reportMsg{err: err}
			}
			return reportMsg{content: pricehistory.CategoryReport(category.Name, points)}
		}
	}
	return nil
}

func (m *Model) productView() views.ProductState {
	p := m.product
	detail := p.page.Detail
	if detail.Name == "" {
		detail.Name = p.name
	}
	return views.ProductState{
		Loading:         p.loading,
		Err:             p.err,
		Detail:          detail,
		Ratings:         p.page.Ratings,
		Recommendations: p.page.Recommendations,
		Liked:           p.page.Liked,
		Selected:        p.selected,
		Nearest:         p.page.Nearest,
	}
}
