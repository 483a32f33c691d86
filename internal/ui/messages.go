package ui

import (
	"hunterprice/internal/catalog"
	"hunterprice/internal/domain"
	"hunterprice/internal/listing"
	"hunterprice/internal/scroll"
	"hunterprice/internal/suggest"
	"hunterprice/internal/ui/input/types"
)

// debounceMsg is delivered when the keystroke silence window of tag ends
type debounceMsg struct {
	tag uint64
}

// suggestionsMsg carries the answer to a suggestion lookup
type suggestionsMsg struct {
	result suggest.Result
}

// pageMsg carries a settled search results page
type pageMsg struct {
	settled listing.Settled
}

// scrollFrameMsg delivers a coalesced scroll observation
type scrollFrameMsg struct {
	frame scroll.Frame
}

// productMsg contains the product screen data
type productMsg struct {
	seq  uint64
	id   string
	page catalog.ProductPage
	err  error
}

// subcategoriesMsg contains the subcategories of a root category
type subcategoriesMsg struct {
	rootID int
	subs   []domain.Category
	err    error
}

// productListMsg contains a non-paginated product list
type productListMsg struct {
	screen types.Screen
	seq    uint64
	items  []domain.ProductSummary
	err    error
}

// likeMsg reports a like or unlike
type likeMsg struct {
	productID string
	liked     bool
	err       error
}

// rateMsg reports a rating
type rateMsg struct {
	productID string
	stars     int
	err       error
}

// reportMsg contains a rendered price history report for the pager
type reportMsg struct {
	content string
	err     error
}

// pagerMsg reports that the pager closed
type pagerMsg struct {
	content string
	err     error
}

// clearStatusMsg clears the status line if it still shows message seq
type clearStatusMsg struct {
	seq uint64
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
