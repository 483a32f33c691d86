package input

import "hunterprice/internal/ui/input/types"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	CurrentScreen types.Screen
	Index         int
	Total         int
	Suggestions   int
}

// Screen returns the screen being shown
func (c *ModelContext) Screen() types.Screen {
	return c.CurrentScreen
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of items on the current screen
func (c *ModelContext) TotalItems() int {
	return c.Total
}

// HasSuggestions reports whether the suggestion list is showing
func (c *ModelContext) HasSuggestions() bool {
	return c.Suggestions > 0
}
