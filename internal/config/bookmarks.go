package config

// Bookmarks is the two-column bookmark tree: local launchers and web links.
type Bookmarks struct {
	Desktop []Category `toml:"desktop"`
	Web     []Category `toml:"web"`
}

// Category is a named group of bookmarks.
type Category struct {
	Name  string     `toml:"name"`
	Items []Bookmark `toml:"items"`
}

// Bookmark is a launch target: a local command or a URL.
type Bookmark struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// Count returns the number of bookmarks across both columns.
func (b Bookmarks) Count() int {
	n := 0
	for _, cats := range [][]Category{b.Desktop, b.Web} {
		for _, c := range cats {
			n += len(c.Items)
		}
	}
	return n
}

// Find looks a bookmark up by display name, searching desktop first.
func (b Bookmarks) Find(name string) (Bookmark, bool) {
	for _, cats := range [][]Category{b.Desktop, b.Web} {
		for _, c := range cats {
			for _, item := range c.Items {
				if item.Name == name {
					return item, true
				}
			}
		}
	}
	return Bookmark{}, false
}
