package filemanager

// FileItem is a discovered skill file. It implements the bubbles list.Item
// interface so the browse TUI can display discovered files directly.
type FileItem struct {
	Name string
	Path string
}

func (i FileItem) Title() string       { return i.Name }
func (i FileItem) Description() string { return i.Path }
func (i FileItem) FilterValue() string { return i.Path }
