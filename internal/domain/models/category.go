package models

// Category is a taxonomy tag resources can be related to.
// IDs are CMS entry ids and arrive as strings.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
