package models

import (
	"time"

	id "keepsake/pkg/domain"
)

// Note is one entry in the shared feed.
type Note struct {
	ID          id.NoteID
	Content     string
	Author      string
	AuthorPhoto string
	Pinned      bool
	CreatedAt   time.Time
}

// View is the wire shape of a note.
type View struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	AuthorPhoto string    `json:"authorPhoto,omitempty"`
	Pinned      bool      `json:"pinned,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (n *Note) View() View {
	return View{
		ID:          n.ID.String(),
		Content:     n.Content,
		Author:      n.Author,
		AuthorPhoto: n.AuthorPhoto,
		Pinned:      n.Pinned,
		CreatedAt:   n.CreatedAt,
	}
}

type CreateRequest struct {
	Content     string `json:"content"`
	Author      string `json:"author"`
	AuthorPhoto string `json:"authorPhoto"`
}

type PinRequest struct {
	Pinned bool `json:"pinned"`
}
