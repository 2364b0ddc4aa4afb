package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAuthorHasBooks is returned by stores refusing to delete an author that still owns books.
var ErrAuthorHasBooks = errors.New("author still has books")

type Author struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:256" json:"name"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	ImageURL  *string   `gorm:"size:2048" json:"imageUrl"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// BookIDs returns the identifiers of the author's books in their loaded order.
func (a *Author) BookIDs() []string {
	ids := make([]string, 0, len(a.Books))
	for _, b := range a.Books {
		ids = append(ids, b.ID)
	}
	return ids
}

type Book struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"not null;size:512" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	CoverImage  *string    `gorm:"size:2048" json:"coverImage"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	AuthorID    string     `gorm:"not null;size:36;index" json:"authorId"`
	Author      *Author    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
