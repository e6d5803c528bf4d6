package domain

import (
	"time"

	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// Book is a listed book. The owner field is a denormalized snapshot of the
// owning user, refreshed only on ownership transfer.
type Book struct {
	id          string
	title       string
	author      string
	description string
	owner       UserDetails
	createdAt   time.Time
	updatedAt   time.Time
	addedAt     time.Time

	ownerChanged bool
}

// NewBook creates a new book listing owned by the given user.
func NewBook(title, author, description string, owner UserDetails) (*Book, error) {
	if title == "" {
		return nil, apperrors.NewValidation("title is required")
	}
	if author == "" {
		return nil, apperrors.NewValidation("author is required")
	}
	if owner.ID() == "" {
		return nil, apperrors.NewValidation("owner is required")
	}

	now := time.Now().UTC()
	return &Book{
		id:          newID(),
		title:       title,
		author:      author,
		description: description,
		owner:       owner,
		createdAt:   now,
		updatedAt:   now,
		addedAt:     now,
	}, nil
}

// ReconstructBook rebuilds a book from persisted state. It bypasses the
// creation-time invariants because the stored row is the source of truth.
func ReconstructBook(id, title, author, description string, owner UserDetails, createdAt, updatedAt, addedAt time.Time) *Book {
	return &Book{
		id:          id,
		title:       title,
		author:      author,
		description: description,
		owner:       owner,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		addedAt:     addedAt,
	}
}

func (b *Book) ID() string           { return b.id }
func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) Description() string  { return b.description }
func (b *Book) Owner() UserDetails   { return b.owner }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }
func (b *Book) AddedAt() time.Time   { return b.addedAt }

// OwnerChanged reports whether ownership was transferred since the book
// was loaded. Repositories use it to decide whether the live book row
// must be rewritten.
func (b *Book) OwnerChanged() bool { return b.ownerChanged }

// TransferOwnership hands the book to a new owner. This is the only
// mutation of the owner snapshot; it also refreshes addedAt.
func (b *Book) TransferOwnership(newOwner UserDetails) {
	now := time.Now().UTC()
	b.owner = newOwner
	b.addedAt = now
	b.updatedAt = now
	b.ownerChanged = true
}

// UpdateDetails edits the listing fields.
func (b *Book) UpdateDetails(title, author, description string) error {
	if title == "" {
		return apperrors.NewValidation("title is required")
	}
	if author == "" {
		return apperrors.NewValidation("author is required")
	}

	b.title = title
	b.author = author
	b.description = description
	b.updatedAt = time.Now().UTC()
	return nil
}
