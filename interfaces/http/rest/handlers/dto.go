package handlers

import (
	"time"

	"github.com/adibtatriantama/FCC-Book-Trading/domain"
)

// AddressDto is the city/state pair in API payloads.
type AddressDto struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// UserDto is the user profile shape returned by the API.
type UserDto struct {
	ID       string     `json:"id"`
	Nickname string     `json:"nickname"`
	Email    string     `json:"email,omitempty"`
	Address  AddressDto `json:"address"`
}

// UserDetailsDto is the denormalized owner/participant snapshot.
type UserDetailsDto struct {
	ID       string     `json:"id"`
	Nickname string     `json:"nickname"`
	Address  AddressDto `json:"address"`
}

// BookDto is the book listing shape returned by the API.
type BookDto struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Description string         `json:"description"`
	Owner       UserDetailsDto `json:"owner"`
	AddedAt     string         `json:"addedAt"`
}

// TradeDto is the trade shape returned by the API.
type TradeDto struct {
	ID             string         `json:"id"`
	Decider        UserDetailsDto `json:"decider"`
	Requester      UserDetailsDto `json:"requester"`
	DeciderBooks   []BookDto      `json:"deciderBooks"`
	RequesterBooks []BookDto      `json:"requesterBooks"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	AcceptedAt     string         `json:"acceptedAt,omitempty"`
}

func newAddressDto(address domain.Address) AddressDto {
	return AddressDto{
		City:  address.City,
		State: address.State,
	}
}

func newUserDto(user *domain.User) UserDto {
	return UserDto{
		ID:       user.ID(),
		Nickname: user.Nickname(),
		Email:    user.Email(),
		Address:  newAddressDto(user.Address()),
	}
}

func newUserDetailsDto(details domain.UserDetails) UserDetailsDto {
	return UserDetailsDto{
		ID:       details.ID(),
		Nickname: details.Nickname(),
		Address:  newAddressDto(details.Address()),
	}
}

func newBookDto(book *domain.Book) BookDto {
	return BookDto{
		ID:          book.ID(),
		Title:       book.Title(),
		Author:      book.Author(),
		Description: book.Description(),
		Owner:       newUserDetailsDto(book.Owner()),
		AddedAt:     book.AddedAt().UTC().Format(time.RFC3339),
	}
}

func newBookDtos(books []*domain.Book) []BookDto {
	dtos := make([]BookDto, 0, len(books))
	for _, book := range books {
		dtos = append(dtos, newBookDto(book))
	}
	return dtos
}

func newTradeDto(trade *domain.Trade) TradeDto {
	dto := TradeDto{
		ID:             trade.ID(),
		Decider:        newUserDetailsDto(trade.Decider()),
		Requester:      newUserDetailsDto(trade.Requester()),
		DeciderBooks:   newBookDtos(trade.DeciderBooks()),
		RequesterBooks: newBookDtos(trade.RequesterBooks()),
		Status:         string(trade.Status()),
		CreatedAt:      trade.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:      trade.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if !trade.AcceptedAt().IsZero() {
		dto.AcceptedAt = trade.AcceptedAt().UTC().Format(time.RFC3339)
	}
	return dto
}

func newTradeDtos(trades []*domain.Trade) []TradeDto {
	dtos := make([]TradeDto, 0, len(trades))
	for _, trade := range trades {
		dtos = append(dtos, newTradeDto(trade))
	}
	return dtos
}
