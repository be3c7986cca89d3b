package model

// Status describes where a book sits in the reading lifecycle.
type Status string

const (
	StatusUnread    Status = "unread"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Format describes the medium a book is owned in.
type Format string

const (
	FormatPhysical  Format = "physical"
	FormatDigital   Format = "digital"
	FormatAudiobook Format = "audiobook"
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatPhysical, FormatDigital, FormatAudiobook:
		return true
	}
	return false
}

// Owner describes who in the household a book belongs to.
type Owner string

const (
	OwnerMe     Owner = "me"
	OwnerSpouse Owner = "spouse"
	OwnerShared Owner = "shared"
)

// Valid reports whether o is one of the known owners.
func (o Owner) Valid() bool {
	switch o {
	case OwnerMe, OwnerSpouse, OwnerShared:
		return true
	}
	return false
}

// Book is a single record in the collection. ID and AddedAt are assigned at
// creation and never change; IsWishlist is set by the path that created the
// record and only manual edits may flip it afterwards.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       []string `json:"genre"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	Status      Status   `json:"status"`
	Format      Format   `json:"format"`
	Owner       Owner    `json:"owner"`
	Location    string   `json:"location,omitempty"`
	IsWishlist  bool     `json:"is_wishlist"`
	Rating      *float64 `json:"rating,omitempty"`
	AddedAt     int64    `json:"added_at"` // epoch milliseconds
}

// CoercePages forces the page counters into the non-negative range.
// CurrentPage exceeding TotalPages is left alone; the UI treats that as
// a progress glitch, not invalid data.
func (b *Book) CoercePages() {
	if b.TotalPages < 0 {
		b.TotalPages = 0
	}
	if b.CurrentPage < 0 {
		b.CurrentPage = 0
	}
}

// BookResponse is the list payload sent to the frontend.
type BookResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       []string `json:"genre"`
	Tags        []string `json:"tags"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	Status      Status   `json:"status"`
	Format      Format   `json:"format"`
	Owner       Owner    `json:"owner"`
	IsWishlist  bool     `json:"is_wishlist"`
	Rating      *float64 `json:"rating,omitempty"`
	AddedAt     int64    `json:"added_at"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Tags:        b.Tags,
		TotalPages:  b.TotalPages,
		CurrentPage: b.CurrentPage,
		Status:      b.Status,
		Format:      b.Format,
		Owner:       b.Owner,
		IsWishlist:  b.IsWishlist,
		Rating:      b.Rating,
		AddedAt:     b.AddedAt,
	}
}
