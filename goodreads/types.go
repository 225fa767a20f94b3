package goodreads

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// timeLayout is how the API renders created_at/updated_at style timestamps
const timeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Credentials are the developer key and secret issued by Goodreads
type Credentials struct {
	Key    string
	Secret string
}

// User represents a Goodreads member
type User struct {
	ID            string      `mapstructure:"id"`
	Name          string      `mapstructure:"name"`
	UserName      string      `mapstructure:"user_name"`
	Link          string      `mapstructure:"link"`
	ImageURL      string      `mapstructure:"image_url"`
	SmallImageURL string      `mapstructure:"small_image_url"`
	About         string      `mapstructure:"about"`
	Age           int         `mapstructure:"age"`
	Gender        string      `mapstructure:"gender"`
	Location      string      `mapstructure:"location"`
	Website       string      `mapstructure:"website"`
	Joined        string      `mapstructure:"joined"`
	LastActive    string      `mapstructure:"last_active"`
	Interests     string      `mapstructure:"interests"`
	FavoriteBooks string      `mapstructure:"favorite_books"`
	FriendsCount  int         `mapstructure:"friends_count"`
	ReviewsCount  int         `mapstructure:"reviews_count"`
	Shelves       []UserShelf `mapstructure:"user_shelves"`

	client *Client
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.ID
}

// UserShelf is one of a member's bookshelves
type UserShelf struct {
	ID            string `mapstructure:"id"`
	Name          string `mapstructure:"name"`
	BookCount     int    `mapstructure:"book_count"`
	ExclusiveFlag bool   `mapstructure:"exclusive_flag"`
	Description   string `mapstructure:"description"`
	Sort          string `mapstructure:"sort"`
	Order         string `mapstructure:"order"`
	Featured      bool   `mapstructure:"featured"`
}

// Shelf is a shelf reference carried as attributes, as in a book's popular shelves
// or the shelves of a review
type Shelf struct {
	ID        string `mapstructure:"-id"`
	Name      string `mapstructure:"-name"`
	Count     int    `mapstructure:"-count"`
	Exclusive bool   `mapstructure:"-exclusive"`
}

// Work groups every edition of a book
type Work struct {
	ID                      string `mapstructure:"id"`
	BooksCount              int    `mapstructure:"books_count"`
	BestBookID              string `mapstructure:"best_book_id"`
	ReviewsCount            int    `mapstructure:"reviews_count"`
	RatingsSum              int    `mapstructure:"ratings_sum"`
	RatingsCount            int    `mapstructure:"ratings_count"`
	TextReviewsCount        int    `mapstructure:"text_reviews_count"`
	OriginalPublicationYear int    `mapstructure:"original_publication_year"`
	OriginalTitle           string `mapstructure:"original_title"`
	MediaType               string `mapstructure:"media_type"`
}

// Book represents a single edition
type Book struct {
	ID                 string   `mapstructure:"id"`
	Title              string   `mapstructure:"title"`
	ISBN               string   `mapstructure:"isbn"`
	ISBN13             string   `mapstructure:"isbn13"`
	ASIN               string   `mapstructure:"asin"`
	KindleASIN         string   `mapstructure:"kindle_asin"`
	ImageURL           string   `mapstructure:"image_url"`
	SmallImageURL      string   `mapstructure:"small_image_url"`
	PublicationYear    int      `mapstructure:"publication_year"`
	PublicationMonth   int      `mapstructure:"publication_month"`
	PublicationDay     int      `mapstructure:"publication_day"`
	Publisher          string   `mapstructure:"publisher"`
	LanguageCode       string   `mapstructure:"language_code"`
	IsEbook            bool     `mapstructure:"is_ebook"`
	Description        string   `mapstructure:"description"`
	AverageRating      float64  `mapstructure:"average_rating"`
	NumPages           int      `mapstructure:"num_pages"`
	Format             string   `mapstructure:"format"`
	EditionInformation string   `mapstructure:"edition_information"`
	RatingsCount       int      `mapstructure:"ratings_count"`
	TextReviewsCount   int      `mapstructure:"text_reviews_count"`
	URL                string   `mapstructure:"url"`
	Link               string   `mapstructure:"link"`
	Work               Work     `mapstructure:"work"`
	Authors            []Author `mapstructure:"authors"`
	PopularShelves     []Shelf  `mapstructure:"popular_shelves"`
	SimilarBooks       []Book   `mapstructure:"similar_books"`

	client  *Client
	partial bool
}

// PublicationDate assembles the publication fields. ok is false when the year is unknown.
func (b *Book) PublicationDate() (date time.Time, ok bool) {
	if b.PublicationYear == 0 {
		return time.Time{}, false
	}
	month := time.Month(max(b.PublicationMonth, 1))
	day := max(b.PublicationDay, 1)
	return time.Date(b.PublicationYear, month, day, 0, 0, 0, 0, time.UTC), true
}

// PlainDescription returns the description with its HTML markup stripped
func (b *Book) PlainDescription() string {
	return stripHTML(b.Description)
}

// Partial reports whether the book came from a listing (an author's books, similar
// books) rather than from book/show. Use Full to fetch the complete record.
func (b *Book) Partial() bool {
	return b.partial
}

// AuthorNames returns the names of the book's authors in listing order
func (b *Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return names
}

// Author represents a Goodreads author profile
type Author struct {
	ID               string  `mapstructure:"id"`
	Name             string  `mapstructure:"name"`
	Role             string  `mapstructure:"role"`
	Link             string  `mapstructure:"link"`
	ImageURL         string  `mapstructure:"image_url"`
	SmallImageURL    string  `mapstructure:"small_image_url"`
	About            string  `mapstructure:"about"`
	Influences       string  `mapstructure:"influences"`
	WorksCount       int     `mapstructure:"works_count"`
	Gender           string  `mapstructure:"gender"`
	Hometown         string  `mapstructure:"hometown"`
	BornAt           string  `mapstructure:"born_at"`
	DiedAt           string  `mapstructure:"died_at"`
	FansCount        int     `mapstructure:"fans_count"`
	AverageRating    float64 `mapstructure:"average_rating"`
	RatingsCount     int     `mapstructure:"ratings_count"`
	TextReviewsCount int     `mapstructure:"text_reviews_count"`
	Books            []Book  `mapstructure:"books"`

	client  *Client
	partial bool
}

// PlainAbout returns the biography with its HTML markup stripped
func (a *Author) PlainAbout() string {
	return stripHTML(a.About)
}

// Partial reports whether the author came from a book's author listing.
func (a *Author) Partial() bool {
	return a.partial
}

// Comment is one entry of a comment thread
type Comment struct {
	ID        string `mapstructure:"id"`
	Body      string `mapstructure:"body"`
	User      User   `mapstructure:"user"`
	CreatedAt string `mapstructure:"created_at"`
	UpdatedAt string `mapstructure:"updated_at"`
}

// Created parses CreatedAt, returning the zero time when it is absent or malformed
func (c *Comment) Created() time.Time {
	return parseTime(c.CreatedAt)
}

// Updated parses UpdatedAt, returning the zero time when it is absent or malformed
func (c *Comment) Updated() time.Time {
	return parseTime(c.UpdatedAt)
}

// Review is a member's review of a book, as listed on one of their shelves
type Review struct {
	ID          string  `mapstructure:"id"`
	Book        Book    `mapstructure:"book"`
	Rating      int     `mapstructure:"rating"`
	Votes       int     `mapstructure:"votes"`
	SpoilerFlag bool    `mapstructure:"spoiler_flag"`
	Shelves     []Shelf `mapstructure:"shelves"`
	StartedAt   string  `mapstructure:"started_at"`
	ReadAt      string  `mapstructure:"read_at"`
	DateAdded   string  `mapstructure:"date_added"`
	DateUpdated string  `mapstructure:"date_updated"`
	ReadCount   int     `mapstructure:"read_count"`
	Body        string  `mapstructure:"body"`
	URL         string  `mapstructure:"url"`
	Link        string  `mapstructure:"link"`
}

// ReviewCounts are the rating statistics for one ISBN
type ReviewCounts struct {
	ID                   string  `mapstructure:"id"`
	ISBN                 string  `mapstructure:"isbn"`
	ISBN13               string  `mapstructure:"isbn13"`
	RatingsCount         int     `mapstructure:"ratings_count"`
	ReviewsCount         int     `mapstructure:"reviews_count"`
	TextReviewsCount     int     `mapstructure:"text_reviews_count"`
	WorkRatingsCount     int     `mapstructure:"work_ratings_count"`
	WorkReviewsCount     int     `mapstructure:"work_reviews_count"`
	WorkTextReviewsCount int     `mapstructure:"work_text_reviews_count"`
	AverageRating        float64 `mapstructure:"average_rating"`
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
