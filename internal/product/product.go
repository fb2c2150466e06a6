package product

import (
	"cmp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/wichananm65/select-shop-backend/internal/apperr"
)

// Product is an item a user tracks, with the lowest observed price (LPrice)
// and the user's target price (MyPrice).
type Product struct {
	ID         int
	Title      string
	Link       string
	Image      string
	LPrice     int
	MyPrice    int
	UserID     int
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// View is the response shape of a product.
type View struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Image   string `json:"image"`
	LPrice  int    `json:"lprice"`
	MyPrice int    `json:"myprice"`
}

func NewView(p Product) View {
	return View{
		ID:      p.ID,
		Title:   p.Title,
		Link:    p.Link,
		Image:   p.Image,
		LPrice:  p.LPrice,
		MyPrice: p.MyPrice,
	}
}

// CreateRequest carries the search result a user chose to track.
type CreateRequest struct {
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link"`
	LPrice int    `json:"lprice"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Link, validation.Required, is.URL),
		validation.Field(&r.LPrice, validation.Min(0)),
	)
}

// ItemData is a fresh lookup result for an already tracked product.
type ItemData struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Image  string `json:"image"`
	LPrice int    `json:"lprice"`
}

func New(req CreateRequest, userID int) Product {
	return Product{
		Title:  req.Title,
		Link:   req.Link,
		Image:  req.Image,
		LPrice: req.LPrice,
		UserID: userID,
	}
}

func (p *Product) UpdateMyPrice(myPrice int) {
	p.MyPrice = myPrice
}

func (p *Product) ApplyItem(item ItemData) {
	p.Title = item.Title
	p.Link = item.Link
	p.Image = item.Image
	p.LPrice = item.LPrice
}

// sortColumns maps the sort fields clients may request to table columns.
var sortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"link":       "link",
	"lprice":     "lprice",
	"myprice":    "myprice",
	"createdAt":  "created_at",
	"modifiedAt": "modified_at",
}

func SortColumn(field string) (string, error) {
	col, ok := sortColumns[field]
	if !ok {
		return "", apperr.Validation("cannot sort products by %q", field)
	}
	return col, nil
}

// comparator orders products by the given sort field, falling back to id.
func comparator(field string) func(a, b Product) int {
	var byField func(a, b Product) int
	switch field {
	case "title":
		byField = func(a, b Product) int { return cmp.Compare(a.Title, b.Title) }
	case "link":
		byField = func(a, b Product) int { return cmp.Compare(a.Link, b.Link) }
	case "lprice":
		byField = func(a, b Product) int { return cmp.Compare(a.LPrice, b.LPrice) }
	case "myprice":
		byField = func(a, b Product) int { return cmp.Compare(a.MyPrice, b.MyPrice) }
	case "createdAt":
		byField = func(a, b Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "modifiedAt":
		byField = func(a, b Product) int { return a.ModifiedAt.Compare(b.ModifiedAt) }
	default:
		byField = func(a, b Product) int { return 0 }
	}
	return func(a, b Product) int {
		if c := byField(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}
