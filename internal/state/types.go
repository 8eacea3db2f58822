package state

// CartItem is one product line in a per-user cart. Quantity is always >= 1;
// an update that drops it to zero deletes the line instead.
type CartItem struct {
	Quantity     int     `json:"quantity"`
	ProductPrice float64 `json:"productPrice"`
	ProductTitle string  `json:"productTitle"`
	ProductImage string  `json:"productImage"`
}

// ComparisonItem mirrors CartItem with an optional description shown on the
// compare view.
type ComparisonItem struct {
	Quantity     int     `json:"quantity"`
	ProductPrice float64 `json:"productPrice"`
	ProductTitle string  `json:"productTitle"`
	ProductImage string  `json:"productImage"`
	Description  string  `json:"description,omitempty"`
}

// Cart maps username -> productID -> item. A missing username key means the
// user has no items, not that the cart is empty for everyone.
type Cart map[string]map[string]CartItem

// Comparison mirrors Cart for the product comparison list.
type Comparison map[string]map[string]ComparisonItem

// WishlistEntry is a product snapshot; only the identifier is mandatory.
type WishlistEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Wishlist is a flat, insertion-ordered sequence shared across users.
type Wishlist []WishlistEntry

// Review is a shopper-authored product review. ID is the unix-millisecond
// timestamp minted at creation and is unique per review.
type Review struct {
	ID        int64  `json:"id"`
	ProductID string `json:"productId"`
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	Username  string `json:"username"`
	Date      string `json:"date"`
}

// Reviews maps productID -> reviews in insertion order.
type Reviews map[string][]Review

// Ratings maps productID -> bare 1..5 scores in insertion order.
type Ratings map[string][]int

// Persisted entity names used for logging and metrics labels.
const (
	EntityCart       = "cart"
	EntityComparison = "comparison"
	EntityWishlist   = "wishlist"
	EntityReviews    = "reviews"
	EntityRatings    = "ratings"
)
