package models

// ProductDetails is the upstream record for a single product, fetched by productId.
type ProductDetails struct {
	ID            string        `json:"id"`
	Country       string        `json:"country"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Reviews       Reviews       `json:"reviews"`
	BuyingOptions BuyingOptions `json:"buying_options"`
	Images        Images        `json:"images"`
}

type Reviews struct {
	OverallRating    float64          `json:"overall_rating"`
	TotalReviews     string           `json:"total_reviews"`
	StarDistribution StarDistribution `json:"star_distribution"`
	Aspects          []ReviewAspect   `json:"aspects"`
	SampleReviews    []SampleReview   `json:"sample_reviews"`
}

// StarDistribution holds review counts per star level as provider-formatted strings.
type StarDistribution struct {
	FiveStar  string `json:"5_star"`
	FourStar  string `json:"4_star"`
	ThreeStar string `json:"3_star"`
	TwoStar   string `json:"2_star"`
	OneStar   string `json:"1_star"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

type ReviewAspect struct {
	Aspect              string    `json:"aspect"`
	MentionCount        int       `json:"mention_count"`
	SentimentPercentage float64   `json:"sentiment_percentage"`
	Sentiment           Sentiment `json:"sentiment"`
}

type SampleReview struct {
	Text     string  `json:"text"`
	FullText string  `json:"full_text"`
	Rating   float64 `json:"rating"`
	Date     string  `json:"date"`
	Reviewer string  `json:"reviewer"`
	Source   string  `json:"source"`
}

type BuyingOptions struct {
	Sellers []Seller `json:"sellers"`
}

type Seller struct {
	SellerName string  `json:"seller_name"`
	SellerURL  string  `json:"seller_url"`
	Details    string  `json:"details"`
	ItemPrice  string  `json:"item_price"`
	TotalPrice string  `json:"total_price"`
	Condition  *string `json:"condition"`
	Shipping   *string `json:"shipping"`
}

type ProductImage struct {
	URL         string `json:"url"`
	Type        string `json:"type"`
	ImageNumber *int   `json:"image_number,omitempty"`
}

type Images struct {
	MainImages  []ProductImage `json:"main_images"`
	Thumbnails  []ProductImage `json:"thumbnails"`
	ProductInfo ImageOverlay   `json:"product_info"`
}

type ImageOverlay struct {
	OverlayTitle       string  `json:"overlay_title"`
	OverlayPrice       string  `json:"overlay_price"`
	OverlayMerchant    string  `json:"overlay_merchant"`
	OverlayRating      float64 `json:"overlay_rating"`
	OverlayReviewCount string  `json:"overlay_review_count"`
}
