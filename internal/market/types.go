package market

import "time"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFurniture   Category = "furniture"
	CategoryCars        Category = "cars"
	CategoryRealEstate  Category = "real_estate"
	CategoryServices    Category = "services"
	CategoryKids        Category = "kids"
	CategoryGoods       Category = "goods"
)

type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
)

type SellerType string

const (
	SellerIndividual SellerType = "individual"
	SellerCompany    SellerType = "company"
)

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	SellerID    string    `json:"sellerId"`
	Views       int       `json:"views"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Seller struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Type        SellerType `json:"type"`
	Verified    bool       `json:"verified"`
	Rating      float64    `json:"rating"`
	TotalSales  int        `json:"totalSales"`
	MemberSince time.Time  `json:"memberSince"`
}

// JoinedProduct is a product with its seller resolved at read time. Seller
// is nil when the product is orphaned (sellerId points at a deleted seller).
type JoinedProduct struct {
	Product
	Seller *Seller `json:"seller"`
}
