package market

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IDStrategy string

const (
	IDSequential IDStrategy = "sequential"
	IDUUID       IDStrategy = "uuid"
)

// Service implements every operation as a full load-transform-(save) cycle
// against the Store. Nothing is cached between requests; each call sees
// whatever was most recently persisted.
type Service struct {
	store Store
	ids   IDStrategy
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, ids IDStrategy, log *zap.Logger) *Service {
	if ids == "" {
		ids = IDSequential
	}
	return &Service{
		store: store,
		ids:   ids,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type ProductPage struct {
	Products   []JoinedProduct `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

type SellerPage struct {
	Sellers    []Seller   `json:"sellers"`
	Pagination Pagination `json:"pagination"`
}

type SellerDetail struct {
	Seller
	Products      []Product `json:"products"`
	TotalProducts int       `json:"totalProducts"`
}

type NewProduct struct {
	Title       string
	Description string
	Price       float64
	Category    Category
	Condition   Condition
	SellerID    string
	Views       int
	PublishedAt time.Time
}

type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *Category
	Condition   *Condition
	SellerID    *string
	Views       *int
	PublishedAt *time.Time
}

type NewSeller struct {
	Name        string
	Location    string
	Description string
	Type        SellerType
	Rating      float64
	TotalSales  int
	MemberSince time.Time
}

type SellerPatch struct {
	Name        *string
	Location    *string
	Description *string
	Type        *SellerType
	Verified    *bool
	Rating      *float64
	TotalSales  *int
	MemberSince *time.Time
}

func (s *Service) ListProducts(ctx context.Context, q ListProductsQuery) (ProductPage, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return ProductPage{}, err
	}
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return ProductPage{}, err
	}

	joined := joinAll(products, sellers, q.IncludeOrphans)
	joined = filterProducts(joined, q)
	sortProducts(joined, q.SortBy, q.SortOrder)

	page, pg := paginate(joined, q.Page, q.Limit)
	return ProductPage{Products: page, Pagination: pg}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (JoinedProduct, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return JoinedProduct{}, err
	}

	i := productIndex(products, id)
	if i < 0 {
		return JoinedProduct{}, ErrNotFound
	}

	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return JoinedProduct{}, err
	}

	return attachSeller(products[i], sellersByID(sellers)), nil
}

func (s *Service) CreateProduct(ctx context.Context, in NewProduct) (Product, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		ID:          s.newID(productIDs(products)),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Condition:   in.Condition,
		SellerID:    in.SellerID,
		Views:       in.Views,
		PublishedAt: in.PublishedAt,
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = s.now()
	}

	products = append(products, p)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return Product{}, err
	}

	s.log.Info("product created", zap.String("id", p.ID), zap.String("seller_id", p.SellerID))
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return Product{}, err
	}

	i := productIndex(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	p := &products[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Condition != nil {
		p.Condition = *patch.Condition
	}
	if patch.SellerID != nil {
		p.SellerID = *patch.SellerID
	}
	if patch.Views != nil {
		p.Views = *patch.Views
	}
	if patch.PublishedAt != nil {
		p.PublishedAt = *patch.PublishedAt
	}

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return Product{}, err
	}
	return *p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return err
	}

	i := productIndex(products, id)
	if i < 0 {
		return ErrNotFound
	}

	products = append(products[:i], products[i+1:]...)
	return s.store.SaveProducts(ctx, products)
}

// RecordView bumps a product's view counter through the standard
// load-mutate-save cycle. Concurrent bumps can lose updates, same as every
// other mutation on the flat files.
func (s *Service) RecordView(ctx context.Context, id string) (Product, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return Product{}, err
	}

	i := productIndex(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	products[i].Views++
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return Product{}, err
	}
	return products[i], nil
}

func (s *Service) ListSellers(ctx context.Context, q ListSellersQuery) (SellerPage, error) {
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return SellerPage{}, err
	}

	sellers = filterSellers(sellers, q)
	page, pg := paginate(sellers, q.Page, q.Limit)
	return SellerPage{Sellers: page, Pagination: pg}, nil
}

func (s *Service) GetSeller(ctx context.Context, id string) (SellerDetail, error) {
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return SellerDetail{}, err
	}

	i := sellerIndex(sellers, id)
	if i < 0 {
		return SellerDetail{}, ErrNotFound
	}

	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return SellerDetail{}, err
	}

	own := make([]Product, 0, 8)
	for _, p := range products {
		if p.SellerID == id {
			own = append(own, p)
		}
	}

	return SellerDetail{
		Seller:        sellers[i],
		Products:      own,
		TotalProducts: len(own),
	}, nil
}

func (s *Service) CreateSeller(ctx context.Context, in NewSeller) (Seller, error) {
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return Seller{}, err
	}

	sl := Seller{
		ID:          s.newID(sellerIDs(sellers)),
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Type:        in.Type,
		Verified:    false,
		Rating:      in.Rating,
		TotalSales:  in.TotalSales,
		MemberSince: in.MemberSince,
	}
	if sl.MemberSince.IsZero() {
		sl.MemberSince = s.now()
	}

	sellers = append(sellers, sl)
	if err := s.store.SaveSellers(ctx, sellers); err != nil {
		return Seller{}, err
	}

	s.log.Info("seller created", zap.String("id", sl.ID), zap.String("type", string(sl.Type)))
	return sl, nil
}

func (s *Service) UpdateSeller(ctx context.Context, id string, patch SellerPatch) (Seller, error) {
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return Seller{}, err
	}

	i := sellerIndex(sellers, id)
	if i < 0 {
		return Seller{}, ErrNotFound
	}

	sl := &sellers[i]
	if patch.Name != nil {
		sl.Name = *patch.Name
	}
	if patch.Location != nil {
		sl.Location = *patch.Location
	}
	if patch.Description != nil {
		sl.Description = *patch.Description
	}
	if patch.Type != nil {
		sl.Type = *patch.Type
	}
	if patch.Verified != nil {
		sl.Verified = *patch.Verified
	}
	if patch.Rating != nil {
		sl.Rating = *patch.Rating
	}
	if patch.TotalSales != nil {
		sl.TotalSales = *patch.TotalSales
	}
	if patch.MemberSince != nil {
		sl.MemberSince = *patch.MemberSince
	}

	if err := s.store.SaveSellers(ctx, sellers); err != nil {
		return Seller{}, err
	}
	return *sl, nil
}

// DeleteSeller removes the seller and cascades to every product that
// references it, the single cross-collection rule in the system. Returns
// how many products were removed.
func (s *Service) DeleteSeller(ctx context.Context, id string) (int, error) {
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return 0, err
	}

	i := sellerIndex(sellers, id)
	if i < 0 {
		return 0, ErrNotFound
	}

	sellers = append(sellers[:i], sellers[i+1:]...)
	if err := s.store.SaveSellers(ctx, sellers); err != nil {
		return 0, err
	}

	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return 0, err
	}

	kept := products[:0:0]
	for _, p := range products {
		if p.SellerID != id {
			kept = append(kept, p)
		}
	}

	cascaded := len(products) - len(kept)
	if cascaded > 0 {
		if err := s.store.SaveProducts(ctx, kept); err != nil {
			return 0, err
		}
	}

	s.log.Info("seller deleted",
		zap.String("id", id),
		zap.Int("cascaded_products", cascaded),
	)
	return cascaded, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return Stats{}, err
	}
	sellers, err := s.store.LoadSellers(ctx)
	if err != nil {
		return Stats{}, err
	}
	return buildStats(products, sellers), nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// newID keeps the legacy max(numeric id)+1 scheme for sequential mode.
// Non-numeric ids are skipped when computing the max rather than poisoning
// the counter.
func (s *Service) newID(existing []string) string {
	if s.ids == IDUUID {
		return uuid.NewString()
	}

	max := 0
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func productIndex(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func sellerIndex(sellers []Seller, id string) int {
	for i := range sellers {
		if sellers[i].ID == id {
			return i
		}
	}
	return -1
}

func productIDs(products []Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func sellerIDs(sellers []Seller) []string {
	ids := make([]string, len(sellers))
	for i, sl := range sellers {
		ids[i] = sl.ID
	}
	return ids
}
