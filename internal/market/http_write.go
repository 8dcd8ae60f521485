package market

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"MarketStore/pkg/kit"
)

const maxBodyBytes = 1 << 20

type productCreateInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Price       float64    `json:"price" validate:"gte=0"`
	Category    string     `json:"category" validate:"required,oneof=electronics clothing furniture cars real_estate services kids goods"`
	Condition   string     `json:"condition" validate:"required,oneof=new excellent good fair"`
	SellerID    string     `json:"sellerId" validate:"required"`
	Views       int        `json:"views" validate:"gte=0"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type productUpdateInput struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Category    *string    `json:"category" validate:"omitempty,oneof=electronics clothing furniture cars real_estate services kids goods"`
	Condition   *string    `json:"condition" validate:"omitempty,oneof=new excellent good fair"`
	SellerID    *string    `json:"sellerId" validate:"omitempty,min=1"`
	Views       *int       `json:"views" validate:"omitempty,gte=0"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type sellerCreateInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Location    string     `json:"location" validate:"max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Type        string     `json:"type" validate:"required,oneof=individual company"`
	Rating      float64    `json:"rating"`
	TotalSales  int        `json:"totalSales" validate:"gte=0"`
	MemberSince *time.Time `json:"memberSince"`
}

type sellerUpdateInput struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Type        *string    `json:"type" validate:"omitempty,oneof=individual company"`
	Verified    *bool      `json:"verified"`
	Rating      *float64   `json:"rating"`
	TotalSales  *int       `json:"totalSales" validate:"omitempty,gte=0"`
	MemberSince *time.Time `json:"memberSince"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in productCreateInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	np := NewProduct{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    Category(in.Category),
		Condition:   Condition(in.Condition),
		SellerID:    in.SellerID,
		Views:       in.Views,
	}
	if in.PublishedAt != nil {
		np.PublishedAt = *in.PublishedAt
	}

	p, err := s.Service.CreateProduct(r.Context(), np)
	if err != nil {
		s.writeServiceError(w, r, err, "create product")
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in productUpdateInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	patch := ProductPatch{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		SellerID:    in.SellerID,
		Views:       in.Views,
		PublishedAt: in.PublishedAt,
	}
	if in.Category != nil {
		c := Category(*in.Category)
		patch.Category = &c
	}
	if in.Condition != nil {
		c := Condition(*in.Condition)
		patch.Condition = &c
	}

	p, err := s.Service.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err, "update product")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Service.DeleteProduct(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "delete product")
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) recordView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Service.RecordView(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "record view")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) createSeller(w http.ResponseWriter, r *http.Request) {
	var in sellerCreateInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	ns := NewSeller{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Type:        SellerType(in.Type),
		Rating:      in.Rating,
		TotalSales:  in.TotalSales,
	}
	if in.MemberSince != nil {
		ns.MemberSince = *in.MemberSince
	}

	sl, err := s.Service.CreateSeller(r.Context(), ns)
	if err != nil {
		s.writeServiceError(w, r, err, "create seller")
		return
	}
	kit.WriteJSON(w, http.StatusCreated, sl)
}

func (s *Server) updateSeller(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in sellerUpdateInput
	if !s.decodeAndValidate(w, r, &in) {
		return
	}

	patch := SellerPatch{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Verified:    in.Verified,
		Rating:      in.Rating,
		TotalSales:  in.TotalSales,
		MemberSince: in.MemberSince,
	}
	if in.Type != nil {
		t := SellerType(*in.Type)
		patch.Type = &t
	}

	sl, err := s.Service.UpdateSeller(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err, "update seller")
		return
	}
	kit.WriteJSON(w, http.StatusOK, sl)
}

func (s *Server) deleteSeller(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cascaded, err := s.Service.DeleteSeller(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "delete seller")
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"deleted":          true,
		"cascadedProducts": cascaded,
	})
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := kit.DecodeJSON(w, r, maxBodyBytes, v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		var details []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details = append(details, fe.Field()+": failed "+fe.Tag())
			}
		}
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", details)
		return false
	}
	return true
}
