package httpapi

import (
	"net/http"

	"github.com/jacentio/catalog/catalog"
)

type productResponse struct {
	Message string          `json:"message"`
	Product catalog.Product `json:"product"`
}

type productListResponse struct {
	Message  string            `json:"message"`
	Total    int               `json:"total"`
	Products []catalog.Product `json:"products"`
}

type productUpdateResponse struct {
	Message   string          `json:"message"`
	ProductID string          `json:"productId"`
	Product   catalog.Product `json:"product"`
}

type productDeleteResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"productId"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p, err := s.cat.Products.Create(storeContext(r), in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusCreated, productResponse{Message: "product created", Product: p})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.cat.Products.List(storeContext(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, productListResponse{
		Message:  "products retrieved",
		Total:    len(products),
		Products: products,
	})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.cat.Products.Get(storeContext(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, productResponse{Message: "product retrieved", Product: p})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p, err := s.cat.Products.Update(storeContext(r), id, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, productUpdateResponse{Message: "product updated", ProductID: id, Product: p})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.cat.Products.Delete(storeContext(r), id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, productDeleteResponse{Message: "product deleted", ProductID: id})
}
