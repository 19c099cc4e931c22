package httpapi

import (
	"net/http"

	"github.com/jacentio/catalog/catalog"
)

type addressResponse struct {
	Message string          `json:"message"`
	Address catalog.Address `json:"address"`
}

type addressListResponse struct {
	Message   string            `json:"message"`
	ClientID  string            `json:"clientId,omitempty"`
	Total     int               `json:"total"`
	Addresses []catalog.Address `json:"addresses"`
}

type addressUpdateResponse struct {
	Message   string          `json:"message"`
	AddressID string          `json:"addressId"`
	Address   catalog.Address `json:"address"`
}

type addressDeleteResponse struct {
	Message   string `json:"message"`
	AddressID string `json:"addressId"`
}

func (s *Server) createAddress(w http.ResponseWriter, r *http.Request) {
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	a, err := s.cat.Addresses.Create(storeContext(r), r.PathValue("clientId"), in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusCreated, addressResponse{Message: "address created", Address: a})
}

func (s *Server) listClientAddresses(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")
	addresses, err := s.cat.Addresses.ListByClient(storeContext(r), clientID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, addressListResponse{
		Message:   "addresses retrieved",
		ClientID:  clientID,
		Total:     len(addresses),
		Addresses: addresses,
	})
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := s.cat.Addresses.List(storeContext(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, addressListResponse{
		Message:   "addresses retrieved",
		Total:     len(addresses),
		Addresses: addresses,
	})
}

func (s *Server) getAddress(w http.ResponseWriter, r *http.Request) {
	a, err := s.cat.Addresses.Get(storeContext(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, addressResponse{Message: "address retrieved", Address: a})
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	a, err := s.cat.Addresses.Update(storeContext(r), id, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, addressUpdateResponse{Message: "address updated", AddressID: id, Address: a})
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.cat.Addresses.Delete(storeContext(r), id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, addressDeleteResponse{Message: "address deleted", AddressID: id})
}
