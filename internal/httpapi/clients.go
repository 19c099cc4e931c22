package httpapi

import (
	"net/http"

	"github.com/jacentio/catalog/catalog"
)

type clientResponse struct {
	Message string         `json:"message"`
	Client  catalog.Client `json:"client"`
}

type clientListResponse struct {
	Message string           `json:"message"`
	Total   int              `json:"total"`
	Clients []catalog.Client `json:"clients"`
}

type clientUpdateResponse struct {
	Message  string         `json:"message"`
	ClientID string         `json:"clientId"`
	Client   catalog.Client `json:"client"`
}

type clientDeleteResponse struct {
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.cat.Clients.Create(storeContext(r), in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusCreated, clientResponse{Message: "client created", Client: c})
}

// listClients returns every client, or the single client holding ?taxId=.
func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("taxId") {
		c, err := s.cat.Clients.GetByTaxID(storeContext(r), r.URL.Query().Get("taxId"))
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		JSON(w, http.StatusOK, clientResponse{Message: "client retrieved", Client: c})
		return
	}

	clients, err := s.cat.Clients.List(storeContext(r))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, clientListResponse{
		Message: "clients retrieved",
		Total:   len(clients),
		Clients: clients,
	})
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.cat.Clients.Get(storeContext(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, clientResponse{Message: "client retrieved", Client: c})
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, err := decodeFields(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.cat.Clients.Update(storeContext(r), id, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, clientUpdateResponse{Message: "client updated", ClientID: id, Client: c})
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.cat.Clients.Delete(storeContext(r), id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	JSON(w, http.StatusOK, clientDeleteResponse{Message: "client deleted", ClientID: id})
}
