package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"menu-svc/internal/domain"
	"menu-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu  service.MenuServiceInterface
	Token string
}

func NewHandler(menu service.MenuServiceInterface, token string) *Handler {
	return &Handler{Menu: menu, Token: token}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.home).Methods("GET")
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/items", h.listItems).Methods("GET")
	r.HandleFunc("/api/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.requireToken(h.createItem)).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.getItem).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.requireToken(h.updateItem)).Methods("PATCH")
	r.HandleFunc("/api/menu/{id}", h.requireToken(h.deleteItem)).Methods("DELETE")
	r.HandleFunc("/api/menu/{id}/qrcode", h.getItemQRCode).Methods("GET")
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to menu API"})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	includeDeleted, err := boolParam(r, "include_deleted")
	if err != nil {
		http.Error(w, "Invalid include_deleted value", http.StatusBadRequest)
		return
	}

	items, err := h.Menu.All(r.Context(), includeDeleted)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	query, err := parseMenuQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.Menu.Menu(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	includeDeleted, err := boolParam(r, "include_deleted")
	if err != nil {
		http.Error(w, "Invalid include_deleted value", http.StatusBadRequest)
		return
	}

	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["id"], includeDeleted)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) getItemQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Menu.ItemQRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		Price       *float64 `json:"price"`
		IsAvailable *bool    `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Price == nil {
		http.Error(w, "Missing price", http.StatusBadRequest)
		return
	}
	category, err := domain.ParseCategory(payload.Category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := service.CreateItemInput{
		Name:        payload.Name,
		Category:    category,
		Price:       *payload.Price,
		IsAvailable: true,
	}
	if payload.IsAvailable != nil {
		input.IsAvailable = *payload.IsAvailable
	}

	item, err := h.Menu.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		IsAvailable *bool    `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	patch := domain.ItemPatch{
		Name:        payload.Name,
		Price:       payload.Price,
		IsAvailable: payload.IsAvailable,
	}
	if payload.Category != nil {
		category, err := domain.ParseCategory(*payload.Category)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		patch.Category = &category
	}

	item, err := h.Menu.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Item not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrItemDeleted):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseMenuQuery(r *http.Request) (domain.MenuQuery, error) {
	query := domain.DefaultMenuQuery()
	params := r.URL.Query()

	query.Search = params.Get("search")
	if v := params.Get("category"); v != "" {
		category, err := domain.ParseCategory(v)
		if err != nil {
			return query, err
		}
		query.Category = &category
	}
	if v := params.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return query, errors.New("available must be a boolean")
		}
		query.Available = &available
	}
	if v := params.Get("sort"); v != "" {
		switch domain.SortField(v) {
		case domain.SortByName, domain.SortByPrice:
			query.Sort = domain.SortField(v)
		default:
			return query, errors.New("sort must be price or name")
		}
	}
	if v := params.Get("order"); v != "" {
		switch domain.SortOrder(v) {
		case domain.OrderAsc, domain.OrderDesc:
			query.Order = domain.SortOrder(v)
		default:
			return query, errors.New("order must be asc or desc")
		}
	}
	if v := params.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return query, errors.New("page must be >= 1")
		}
		query.Page = page
	}
	if v := params.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil || pageSize < 1 || pageSize > 100 {
			return query, errors.New("pageSize must be between 1 and 100")
		}
		query.PageSize = pageSize
	}
	return query, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
