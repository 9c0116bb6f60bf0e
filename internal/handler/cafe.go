package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/beanmap/beanmap/internal/repository"
	"github.com/beanmap/beanmap/internal/service"
	"github.com/beanmap/beanmap/internal/view"
)

type CafeHandler struct {
	cafeService *service.CafeService
}

func NewCafeHandler(cafeService *service.CafeService) *CafeHandler {
	return &CafeHandler{
		cafeService: cafeService,
	}
}

// PlacesPage lists every café, ordered by name
func (h *CafeHandler) PlacesPage(w http.ResponseWriter, r *http.Request) {
	cafes, err := h.cafeService.Cafes()
	if err != nil {
		slog.Error("failed to list cafes", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "places.page.html", http.StatusOK, &view.Data{
		Title:    "Places",
		Cafes:    cafes,
		NumCafes: len(cafes),
	})
}

func (h *CafeHandler) AddCafePage(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "add_cafe.page.html", http.StatusOK, &view.Data{
		Title: "Add a café",
	})
}

func (h *CafeHandler) AddCafe(w http.ResponseWriter, r *http.Request) {
	input := service.CafeInput{
		Name:         r.FormValue("name"),
		MapURL:       r.FormValue("map_url"),
		ImgURL:       r.FormValue("img_url"),
		Location:     r.FormValue("location"),
		Seats:        r.FormValue("seats"),
		HasToilet:    r.FormValue("has_toilet") != "",
		HasWifi:      r.FormValue("has_wifi") != "",
		HasSockets:   r.FormValue("has_sockets") != "",
		CanTakeCalls: r.FormValue("can_take_calls") != "",
		CoffeePrice:  r.FormValue("coffee_price"),
	}

	_, err := h.cafeService.Add(input)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			view.Render(w, r, "add_cafe.page.html", http.StatusUnprocessableEntity, &view.Data{
				Title:       "Add a café",
				Error:       "Please fix the highlighted fields.",
				FieldErrors: validationErr.Fields,
				Form:        cafeForm(r),
			})
			return
		}

		if errors.Is(err, repository.ErrDuplicateName) {
			view.Render(w, r, "add_cafe.page.html", http.StatusUnprocessableEntity, &view.Data{
				Title: "Add a café",
				Error: "A café with that name already exists.",
				Form:  cafeForm(r),
			})
			return
		}

		slog.Error("failed to add cafe", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/places", http.StatusSeeOther)
}

// CafePage shows a single café or a 404 page when the id is absent
func (h *CafeHandler) CafePage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}

	cafe, err := h.cafeService.Cafe(id)
	if err != nil {
		if errors.Is(err, repository.ErrCafeNotFound) {
			h.notFound(w, r)
			return
		}

		slog.Error("failed to get cafe", "error", err, "cafe_id", id)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "cafe.page.html", http.StatusOK, &view.Data{
		Title: cafe.Name,
		Cafe:  cafe,
	})
}

func (h *CafeHandler) notFound(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "notfound.page.html", http.StatusNotFound, &view.Data{
		Title: "Not found",
	})
}

// cafeForm echoes the submitted values back into the redisplayed form
func cafeForm(r *http.Request) map[string]string {
	return map[string]string{
		"name":           r.FormValue("name"),
		"map_url":        r.FormValue("map_url"),
		"img_url":        r.FormValue("img_url"),
		"location":       r.FormValue("location"),
		"seats":          r.FormValue("seats"),
		"coffee_price":   r.FormValue("coffee_price"),
		"has_toilet":     r.FormValue("has_toilet"),
		"has_wifi":       r.FormValue("has_wifi"),
		"has_sockets":    r.FormValue("has_sockets"),
		"can_take_calls": r.FormValue("can_take_calls"),
	}
}
