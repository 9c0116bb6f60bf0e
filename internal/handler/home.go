package handler

import (
	"html/template"
	"net/http"

	"github.com/beanmap/beanmap/internal/service"
	"github.com/beanmap/beanmap/internal/view"
)

type HomeHandler struct {
	contentService *service.ContentService
}

func NewHomeHandler(contentService *service.ContentService) *HomeHandler {
	return &HomeHandler{
		contentService: contentService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	data := &view.Data{}

	// The intro copy is optional; the template has a fallback
	page, err := h.contentService.Page("home")
	if err == nil {
		data.Content = template.HTML(page.Content)
	}

	view.Render(w, r, "home.page.html", http.StatusOK, data)
}

func (h *HomeHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.contentService.Page("about")
	if err != nil {
		h.NotFoundPage(w, r)
		return
	}

	view.Render(w, r, "content.page.html", http.StatusOK, &view.Data{
		Title:   page.Title,
		Content: template.HTML(page.Content),
	})
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "notfound.page.html", http.StatusNotFound, &view.Data{
		Title: "Not found",
	})
}
