package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/beanmap/beanmap/internal/model"
	"github.com/beanmap/beanmap/internal/repository"
	"github.com/beanmap/beanmap/internal/validation"
)

// ValidationError names every offending field of a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// CafeInput carries a café form submission. Seats is free text on purpose.
type CafeInput struct {
	Name         string
	MapURL       string
	ImgURL       string
	Location     string
	Seats        string
	HasToilet    bool
	HasWifi      bool
	HasSockets   bool
	CanTakeCalls bool
	CoffeePrice  string
}

type CafeService struct {
	repo repository.CafeRepository
}

func NewCafeService(repo repository.CafeRepository) *CafeService {
	return &CafeService{
		repo: repo,
	}
}

// Add validates the submission and inserts it. Nothing is persisted when
// validation fails; every offending field is reported at once.
func (s *CafeService) Add(input CafeInput) (*model.Cafe, error) {
	fields := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if err := validation.ValidateURL(input.MapURL); err != nil {
		fields["map_url"] = err.Error()
	}
	if err := validation.ValidateURL(input.ImgURL); err != nil {
		fields["img_url"] = err.Error()
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "location is required"
	}
	if strings.TrimSpace(input.Seats) == "" {
		fields["seats"] = "seats is required"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	cafe := &model.Cafe{
		Name:         strings.TrimSpace(input.Name),
		MapURL:       input.MapURL,
		ImgURL:       input.ImgURL,
		Location:     strings.TrimSpace(input.Location),
		Seats:        strings.TrimSpace(input.Seats),
		HasToilet:    input.HasToilet,
		HasWifi:      input.HasWifi,
		HasSockets:   input.HasSockets,
		CanTakeCalls: input.CanTakeCalls,
		CreatedAt:    time.Now(),
	}
	if price := strings.TrimSpace(input.CoffeePrice); price != "" {
		cafe.CoffeePrice = &price
	}

	err := s.repo.Create(cafe)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create cafe: %w", err)
	}

	slog.Info("cafe added", "cafe_id", cafe.ID, "name", cafe.Name)
	return cafe, nil
}

// Cafes returns all cafés ordered by name ascending.
func (s *CafeService) Cafes() ([]*model.Cafe, error) {
	cafes, err := s.repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list cafes: %w", err)
	}
	return cafes, nil
}

func (s *CafeService) Cafe(id int64) (*model.Cafe, error) {
	return s.repo.ByID(id)
}
