package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/domain/inventory"
	"github.com/rxreturns/backend/internal/domain/shared"
)

// Service handles inventory maintenance for a pharmacy. All operations
// are scoped to the calling pharmacy; a line belonging to another
// pharmacy behaves exactly like a missing one.
type Service struct {
	lineRepo inventory.InventoryLineRepository
}

// NewService creates a new inventory Service
func NewService(lineRepo inventory.InventoryLineRepository) *Service {
	return &Service{lineRepo: lineRepo}
}

// ListLines returns one page of the pharmacy's inventory
func (s *Service) ListLines(ctx context.Context, pharmacyID uuid.UUID, filter InventoryListFilter) (*shared.Paginated[InventoryLineResponse], error) {
	if pharmacyID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	lines, err := s.lineRepo.FindAllForPharmacy(ctx, pharmacyID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.lineRepo.CountForPharmacy(ctx, pharmacyID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InventoryLineResponse, 0, len(lines))
	for i := range lines {
		responses = append(responses, toInventoryLineResponse(&lines[i]))
	}

	page := shared.NewPaginated(responses, total, maxInt(filter.Page, 1), domainFilter.Limit())
	return &page, nil
}

// GetLine returns a single inventory line
func (s *Service) GetLine(ctx context.Context, pharmacyID, lineID uuid.UUID) (*InventoryLineResponse, error) {
	line, err := s.lineRepo.FindByIDForPharmacy(ctx, pharmacyID, lineID)
	if err != nil {
		return nil, err
	}
	response := toInventoryLineResponse(line)
	return &response, nil
}

// CreateLine adds a product to the pharmacy's inventory
func (s *Service) CreateLine(ctx context.Context, pharmacyID uuid.UUID, request CreateInventoryLineRequest) (*InventoryLineResponse, error) {
	line, err := inventory.NewInventoryLine(pharmacyID, request.Identifier, request.ProductName, request.FullUnits, request.PartialUnits)
	if err != nil {
		return nil, err
	}
	if err := s.lineRepo.Save(ctx, line); err != nil {
		return nil, err
	}
	response := toInventoryLineResponse(line)
	return &response, nil
}

// UpdateLine updates a line's name and quantities
func (s *Service) UpdateLine(ctx context.Context, pharmacyID, lineID uuid.UUID, request UpdateInventoryLineRequest) (*InventoryLineResponse, error) {
	line, err := s.lineRepo.FindByIDForPharmacy(ctx, pharmacyID, lineID)
	if err != nil {
		return nil, err
	}

	if err := line.Rename(request.ProductName); err != nil {
		return nil, err
	}
	if err := line.UpdateQuantities(request.FullUnits, request.PartialUnits); err != nil {
		return nil, err
	}
	if err := s.lineRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	response := toInventoryLineResponse(line)
	return &response, nil
}

// DeleteLine removes a line from the pharmacy's inventory
func (s *Service) DeleteLine(ctx context.Context, pharmacyID, lineID uuid.UUID) error {
	if pharmacyID == uuid.Nil || lineID == uuid.Nil {
		return shared.ErrInvalidInput
	}
	return s.lineRepo.DeleteForPharmacy(ctx, pharmacyID, lineID)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
