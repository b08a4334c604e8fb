package sales

import (
	"time"

	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// GetSale obtiene una venta por ID con todas sus líneas.
func (uc *CreateSaleUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas con filtros de estado y rango de fechas.
func (uc *CreateSaleUseCase) ListSales(filter repository.SaleFilter, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// TodaySummary resume las ventas completadas del día actual.
func (uc *CreateSaleUseCase) TodaySummary() (*dto.TodaySummaryResponse, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)
	summary, err := uc.saleRepo.SummaryForRange(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.TodaySummaryResponse{
		Count:  summary.Count,
		Total:  summary.Total,
		Profit: summary.Profit,
		Items:  summary.Items,
	}, nil
}
