package sales

import (
	"context"

	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// ReceiptUseCase genera el ticket PDF de una venta ya confirmada.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptGenerator
	storeName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, generator ReceiptGenerator, storeName string) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, generator: generator, storeName: storeName}
}

// GetReceiptPDF devuelve los bytes del ticket de la venta indicada.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, uc.storeName)
}
