package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/stock"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	cp.Stock = r.products[p.ID].Stock
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, stockQty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stockQty
	return nil
}

func (r *fakeProductRepo) List(_ repository.ProductFilter, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(_ repository.ProductFilter) (int, error) { return 0, nil }

func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			all = append(all, r.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovementRepo) CountByProduct(productID string) (int, error) {
	n := 0
	for _, m := range r.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) List(_ repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	if offset >= len(r.movements) {
		return nil, nil
	}
	all := r.movements[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovementRepo) Count(_ repository.MovementFilter) (int, error) {
	return len(r.movements), nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes (sin tx real).
type fakeTxRunner struct {
	mov  *fakeMovementRepo
	prod *fakeProductRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(f.mov, f.prod)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildUC(products ...*entity.Product) (*stock.RegisterMovementUseCase, *fakeMovementRepo, *fakeProductRepo) {
	prodRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{mov: movRepo, prod: prodRepo}
	return stock.NewRegisterMovementUseCase(runner, prodRepo, movRepo), movRepo, prodRepo
}

func testProduct(id string, stockQty int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Barcode:       "750" + id,
		Name:          "Producto " + id,
		PurchasePrice: decimal.NewFromInt(10),
		SalePrice:     decimal.NewFromInt(15),
		Stock:         stockQty,
		MinStock:      5,
		Unit:          entity.UnitPiece,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Entrada(t *testing.T) {
	uc, movRepo, prodRepo := buildUC(testProduct("p1", 10))

	mov, updated, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIn,
		Quantity:  5,
		Reason:    entity.ReasonPurchase,
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.PreviousStock)
	assert.Equal(t, 15, mov.NewStock)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, "u1", mov.CreatedBy)
	assert.NotEmpty(t, mov.ID)

	// Invariante: NewStock == PreviousStock + delta
	assert.Equal(t, mov.PreviousStock+mov.Quantity, mov.NewStock)

	assert.Equal(t, 15, updated.Stock)
	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 15, stored.Stock, "la cantidad persistida debe coincidir")
	assert.Len(t, movRepo.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Salida(t *testing.T) {
	uc, _, prodRepo := buildUC(testProduct("p1", 10))

	mov, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  4,
		Reason:    entity.ReasonDamage,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.PreviousStock)
	assert.Equal(t, 6, mov.NewStock)
	assert.Equal(t, mov.PreviousStock-mov.Quantity, mov.NewStock)

	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 6, stored.Stock)
}

func TestRegisterMovement_SalidaHastaCero(t *testing.T) {
	// Vaciar exactamente el stock es válido (stock nunca negativo, cero sí)
	uc, _, prodRepo := buildUC(testProduct("p1", 3))

	mov, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  3,
		Reason:    entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, mov.NewStock)

	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 0, stored.Stock)
}

func TestRegisterMovement_SalidaInsuficiente(t *testing.T) {
	uc, movRepo, prodRepo := buildUC(testProduct("p1", 3))

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  4,
		Reason:    entity.ReasonSale,
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Producto p1", stockErr.ProductName)
	assert.Equal(t, 3, stockErr.Available)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// Sin efectos: ni movimiento ni cambio de stock
	assert.Empty(t, movRepo.movements)
	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 3, stored.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_AjusteEsAbsoluto(t *testing.T) {
	// adjustment fija el stock en Quantity, no lo suma
	uc, _, prodRepo := buildUC(testProduct("p1", 10))

	mov, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  3,
		Reason:    entity.ReasonAdjustment,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.PreviousStock)
	assert.Equal(t, 3, mov.NewStock, "el ajuste fija el valor, no suma")

	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 3, stored.Stock)
}

func TestRegisterMovement_AjusteACeroValido(t *testing.T) {
	uc, _, prodRepo := buildUC(testProduct("p1", 10))

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  0,
		Reason:    entity.ReasonAdjustment,
	})
	require.NoError(t, err)

	stored, _ := prodRepo.GetByID("p1")
	assert.Equal(t, 0, stored.Stock)
}

func TestRegisterMovement_AjusteNegativoInvalido(t *testing.T) {
	uc, _, _ := buildUC(testProduct("p1", 10))

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  -1,
		Reason:    entity.ReasonAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_CantidadCeroInvalidaParaInOut(t *testing.T) {
	uc, _, _ := buildUC(testProduct("p1", 10))

	for _, tipo := range []string{entity.MovementTypeIn, entity.MovementTypeOut} {
		_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
			ProductID: "p1",
			Type:      tipo,
			Quantity:  0,
			Reason:    entity.ReasonOther,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s con cantidad 0", tipo)
	}
}

func TestRegisterMovement_TipoYRazonDesconocidos(t *testing.T) {
	uc, _, _ := buildUC(testProduct("p1", 10))

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1", Type: "transfer", Quantity: 1, Reason: entity.ReasonOther,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 1, Reason: "robo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, movRepo, _ := buildUC()

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "nope",
		Type:      entity.MovementTypeIn,
		Quantity:  1,
		Reason:    entity.ReasonPurchase,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, movRepo.movements)
}

func TestRegisterMovement_ProductoInactivo(t *testing.T) {
	p := testProduct("p1", 10)
	p.IsActive = false
	uc, _, _ := buildUC(p)

	_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIn,
		Quantity:  1,
		Reason:    entity.ReasonPurchase,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// History
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_OrdenInversoYPaginado(t *testing.T) {
	uc, _, _ := buildUC(testProduct("p1", 0))

	// Tres entradas consecutivas: 0→2→5→9
	for _, q := range []int{2, 3, 4} {
		_, _, err := uc.RegisterMovement(context.Background(), stock.MovementInput{
			ProductID: "p1",
			Type:      entity.MovementTypeIn,
			Quantity:  q,
			Reason:    entity.ReasonPurchase,
		})
		require.NoError(t, err)
	}

	list, err := uc.History("p1", dto.PageRequest{Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Total)

	// El más reciente primero
	assert.Equal(t, 4, list.Items[0].Quantity)
	assert.Equal(t, 3, list.Items[1].Quantity)

	// Encadenamiento: cada NewStock es el PreviousStock del siguiente
	assert.Equal(t, list.Items[1].NewStock, list.Items[0].PreviousStock)
}

func TestHistory_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildUC()
	_, err := uc.History("nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestList_FiltroInvalido(t *testing.T) {
	uc, _, _ := buildUC()
	_, err := uc.List(repository.MovementFilter{Type: "transfer"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
