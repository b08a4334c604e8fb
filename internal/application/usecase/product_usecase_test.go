package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/stock"
	"github.com/tu-usuario/caja-pos/internal/application/usecase"
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

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
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
	stored, ok := r.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	cp.Stock = stored.Stock // el CRUD no toca el stock
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

func (r *fakeProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		if filter.LowStock && !p.IsLowStock() {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeProductRepo) Count(filter repository.ProductFilter) (int, error) {
	list, _ := r.List(filter, 0, 0)
	return len(list), nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]*entity.Category{}}
	for _, c := range categories {
		cp := *c
		r.categories[c.ID] = &cp
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) ListActive() ([]*entity.Category, error) {
	var list []*entity.Category
	for _, c := range r.categories {
		if c.IsActive {
			cp := *c
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeCategoryRepo) Deactivate(id string) error {
	if c, ok := r.categories[id]; ok {
		c.IsActive = false
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

func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) CountByProduct(string) (int, error) { return 0, nil }
func (r *fakeMovementRepo) List(repository.MovementFilter, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) Count(repository.MovementFilter) (int, error) { return 0, nil }

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

type catalogFixture struct {
	uc   *usecase.ProductUseCase
	prod *fakeProductRepo
	cat  *fakeCategoryRepo
	mov  *fakeMovementRepo
}

func buildCatalog(categories ...*entity.Category) *catalogFixture {
	prodRepo := newFakeProductRepo()
	catRepo := newFakeCategoryRepo(categories...)
	movRepo := &fakeMovementRepo{}
	ledger := stock.NewRegisterMovementUseCase(&fakeTxRunner{mov: movRepo, prod: prodRepo}, prodRepo, movRepo)
	return &catalogFixture{
		uc:   usecase.NewProductUseCase(prodRepo, catRepo, ledger),
		prod: prodRepo,
		cat:  catRepo,
		mov:  movRepo,
	}
}

func validCreate() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Barcode:       "7501234567890",
		Name:          "Refresco 600ml",
		PurchasePrice: decimal.NewFromInt(10),
		SalePrice:     decimal.NewFromInt(15),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_Defaults(t *testing.T) {
	fx := buildCatalog()

	resp, err := fx.uc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)

	assert.Equal(t, 5, resp.MinStock, "min_stock default 5")
	assert.Equal(t, entity.UnitPiece, resp.Unit, "unidad default piece")
	assert.Equal(t, 0, resp.Stock)
	assert.True(t, resp.IsActive)
	assert.Nil(t, resp.CategoryID)
	assert.Empty(t, fx.mov.movements, "sin stock inicial no hay movimiento")
}

func TestCreateProduct_StockInicialViaLibro(t *testing.T) {
	fx := buildCatalog()

	in := validCreate()
	in.Stock = 12
	resp, err := fx.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Stock)

	// La carga inicial deja su movimiento de auditoría
	require.Len(t, fx.mov.movements, 1)
	m := fx.mov.movements[0]
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.Equal(t, entity.ReasonPurchase, m.Reason)
	assert.Equal(t, 0, m.PreviousStock)
	assert.Equal(t, 12, m.NewStock)
	assert.Equal(t, "u1", m.CreatedBy)

	stored, _ := fx.prod.GetByID(resp.ID)
	assert.Equal(t, 12, stored.Stock)
}

func TestCreateProduct_ReportaTodosLosCampos(t *testing.T) {
	fx := buildCatalog()

	minStock := -1
	_, err := fx.uc.Create(context.Background(), "u1", dto.CreateProductRequest{
		Barcode:       "",
		Name:          "",
		PurchasePrice: decimal.NewFromInt(-1),
		SalePrice:     decimal.NewFromInt(-2),
		Stock:         -3,
		MinStock:      &minStock,
		Unit:          "galon",
	})
	require.Error(t, err)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "barcode")
	assert.Contains(t, valErr.Fields, "name")
	assert.Contains(t, valErr.Fields, "purchase_price")
	assert.Contains(t, valErr.Fields, "sale_price")
	assert.Contains(t, valErr.Fields, "stock")
	assert.Contains(t, valErr.Fields, "min_stock")
	assert.Contains(t, valErr.Fields, "unit")
}

func TestCreateProduct_BarcodeDuplicado(t *testing.T) {
	fx := buildCatalog()
	_, err := fx.uc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)

	dup := validCreate()
	dup.Name = "Otro producto"
	_, err = fx.uc.Create(context.Background(), "u1", dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_BarcodeDeInactivoReutilizable(t *testing.T) {
	// Un producto desactivado cede su código de barras
	fx := buildCatalog()
	first, err := fx.uc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)
	require.NoError(t, fx.uc.Deactivate(first.ID))

	_, err = fx.uc.Create(context.Background(), "u1", validCreate())
	assert.NoError(t, err)
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	fx := buildCatalog()

	in := validCreate()
	catID := "nope"
	in.CategoryID = &catID
	_, err := fx.uc.Create(context.Background(), "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_Parcial(t *testing.T) {
	fx := buildCatalog()
	created, err := fx.uc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)

	newName := "Refresco 1L"
	newPrice := decimal.NewFromInt(20)
	resp, err := fx.uc.Update(created.ID, dto.UpdateProductRequest{
		Name:      &newName,
		SalePrice: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Refresco 1L", resp.Name)
	assert.True(t, resp.SalePrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, created.Barcode, resp.Barcode, "los campos no enviados no cambian")
}

func TestGetByBarcode_SoloActivos(t *testing.T) {
	fx := buildCatalog()
	created, err := fx.uc.Create(context.Background(), "u1", validCreate())
	require.NoError(t, err)

	found, err := fx.uc.GetByBarcode(created.Barcode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	require.NoError(t, fx.uc.Deactivate(created.ID))
	_, err = fx.uc.GetByBarcode(created.Barcode)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductResponse_CamposDerivados(t *testing.T) {
	fx := buildCatalog()

	in := validCreate()
	in.Stock = 3 // bajo el umbral default 5
	resp, err := fx.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)

	assert.True(t, resp.IsLowStock)
	assert.True(t, resp.ProfitMarginPct.Equal(decimal.NewFromInt(50)))
}
