package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/usecase"
	"github.com/tu-usuario/caja-pos/internal/domain"
)

func buildCategoryUC() (*usecase.CategoryUseCase, *fakeCategoryRepo) {
	repo := newFakeCategoryRepo()
	return usecase.NewCategoryUseCase(repo), repo
}

func TestCreateCategory_Defaults(t *testing.T) {
	uc, _ := buildCategoryUC()

	resp, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	assert.Equal(t, "Bebidas", resp.Name)
	assert.NotEmpty(t, resp.Color, "color default")
	assert.NotEmpty(t, resp.Icon, "icono default")
	assert.True(t, resp.IsActive)
}

func TestCreateCategory_NombreObligatorio(t *testing.T) {
	uc, _ := buildCategoryUC()

	_, err := uc.Create(dto.CreateCategoryRequest{})
	require.Error(t, err)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "name")
}

func TestCreateCategory_NombreDuplicadoEntreActivas(t *testing.T) {
	uc, _ := buildCategoryUC()
	first, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Una desactivada cede su nombre
	require.NoError(t, uc.Deactivate(first.ID))
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.NoError(t, err)
}

func TestUpdateCategory_Parcial(t *testing.T) {
	uc, _ := buildCategoryUC()
	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas", Color: "#ff0000"})
	require.NoError(t, err)

	newName := "Bebidas frías"
	resp, err := uc.Update(created.ID, dto.UpdateCategoryRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Bebidas frías", resp.Name)
	assert.Equal(t, "#ff0000", resp.Color, "los campos no enviados no cambian")
}

func TestDeactivateCategory_NoEncontrada(t *testing.T) {
	uc, _ := buildCategoryUC()
	err := uc.Deactivate("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
