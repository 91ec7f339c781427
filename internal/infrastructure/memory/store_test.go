package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/infrastructure/memory"
)

func seed(t *testing.T) (*memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	id := uuid.New().String()
	store.SeedProduct(entity.Product{ID: id, Name: "caja", Quantity: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()})
	return store, id
}

func TestRun_CommitPersisteAmbasEscrituras(t *testing.T) {
	store, productID := seed(t)
	movID := uuid.New().String()

	err := store.Run(context.Background(), func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.UpdateQuantity(productID, 13); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{
			ID: movID, ProductID: productID, Quantity: 3,
			Type: entity.MovementTypeEntry, Date: time.Now(), UserID: uuid.New().String(), CreatedAt: time.Now(),
		})
	})
	require.NoError(t, err)

	p, err := store.ProductRepo().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(13), p.Quantity)
	m, err := store.MovementRepo().GetByID(movID)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestRun_ErrorRestauraSnapshot(t *testing.T) {
	store, productID := seed(t)
	boom := errors.New("boom")

	err := store.Run(context.Background(), func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.UpdateQuantity(productID, 99); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// La escritura previa al error no quedó observable
	p, err := store.ProductRepo().GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Quantity)
	assert.Equal(t, 0, store.MovementCount())
}

func TestRun_ContextoCanceladoNoEjecuta(t *testing.T) {
	store, productID := seed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		return productRepo.UpdateQuantity(productID, 99)
	})
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	p, _ := store.ProductRepo().GetByID(productID)
	assert.Equal(t, int64(10), p.Quantity)
}

func TestProductRepo_UpdateNoTocaQuantity(t *testing.T) {
	store, productID := seed(t)
	repo := store.ProductRepo()

	p, err := repo.GetByID(productID)
	require.NoError(t, err)
	p.Name = "caja grande"
	p.Quantity = 999 // el repositorio debe ignorarlo
	require.NoError(t, repo.Update(p))

	stored, err := repo.GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, "caja grande", stored.Name)
	assert.Equal(t, int64(10), stored.Quantity, "Update nunca modifica el stock")
}

func TestProductRepo_GetDevuelveCopia(t *testing.T) {
	store, productID := seed(t)
	repo := store.ProductRepo()

	p, err := repo.GetByID(productID)
	require.NoError(t, err)
	p.Quantity = 999

	stored, err := repo.GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Quantity, "mutar la copia no afecta el almacén")
}

func TestMovementRepo_ListFiltra(t *testing.T) {
	store, productID := seed(t)
	otherProduct := uuid.New().String()
	userA := uuid.New().String()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mk := func(product, user, typ string, day int) {
		store.SeedMovement(entity.Movement{
			ID: uuid.New().String(), ProductID: product, Quantity: 1,
			Type: typ, Date: base.AddDate(0, 0, day), UserID: user, CreatedAt: time.Now(),
		})
	}
	mk(productID, userA, entity.MovementTypeEntry, 0)
	mk(productID, userA, entity.MovementTypeExit, 1)
	mk(productID, uuid.New().String(), entity.MovementTypeEntry, 2)
	mk(otherProduct, userA, entity.MovementTypeEntry, 3)

	list, err := store.MovementRepo().List(repository.MovementFilter{ProductID: productID}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = store.MovementRepo().List(repository.MovementFilter{ProductID: productID, Type: entity.MovementTypeExit}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	from := base.AddDate(0, 0, 2)
	list, err = store.MovementRepo().List(repository.MovementFilter{From: &from}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Orden: fecha descendente
	list, err = store.MovementRepo().List(repository.MovementFilter{}, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].Date.Before(list[i].Date))
	}
}
