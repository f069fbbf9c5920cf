package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const defaultLowStockLimit = 200

// LowStockUseCase genera la lista de reposición: productos en o bajo su stock mínimo.
type LowStockUseCase struct {
	productRepo repository.ProductRepository
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(productRepo repository.ProductRepository) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo}
}

// GenerateLowStockList devuelve los productos bajo punto de reorden con la cantidad
// sugerida de pedido, priorizados por déficit relativo.
func (uc *LowStockUseCase) GenerateLowStockList(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	if limit <= 0 {
		limit = defaultLowStockLimit
	}

	// 1. Productos en o bajo el punto de reorden
	products, err := uc.productRepo.ListBelowMinStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.LowStockItemDTO{}, nil
	}

	// 2. Construir los DTOs con la sugerencia de pedido
	hundred := decimal.NewFromInt(100)
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		suggested := domaininv.SuggestedOrderQty(p.Stock, p.MinStock)

		deficitPct := decimal.Zero
		if p.MinStock > 0 {
			deficitPct = decimal.NewFromInt(int64(p.MinStock - p.Stock)).
				Div(decimal.NewFromInt(int64(p.MinStock))).
				Mul(hundred).Round(2)
		}

		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.Stock,
			MinStock:          p.MinStock,
			IdealStock:        p.Stock + suggested,
			SuggestedOrderQty: suggested,
			UnitPrice:         p.Price,
			DeficitPct:        deficitPct,
		})
	}

	// 3. Ordenar: mayor déficit relativo, luego mayor cantidad sugerida, luego SKU
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.DeficitPct.Equal(b.DeficitPct) {
			return a.DeficitPct.GreaterThan(b.DeficitPct)
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.SKU < b.SKU
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
