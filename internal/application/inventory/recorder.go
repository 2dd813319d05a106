package inventory

import (
	"context"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/logger"
)

// MovementLog puerto hacia el log append-only de movimientos.
type MovementLog interface {
	Create(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryMovement, error)
	Remove(ctx context.Context, id string) error
}

// StockApplier puerto hacia el servicio de stock que aplica el movimiento.
type StockApplier interface {
	AddEntry(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryStock, error)
}

// Recorder realiza las dos escrituras que mantienen coherentes log y ledger:
// primero registra el movimiento, después aplica el delta al stock. No hay
// frontera transaccional entre ambos stores, así que si la segunda escritura
// falla el movimiento recién registrado se retira (rollback compensatorio)
// y el error se propaga.
type Recorder struct {
	movements MovementLog
	stock     StockApplier
	log       *logger.Logger
}

// NewRecorder construye el recorder. Si log es nil se usa un logger nop.
func NewRecorder(movements MovementLog, stock StockApplier, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{movements: movements, stock: stock, log: log}
}

// RecordMovementAndUpdateStock registra el movimiento y actualiza el stock
// como una unidad lógica. Devuelve ambos resultados.
func (r *Recorder) RecordMovementAndUpdateStock(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryMovement, *entity.InventoryStock, error) {
	mov, err := r.movements.Create(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	stock, err := r.stock.AddEntry(ctx, in)
	if err != nil {
		// Compensación: retirar el movimiento para no dejar el log adelantado
		// respecto al ledger. Si la compensación también falla queda un
		// movimiento huérfano; se deja rastro para reconciliación manual.
		if rbErr := r.movements.Remove(ctx, mov.ID); rbErr != nil {
			r.log.Error().
				Str("movement_id", mov.ID).
				Err(rbErr).
				Msg("rollback compensatorio falló; movimiento huérfano en el log")
		}
		return nil, nil, err
	}

	return mov, stock, nil
}
