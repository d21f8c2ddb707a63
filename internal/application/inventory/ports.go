package inventory

import (
	"context"
	"sort"

	"github.com/papyros/backoffice/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción (unidad de trabajo).
type TxRepos struct {
	Products   repository.ProductRepository
	Movements  repository.InventoryMovementRepository
	Sales      repository.SaleRepository
	Receptions repository.ReceptionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback completo; si no, Commit.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// distinctSorted devuelve los códigos sin repetir, en orden ascendente (orden de bloqueo).
func distinctSorted(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
