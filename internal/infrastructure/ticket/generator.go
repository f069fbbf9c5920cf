// Package ticket genera números de ticket derivados del reloj.
package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator arma tickets con la forma PREFIJO-<unix ms>-<4 hex>.
type Generator struct {
	now func() time.Time
}

// New crea un generador sobre el reloj del sistema.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NextTicket devuelve un número nuevo; el sufijo aleatorio separa tickets emitidos en el mismo milisegundo.
func (g *Generator) NextTicket(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), suffix)
}
