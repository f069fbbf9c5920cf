package ports

// TicketGenerator produce números de ticket legibles para ventas y órdenes de reparación.
// La unicidad definitiva la garantiza el almacenamiento (columna UNIQUE).
type TicketGenerator interface {
	NextTicket(prefix string) string
}
