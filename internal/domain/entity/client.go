package entity

import "time"

// Client cliente del taller; puede comprar sin equipo y dejar varios equipos en reparación.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	TaxID     string
	CreatedAt time.Time
}

// Device equipo de un cliente (celular, laptop, consola...).
type Device struct {
	ID           string
	ClientID     string
	Brand        string
	Model        string
	SerialNumber string
	CreatedAt    time.Time
}

// Technician técnico asignable a una orden de reparación.
type Technician struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
}
