package domain

import "strconv"

// Identificadores tipados por entidad. Sale y Customer usan identificadores
// de texto generados externamente (UUID); el resto usa enteros autogenerados
// por el store. Los tipos distintos evitan mezclar los dos espacios de IDs.

// ProductID identificador numérico autogenerado de un producto.
type ProductID int64

// CategoryID identificador numérico autogenerado de una categoría.
type CategoryID int64

// SupplierID identificador numérico autogenerado de un proveedor.
type SupplierID int64

// TierID identificador numérico autogenerado de un escalón de precio por volumen.
type TierID int64

// MovementID identificador numérico autogenerado de un movimiento de stock.
type MovementID int64

// SaleID identificador de texto (UUID) de una venta.
type SaleID string

// CustomerID identificador de texto (UUID) de un cliente.
type CustomerID string

func (id ProductID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id TierID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id MovementID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id SaleID) String() string     { return string(id) }
func (id CustomerID) String() string { return string(id) }
