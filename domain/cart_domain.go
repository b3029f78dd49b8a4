package domain

// ShoppingListLine is one aggregated row of the downloadable shopping list:
// all cart recipes summed per (ingredient, unit).
type ShoppingListLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}
