package cancel_reservation

// CancelReservationRequest HTTP request model
// Тело запроса опционально - отмена возможна и без указания причины
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
