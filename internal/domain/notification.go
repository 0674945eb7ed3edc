package domain

type NotificationKind string

const (
	NotificationKindRentalReceipt  NotificationKind = "RENTAL_RECEIPT"
	NotificationKindReturnReceipt  NotificationKind = "RETURN_RECEIPT"
	NotificationKindEmergencyAlert NotificationKind = "EMERGENCY_ALERT"
)

type Notification struct {
	ID        string           `json:"id" firestore:"-"`
	UserID    string           `json:"userId" firestore:"userId"`
	Kind      NotificationKind `json:"kind" firestore:"kind"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	IsRead    bool             `json:"isRead" firestore:"isRead"`
	CreatedOn string           `json:"createdOn" firestore:"createdOn"`
}
