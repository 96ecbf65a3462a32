package constant

// Real-time event names delivered to websocket clients and forwarded to NATS.
const (
	EventNewOrder              = "NEW_ORDER"
	EventOrderStatusUpdated    = "ORDER_STATUS_UPDATED"
	EventOrderCancelled        = "ORDER_CANCELLED"
	EventNewSubscription       = "NEW_SUBSCRIPTION"
	EventSubscriptionPaused    = "SUBSCRIPTION_PAUSED"
	EventSubscriptionResumed   = "SUBSCRIPTION_RESUMED"
	EventSubscriptionCancelled = "SUBSCRIPTION_CANCELLED"
	EventPaymentReceived       = "PAYMENT_RECEIVED"
	EventNewRating             = "NEW_RATING"
	EventRatingUpdated         = "RATING_UPDATED"
	EventNewMilkAdded          = "NEW_MILK_ADDED"
	EventMilkUpdated           = "MILK_UPDATED"
	EventMilkDeleted           = "MILK_DELETED"
)

// Topic on the in-process bus carrying notifications from services to the delivery consumer.
const NotificationTopic = "notifications"
