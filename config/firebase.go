package config

// Firestore layout the mobile app writes to.
const (
	UsersCollection         = "users"
	NotificationsCollection = "notifications"
	// UIDField holds the Firebase Auth uid on each user document.
	UIDField = "uid"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreMemory    = "memory"
)
