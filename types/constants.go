package types

const (
	// Storage layout
	FIREBASE_STORAGE_IMAGES_FOLDER = "images/"
	FIREBASE_STORAGE_DOWNLOAD_HOST = "https://firebasestorage.googleapis.com"
	FIREBASE_STORAGE_TOKENS_KEY    = "firebaseStorageDownloadTokens"

	// Firestore
	FIREBASE_MESSAGING_TOKEN_COLLECTION   = "messagingTokens"
	FIREBASE_MESSAGING_TOKEN_FIELDS_TOKEN = "token"
	FIREBASE_MESSAGING_TOKEN_FIELDS_UID   = "uid"

	// Gin context keys
	CONTEXT_USER_KEY       = "user"
	CONTEXT_FILE_INFOS_KEY = "fileInfos"

	// Notification events
	NOTIFICATION_EVENT_UPLOADED = "uploaded"
	NOTIFICATION_EVENT_DELETED  = "deleted"
)
